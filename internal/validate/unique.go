package validate

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultUniqueDelay is the quiet period before an id existence check hits
// the network.
const DefaultUniqueDelay = 500 * time.Millisecond

// VerifyFunc asks the server whether an id already exists.
type VerifyFunc func(ctx context.Context, id string) (bool, error)

// Outcome is one resolved uniqueness check. Value is the input the check ran
// for; consumers must compare it against the field's current value before
// applying Result.
type Outcome struct {
	Value  string
	Result *Result // nil when the id is available
}

// UniqueConfig configures a UniqueChecker.
type UniqueConfig struct {
	Verify VerifyFunc
	// Notify receives every resolved outcome. Immediate short-circuit
	// outcomes are delivered synchronously from Check; network-backed ones
	// arrive later from the checker's own goroutine.
	Notify func(Outcome)
	// CurrentID, when set (edit mode), is always reported available without
	// a network call.
	CurrentID string
	// Delay overrides the debounce quiet period. Zero means the default.
	Delay time.Duration
}

// UniqueChecker is the asynchronous id-uniqueness rule. Checks are debounced,
// duplicate consecutive values skip the network (the last resolved outcome is
// re-delivered instead), and a response that resolves
// after the value has moved on is discarded: every scheduled check carries a
// sequence token and only the token holder may deliver an outcome.
//
// On a network failure the check reports the id as available. Blocking the
// user on an unreachable server is worse than letting a duplicate through;
// the server rejects duplicates regardless.
type UniqueChecker struct {
	verify    VerifyFunc
	notify    func(Outcome)
	currentID string
	delay     time.Duration

	mu      sync.Mutex
	seq     uint64
	value   string // last scheduled value, for duplicate suppression
	timer   *time.Timer
	pending bool

	// last holds the most recent network-backed outcome so a suppressed
	// re-check of the same value can re-deliver it instead of going silent.
	last    Outcome
	hasLast bool
}

// NewUniqueChecker builds a checker. Verify and Notify are required.
func NewUniqueChecker(cfg UniqueConfig) *UniqueChecker {
	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultUniqueDelay
	}
	return &UniqueChecker{
		verify:    cfg.Verify,
		notify:    cfg.Notify,
		currentID: strings.TrimSpace(cfg.CurrentID),
		delay:     delay,
	}
}

// Check records a new field value. Empty values and the current edit id
// resolve valid synchronously; anything else (re)arms the debounce timer
// unless the value is unchanged from the last scheduled check.
func (c *UniqueChecker) Check(value string) {
	trimmed := strings.TrimSpace(value)

	c.mu.Lock()
	if trimmed == "" || (c.currentID != "" && trimmed == c.currentID) {
		// Invalidate any scheduled or in-flight check for a superseded value.
		c.seq++
		c.value = trimmed
		c.pending = false
		if c.timer != nil {
			c.timer.Stop()
			c.timer = nil
		}
		c.mu.Unlock()
		c.notify(Outcome{Value: trimmed})
		return
	}

	if trimmed == c.value {
		// Suppress the duplicate network call, but never leave the consumer
		// without the verdict it may have discarded in the meantime.
		if !c.pending && c.hasLast && c.last.Value == trimmed {
			last := c.last
			c.mu.Unlock()
			c.notify(last)
			return
		}
		c.mu.Unlock()
		return
	}

	c.seq++
	token := c.seq
	c.value = trimmed
	c.pending = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, func() {
		c.fire(token, trimmed)
	})
	c.mu.Unlock()
}

// Pending reports whether a check is scheduled or in flight. Submission must
// wait for this to clear.
func (c *UniqueChecker) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

func (c *UniqueChecker) fire(token uint64, value string) {
	c.mu.Lock()
	if token != c.seq {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	exists, err := c.verify(context.Background(), value)

	outcome := Outcome{Value: value}
	if err == nil && exists {
		outcome.Result = &Result{
			Kind:    KindDuplicateID,
			Message: "this id already exists; choose another",
		}
	}

	c.mu.Lock()
	if token != c.seq {
		// The field moved on while the request was in flight.
		c.mu.Unlock()
		return
	}
	c.pending = false
	c.last = outcome
	c.hasLast = true
	c.mu.Unlock()

	c.notify(outcome)
}
