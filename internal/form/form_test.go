package form

import (
	"context"
	"sync"
	"testing"
	"time"

	"vitrine/internal/product"
	"vitrine/internal/validate"
)

func today(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
}

// syncChecker builds a checker whose outcomes are applied to the controller
// as they resolve, the way the UI routes them.
func syncChecker(t *testing.T, exists bool) (*validate.UniqueChecker, func(*Controller)) {
	t.Helper()
	var mu sync.Mutex
	var queued []validate.Outcome
	checker := validate.NewUniqueChecker(validate.UniqueConfig{
		Verify: func(ctx context.Context, id string) (bool, error) { return exists, nil },
		Notify: func(o validate.Outcome) {
			mu.Lock()
			queued = append(queued, o)
			mu.Unlock()
		},
		Delay: time.Millisecond,
	})
	drain := func(c *Controller) {
		deadline := time.Now().Add(time.Second)
		for checker.Pending() {
			if time.Now().After(deadline) {
				t.Fatal("uniqueness check never resolved")
			}
			time.Sleep(time.Millisecond)
		}
		mu.Lock()
		defer mu.Unlock()
		for _, o := range queued {
			c.ApplyUniqueOutcome(o)
		}
		queued = nil
	}
	return checker, drain
}

func fillValid(c *Controller) {
	c.SetValue(KeyID, "abc123")
	c.SetValue(KeyName, "Premium Card")
	c.SetValue(KeyDescription, "A credit card with travel perks")
	c.SetValue(KeyLogo, "https://example.com/logo.png")
	c.SetValue(KeyRelease, today(0))
}

func TestCreate_SubmitRequiresEveryField(t *testing.T) {
	c := NewCreate(nil)

	if _, ok := c.Submit(); ok {
		t.Fatal("Submit accepted an empty draft")
	}
	for _, key := range Keys {
		if !c.Field(key).Touched {
			t.Fatalf("field %s not touched after refused submit", key)
		}
	}

	fillValid(c)
	draft, ok := c.Submit()
	if !ok {
		t.Fatalf("Submit refused a valid draft: %+v", fieldErrors(c))
	}
	if draft.ID != "abc123" || draft.DateRevision != validate.AddYear(today(0)) {
		t.Fatalf("draft = %+v, want id and derived revision", draft)
	}
}

func fieldErrors(c *Controller) map[Key]*validate.Result {
	errs := map[Key]*validate.Result{}
	for _, key := range Keys {
		if res := c.Field(key).Err; res != nil {
			errs[key] = res
		}
	}
	return errs
}

func TestCreate_RevisionDerivedAndDisabled(t *testing.T) {
	c := NewCreate(nil)

	c.SetValue(KeyRelease, "2026-03-15")
	if got := c.Field(KeyRevision).Value; got != "2027-03-15" {
		t.Fatalf("revision = %q, want 2027-03-15", got)
	}

	if !c.Disabled(KeyRevision) {
		t.Fatal("revision field must stay disabled")
	}
	c.SetValue(KeyRevision, "1999-01-01")
	if got := c.Field(KeyRevision).Value; got != "2027-03-15" {
		t.Fatalf("revision = %q, disabled field accepted input", got)
	}

	// Clearing the release clears the derivation.
	c.SetValue(KeyRelease, "")
	if got := c.Field(KeyRevision).Value; got != "" {
		t.Fatalf("revision = %q, want cleared with release", got)
	}
}

func TestCreate_PastReleaseDateRejected(t *testing.T) {
	c := NewCreate(nil)
	fillValid(c)
	c.SetValue(KeyRelease, today(-1))

	if _, ok := c.Submit(); ok {
		t.Fatal("Submit accepted a past release date")
	}
	if res := c.Field(KeyRelease).Err; res == nil || res.Kind != validate.KindReleasePast {
		t.Fatalf("release err = %+v, want release_past", res)
	}
}

func TestCreate_DuplicateIDBlocksSubmit(t *testing.T) {
	checker, drain := syncChecker(t, true)
	c := NewCreate(checker)
	fillValid(c)
	drain(c)

	if _, ok := c.Submit(); ok {
		t.Fatal("Submit accepted a duplicate id")
	}
	if res := c.Field(KeyID).Err; res == nil || res.Kind != validate.KindDuplicateID {
		t.Fatalf("id err = %+v, want duplicate_id", res)
	}
}

func TestCreate_DuplicateIDSurvivesRepeatedInput(t *testing.T) {
	checker, drain := syncChecker(t, true)
	c := NewCreate(checker)
	fillValid(c)
	drain(c)

	// A key event that leaves the value untouched must not drop the verdict.
	c.SetValue(KeyID, "abc123")
	drain(c)

	if _, ok := c.Submit(); ok {
		t.Fatal("Submit accepted a known-duplicate id after a value-preserving key event")
	}
	if res := c.Field(KeyID).Err; res == nil || res.Kind != validate.KindDuplicateID {
		t.Fatalf("id err = %+v, want duplicate_id", res)
	}
}

func TestCreate_DuplicateIDReassertedAfterEdits(t *testing.T) {
	checker, drain := syncChecker(t, true)
	c := NewCreate(checker)
	fillValid(c)
	drain(c)

	// Detour through a value that fails the length rule, then return to the
	// duplicate. The checker skips the repeat network call, so the verdict
	// has to be re-delivered.
	c.SetValue(KeyID, "ab")
	c.SetValue(KeyID, "abc123")
	drain(c)

	if _, ok := c.Submit(); ok {
		t.Fatal("Submit accepted a known-duplicate id after editing back to it")
	}
	if res := c.Field(KeyID).Err; res == nil || res.Kind != validate.KindDuplicateID {
		t.Fatalf("id err = %+v, want duplicate_id", res)
	}
}

func TestCreate_SyncInvalidIDSkipsNetwork(t *testing.T) {
	var mu sync.Mutex
	var calls int
	checker := validate.NewUniqueChecker(validate.UniqueConfig{
		Verify: func(ctx context.Context, id string) (bool, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			return false, nil
		},
		Notify: func(validate.Outcome) {},
		Delay:  time.Millisecond,
	})
	c := NewCreate(checker)

	c.SetValue(KeyID, "ab") // fails the 3-10 length rule
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if calls != 0 {
		t.Fatalf("verify calls = %d for an id failing its own rules, want 0", calls)
	}
}

func TestCreate_PendingUniquenessBlocksSubmit(t *testing.T) {
	checker := validate.NewUniqueChecker(validate.UniqueConfig{
		Verify: func(ctx context.Context, id string) (bool, error) { return false, nil },
		Notify: func(validate.Outcome) {},
		Delay:  time.Hour, // never fires within the test
	})
	c := NewCreate(checker)
	fillValid(c)

	if !c.Field(KeyID).Pending {
		t.Fatal("id field not pending while the check is outstanding")
	}
	if _, ok := c.Submit(); ok {
		t.Fatal("Submit accepted a draft with the uniqueness check outstanding")
	}
}

func TestCreate_AvailableIDSubmits(t *testing.T) {
	checker, drain := syncChecker(t, false)
	c := NewCreate(checker)
	fillValid(c)
	drain(c)

	if _, ok := c.Submit(); !ok {
		t.Fatalf("Submit refused: %+v", fieldErrors(c))
	}
}

func TestEdit_InitializesFromRecord(t *testing.T) {
	rec := product.Product{
		ID:          "ed1",
		Name:        "Existing product",
		Description: "already stored on the server",
		Logo:        "logo.png",
		DateRelease: today(30),
	}
	c := NewEdit(rec, nil)

	if c.Mode() != ModeEdit {
		t.Fatalf("mode = %v, want edit", c.Mode())
	}
	if !c.Disabled(KeyID) {
		t.Fatal("id must be disabled in edit mode")
	}
	c.SetValue(KeyID, "other")
	if got := c.Field(KeyID).Value; got != "ed1" {
		t.Fatalf("id = %q, disabled field accepted input", got)
	}
	if got := c.Field(KeyRevision).Value; got != validate.AddYear(today(30)) {
		t.Fatalf("revision = %q, want derived from release", got)
	}
	if c.Field(KeyRelease).Touched {
		t.Fatal("valid release date wrongly pre-touched")
	}
}

func TestEdit_PastReleaseSurfacesImmediately(t *testing.T) {
	rec := product.Product{
		ID:          "ed1",
		Name:        "Existing product",
		Description: "already stored on the server",
		Logo:        "logo.png",
		DateRelease: today(-10),
	}
	c := NewEdit(rec, nil)

	state := c.Field(KeyRelease)
	if !state.Touched {
		t.Fatal("stale release date must be marked touched on load")
	}
	if state.Err == nil || state.Err.Kind != validate.KindReleaseStale {
		t.Fatalf("release err = %+v, want release_stale", state.Err)
	}

	// Advancing the date clears the violation.
	c.SetValue(KeyRelease, today(0))
	if res := c.Field(KeyRelease).Err; res != nil {
		t.Fatalf("release err = %+v after advancing, want valid", res)
	}
	if _, ok := c.Submit(); !ok {
		t.Fatalf("Submit refused after correction: %+v", fieldErrors(c))
	}
}

func TestReset_CreateClearsAndEditRestores(t *testing.T) {
	c := NewCreate(nil)
	fillValid(c)
	c.Reset()
	for _, key := range Keys {
		state := c.Field(key)
		if state.Value != "" || state.Touched {
			t.Fatalf("field %s = %+v after reset, want empty untouched", key, state)
		}
	}

	rec := product.Product{
		ID:          "ed1",
		Name:        "Existing product",
		Description: "already stored on the server",
		Logo:        "logo.png",
		DateRelease: today(30),
	}
	e := NewEdit(rec, nil)
	e.SetValue(KeyName, "Renamed")
	e.Reset()
	if got := e.Field(KeyName).Value; got != "Existing product" {
		t.Fatalf("name = %q after reset, want the original record value", got)
	}
}

func TestApplyUniqueOutcome_StaleValueDiscarded(t *testing.T) {
	c := NewCreate(nil)
	c.SetValue(KeyID, "current")

	c.ApplyUniqueOutcome(validate.Outcome{
		Value:  "older",
		Result: &validate.Result{Kind: validate.KindDuplicateID},
	})
	if res := c.Field(KeyID).Err; res != nil && res.Kind == validate.KindDuplicateID {
		t.Fatal("outcome for a superseded value was applied")
	}

	c.ApplyUniqueOutcome(validate.Outcome{
		Value:  "current",
		Result: &validate.Result{Kind: validate.KindDuplicateID},
	})
	if res := c.Field(KeyID).Err; res == nil || res.Kind != validate.KindDuplicateID {
		t.Fatalf("id err = %+v, want duplicate_id for the current value", res)
	}
}
