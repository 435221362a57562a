package validate

import (
	"fmt"
	"strings"
	"time"
)

// dayLayout is the date format every date field uses.
const dayLayout = "2006-01-02"

// Kind identifies which rule a value failed.
type Kind string

const (
	KindRequired         Kind = "required"
	KindTooShort         Kind = "too_short"
	KindTooLong          Kind = "too_long"
	KindBadDate          Kind = "bad_date"
	KindReleasePast      Kind = "release_past"
	KindReleaseStale     Kind = "release_stale"
	KindRevisionMismatch Kind = "revision_mismatch"
	KindDuplicateID      Kind = "duplicate_id"
)

// Result describes one rule failure. A nil *Result means the value passed.
type Result struct {
	Kind    Kind
	Message string
	// Detail carries structured failure data: bounds and actual length for
	// the length rules, the expected date for the revision rule.
	Detail map[string]string
}

// Rule evaluates a field's current value.
type Rule func(value string) *Result

// Field is an ordered rule chain. Rules are listed in priority order;
// Validate reports the first failure.
type Field struct {
	rules []Rule
}

// NewField builds a field validator from rules in priority order
// (required before length before date relationships).
func NewField(rules ...Rule) Field {
	return Field{rules: rules}
}

// Validate runs the chain and returns the first failing rule's result,
// or nil when every rule passes.
func (f Field) Validate(value string) *Result {
	for _, rule := range f.rules {
		if res := rule(value); res != nil {
			return res
		}
	}
	return nil
}

// Required fails on values that are empty after trimming.
func Required() Rule {
	return func(value string) *Result {
		if strings.TrimSpace(value) == "" {
			return &Result{Kind: KindRequired, Message: "this field is required"}
		}
		return nil
	}
}

// Length checks the trimmed length against inclusive bounds. Emptiness is
// the required rule's concern, so an empty value always passes.
func Length(min, max int) Rule {
	return func(value string) *Result {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return nil
		}
		length := len([]rune(trimmed))
		if length < min {
			return &Result{
				Kind:    KindTooShort,
				Message: fmt.Sprintf("must be at least %d characters (got %d)", min, length),
				Detail:  lengthDetail(min, length),
			}
		}
		if length > max {
			return &Result{
				Kind:    KindTooLong,
				Message: fmt.Sprintf("must be at most %d characters (got %d)", max, length),
				Detail:  lengthDetail(max, length),
			}
		}
		return nil
	}
}

func lengthDetail(bound, actual int) map[string]string {
	return map[string]string{
		"required_length": fmt.Sprintf("%d", bound),
		"actual_length":   fmt.Sprintf("%d", actual),
	}
}

// ReleaseMode selects which failure a past release date produces.
type ReleaseMode int

const (
	// ReleaseCreate flags a past date on a record being created.
	ReleaseCreate ReleaseMode = iota
	// ReleaseUpdate flags a past date on an existing record: the date was
	// once valid and now needs advancing before resubmission.
	ReleaseUpdate
)

// ReleaseNotPast fails when the date is strictly earlier than today's local
// midnight. Both modes share the comparison and differ only in kind and
// message.
func ReleaseNotPast(mode ReleaseMode) Rule {
	return func(value string) *Result {
		if strings.TrimSpace(value) == "" {
			return nil
		}
		day, ok := parseDay(value)
		if !ok {
			return badDate()
		}
		if day.Before(todayMidnight()) {
			if mode == ReleaseUpdate {
				return &Result{
					Kind:    KindReleaseStale,
					Message: "the release date has passed; advance it to today or later",
				}
			}
			return &Result{
				Kind:    KindReleasePast,
				Message: "the release date must be today or later",
			}
		}
		return nil
	}
}

// RevisionMatchesRelease fails unless the revision date is the release date
// advanced by exactly one year. The release value is passed in at build time
// so the rule holds no live reference to another field; the caller rebuilds
// the rule whenever the release date changes.
func RevisionMatchesRelease(release string) Rule {
	return func(value string) *Result {
		if strings.TrimSpace(value) == "" || strings.TrimSpace(release) == "" {
			return nil
		}
		revision, ok := parseDay(value)
		if !ok {
			return badDate()
		}
		releaseDay, ok := parseDay(release)
		if !ok {
			return nil // the release field reports its own format error
		}
		expected := releaseDay.AddDate(1, 0, 0)
		if !revision.Equal(expected) {
			return &Result{
				Kind:    KindRevisionMismatch,
				Message: "the revision date must be exactly one year after the release date",
				Detail:  map[string]string{"expected_date": expected.Format(dayLayout)},
			}
		}
		return nil
	}
}

// AddYear returns the date advanced by one calendar year, or "" when the
// input does not parse. Feb 29 normalizes forward to Mar 1, Go's native
// date rollover.
func AddYear(value string) string {
	day, ok := parseDay(value)
	if !ok {
		return ""
	}
	return day.AddDate(1, 0, 0).Format(dayLayout)
}

func badDate() *Result {
	return &Result{Kind: KindBadDate, Message: "enter a date as YYYY-MM-DD"}
}

// parseDay parses a YYYY-MM-DD value at local midnight.
func parseDay(value string) (time.Time, bool) {
	day, err := time.ParseInLocation(dayLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

func todayMidnight() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
