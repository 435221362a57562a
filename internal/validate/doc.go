// Package validate implements the field validation pipeline for the record
// form: pure synchronous rules composed per field, and one network-backed
// asynchronous rule for id uniqueness.
//
// # Synchronous Rules
//
// A Rule takes the field's current string value and returns nil or a Result
// naming the failure kind, a message, and structured detail. Rules are pure;
// cross-field rules (revision-matches-release) receive the dependency's
// value explicitly when the rule is built, never a live reference to another
// field.
//
// A Field is an ordered chain evaluated front to back, reporting the first
// failure. Callers list rules in priority order: required, then length, then
// date relationships.
//
// Dates are compared at local-midnight granularity. Advancing a date one
// year uses Go's native normalization, so a Feb 29 release date yields a
// Mar 1 revision date in a non-leap target year.
//
// # The Uniqueness Check
//
// UniqueChecker debounces id existence lookups behind a 500ms quiet period,
// suppresses duplicate consecutive values, and sequences every scheduled
// check with a token so a slow response for a superseded value is discarded
// instead of overwriting the validity of a newer one. Network failures
// resolve valid (fail-open): availability over strictness, with server-side
// rejection as the backstop.
package validate
