// Package form owns the record-edit draft: one Controller per create or
// edit session, wiring the validation rules to the fields, deriving the
// revision date from the release date, and gating submission on both the
// synchronous rules and the asynchronous id-uniqueness check.
//
// The controller is UI-agnostic and performs no I/O. The caller resolves the
// record to edit, feeds key strokes in through SetValue, routes uniqueness
// outcomes back through ApplyUniqueOutcome, and sends the draft returned by
// Submit to the store.
package form
