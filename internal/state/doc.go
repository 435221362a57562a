// Package state provides the in-memory record cache for vitrine.
//
// # Overview
//
// The Store mirrors the records held by the remote catalog API and is the
// single point through which they are read or mutated. The list view derives
// its rows from Store snapshots; the form resolves "already known" records
// through it; and every network call the application makes goes through one
// of its operations.
//
// # Update Semantics
//
// Each operation follows the same lifecycle:
//
//	begin:   Loading = true, LastError cleared
//	network: the accessor call runs without any lock held
//	finish:  Loading = false, LastError set on failure
//
// Clearing the error on entry prevents a stale message from a previous
// attempt leaking into a new one. Cache mutation happens only after the
// server has confirmed:
//
//   - Load replaces the records wholesale; a failed load leaves them intact
//   - Create appends the server's returned record (insertion order is
//     creation order)
//   - Update replaces the matching record in place, preserving position
//   - Delete removes the matching record; an absent id is a no-op
//
// # Concurrency Model
//
// A sync.RWMutex guards the cache. The lock is held only while copying or
// mutating the record slice, never across network I/O, so a slow request
// cannot block readers. Concurrent operations are not queued: the Loading
// and LastError fields are last-write-wins, which is adequate for a
// single-user interactive client.
//
// # Snapshots
//
// Snapshot returns defensive copies. Mutating a returned snapshot never
// affects the cache, and redrawing the UI from a snapshot is safe while
// operations are in flight.
package state
