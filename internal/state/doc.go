// Package state holds the nimbus application state and the lock-guarded cell
// that owns it.
//
// # Ownership
//
// An Owner is the single strong reference to a cell. The engine keeps it;
// everything else gets a Handle from Owner.Weak. Handles are built on
// weak.Pointer, so they never keep the state alive, and once Owner.Close has
// run no handle resolves again.
//
//	Owner (engine) ──strong──▶ cell{mutex, value}
//	Handle (tasks, UI) ─weak──▶ cell
//
// # Locking
//
// Handle.TryAcquire never blocks. It fails with ErrLockContention when another
// holder has the cell and ErrHandleExpired after Close. Callers treat
// contention as "try again on the next event". Only the engine's consumption
// loop uses the blocking Owner.Acquire, and nobody holds a Guard across I/O.
// Handle.With releases the lock on every exit path, panics included.
//
// # App
//
// App is the state itself: the selected location, units, preferences, the
// weather projections, pending candidates, the visibility of each UI
// affordance, a Status for the header and two counters. Generation tags
// fetches so stale results can be recognized; Applied counts messages.
//
// Snapshot returns a deep copy (View) that is safe to hand to other
// goroutines.
package state
