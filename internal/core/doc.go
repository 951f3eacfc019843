// Package core is the update synchronization engine behind nimbus.
//
// # Overview
//
// All application state lives in a single state.Owner held by the Engine.
// Nothing else writes it. Key presses, the refresh poller and background
// tasks describe what they want as a Message and Submit it; the consumption
// loop (Run) takes messages off an unbounded Channel one at a time, locks the
// state, applies the transition and unlocks before touching the next one.
//
//	UI / poller ──Submit──┐
//	                       ▼
//	              ┌────────────────┐    apply    ┌──────────────┐
//	tasks ──Send──▶    Channel     ├────────────▶  state.Owner  │
//	              └────────────────┘  (one at a   └──────┬───────┘
//	                                   time)             │ Snapshot
//	                                                     ▼
//	                                              OnUpdate observers
//
// # Messages
//
// The Message set is closed:
//
//   - RefreshRequested: re-fetch the current location (no-op without one)
//   - WeatherRequested: select a location and fetch it
//   - LocationSearchRequested: geocode free text
//   - LocationCandidatesFound: zero results reset, one result fetches
//     directly, several show the picker
//   - DataFetched: apply a fetch outcome (nil snapshot means invalid data)
//   - UnitsChanged: switch units and queue a refresh
//   - LocationResolved: show the named location, or reset on ""
//   - PreferencesPersist: write preferences through to disk
//
// # Background Work
//
// Transitions never do I/O. A fetch or search is recorded as an effect and
// started by the Spawner after the lock is released. Each task gets a weak
// state.Handle and reports back only by sending a Message. When it finishes
// it checks that the handle still resolves; once the engine is closed the
// result is dropped without a message or a panic.
//
// Every fetch carries a generation number. Changing units, choosing another
// location or resetting bumps the generation, so a slow response for an
// earlier request is discarded instead of overwriting newer data. The
// LocationResolved and PreferencesPersist messages a fetch queues carry its
// generation too, so they cannot undo a reset that landed in between.
//
// Tasks never capture the Engine. The UI and timers use a Producer, which
// holds the channel and a weak handle, so only the owner keeps state alive.
//
// # Reading State
//
// Observers registered with OnUpdate receive a deep copy after every applied
// message, on the loop goroutine. TryView copies the state without blocking
// and reports false under contention; callers keep their previous frame and
// try again on the next event.
//
// # Errors
//
// Fetch and search failures are logged and turned into messages (invalid data
// or an empty candidate list). A failed preference write is logged and the
// engine carries on. Nothing a task does can stop the loop.
package core
