// Package ui provides the Bubble Tea terminal front-end for nimbus.
//
// # Overview
//
// The UI is a thin presenter over the core engine. It never writes
// application state. Every user action becomes a core.Message passed to
// Engine.Submit, and what is drawn comes from Engine.TryView.
//
// # Reading State
//
// The engine's observer (see Notify) pushes a signal into a one-slot channel
// after each applied message; a waiting command turns that into an updateMsg
// and the model calls TryView. TryView never blocks: under contention the
// previous frame stays on screen and the next tick (PollTick, 500ms by
// default) tries again.
//
// # Layout
//
//	┌──────────────────────────────────────────────────────────┐
//	│ nimbus  ready  Oslo, NO  metric  observed 14:30          │ header
//	│ 1 Current │ 2 Hourly │ 3 Daily │ 4 Alerts (1) │ 5 Log    │ tabs
//	│                                                          │
//	│   body viewport: search entry, picker, invalid data,     │
//	│   or the selected page                                   │
//	│                                                          │
//	│ / change location • r refresh • u toggle units • ...     │ footer
//	└──────────────────────────────────────────────────────────┘
//
// Which body is shown follows state.Visibility: the search entry while no
// location is selected, the picker while several candidates are pending,
// the "Invalid Data" notice after a failed fetch, otherwise the page.
//
// # Keys
//
//   - / or e: change location (resets and focuses the search entry)
//   - enter: search, or pick the highlighted candidate
//   - r: refresh (only while a location is shown)
//   - u: toggle metric/imperial
//   - tab, shift+tab, 1-5: switch pages
//   - f: cycle the minimum level on the Log page
//   - T: cycle theme (Nightfox, Kanagawa, Slate)
//   - ?: help, q or ctrl+c: quit
//
// While the search entry has focus every printable key goes to the entry;
// only ctrl+c quits.
package ui
