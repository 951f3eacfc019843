// Package app is the composition root for nimbus.
//
// # Overview
//
// This package wires configuration, logging, preferences, the weather client,
// the core engine, the refresh poller and the UI together. Business logic
// lives in the domain packages; app only connects them.
//
// # Startup
//
//  1. config.Load reads ~/.config/nimbus/config.toml (and a .env file)
//  2. openLogger opens the log file; the TUI owns the terminal
//  3. prefs.Load reads the saved location, if any
//  4. weather.NewClient builds the rate-limited OpenWeatherMap client
//  5. core.New creates the engine holding the startup state
//  6. Run starts the consumption loop, queues the startup transition,
//     starts the poller and blocks in ui.Run
//
// In outline:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> setup()           config, logger, prefs, client, engine
//	       ├─────> engine.Run()      consumption loop (goroutine)
//	       ├─────> engine.Start()    saved location or search
//	       ├─────> StartPoller()     RefreshRequested every refresh_interval
//	       └─────> ui.Run()          TUI (blocks)
//
// # Polling Behavior
//
// The poller is off unless refresh_interval (or --refresh) is positive. It
// never fetches by itself; it submits RefreshRequested and the engine decides.
// While refreshes keep ending in invalid data the delay doubles up to an hour.
//
// # Error Handling
//
// Fatal errors (returned from Run and Now):
//   - Configuration file unreadable or invalid
//   - No API key configured
//   - Log file cannot be opened
//
// Everything after startup (fetch failures, search failures, failed
// preference writes) is logged and surfaces in the UI as state.
//
// # Shutdown
//
// When the UI exits, Run cancels the loop, closes the engine so in-flight
// tasks drop their results, waits up to two seconds for them and closes the
// log file.
//
// # One-shot Mode
//
// Now runs the same engine without the TUI: it submits a search (or starts
// from the saved location), drains the engine with RunUntilIdle and returns
// the settled state for Report to print.
package app
