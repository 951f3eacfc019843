// Package logtail reads and filters the nimbus log file for the Log page.
//
// # Overview
//
// nimbus writes its diagnostics through charmbracelet/log using the text
// formatter, one entry per line:
//
//	2026-10-18 09:15:01 INFO fetching weather location="Oslo, NO" units=metric generation=3
//	2026-10-18 09:15:02 WARN weather fetch failed location="Oslo, NO" error="api ... returned status 401"
//
// The TUI never holds the log open. Each refresh of the Log page calls Read
// for the last few hundred lines and Filter to apply the level the operator
// selected.
//
// # Reading
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays O(maxLines) regardless of file size. A missing file returns
// nil, nil: the log simply has not been written yet.
//
// # Parsing and Filtering
//
// Parse recognizes "date time LEVEL rest" lines and accepts both the
// four-letter level tokens the text formatter writes (DEBU, ERRO, FATA) and
// the full names. Lines that do not match are continuation lines; Filter
// keeps or drops them together with the entry above.
//
// Parsing never fails. Malformed lines are returned unchanged.
package logtail
