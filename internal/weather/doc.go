// Package weather is the OpenWeatherMap client and the weather data model.
//
// Client.Fetch calls the One Call 3.0 endpoint (current, hourly, daily and
// alerts, minutely excluded) and Client.Search calls the direct geocoding
// endpoint, returning up to five candidates named "City, State, Country".
// Both share a golang.org/x/time/rate limiter so bursts of refreshes and
// searches stay inside the API quota.
//
// Units selects metric or imperial readings and formats temperatures and
// speeds. It marshals to "metric"/"imperial" so it can live in TOML files.
//
// Errors are wrapped with the step that failed ("execute request", "decode
// response", ...). A missing API key fails with ErrMissingAPIKey before any
// network traffic.
package weather
