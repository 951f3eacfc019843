// Package config loads the nimbus configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. A .env file in the working directory is loaded into the environment
//  2. If a path is explicitly provided, use it
//  3. Otherwise, use ~/.config/nimbus/config.toml (default)
//  4. If the config file doesn't exist, fall back to defaults
//  5. NIMBUS_API_KEY, then OPENWEATHER_API_KEY, override api_key
//
// # Fields
//
//	api_key             = "..."                          # required to fetch
//	api_base_url        = "https://api.openweathermap.org"
//	geo_base_url        = ""                             # defaults to api_base_url
//	log_file            = "~/.local/state/nimbus/nimbus.log"
//	log_level           = "info"                         # debug, info, warn, error
//	theme               = "Nightfox"                     # Nightfox, Kanagawa, Slate
//	refresh_interval    = 0                              # seconds; 0 disables
//	request_timeout     = 10                             # seconds
//	requests_per_second = 1.0
//	request_burst       = 5
//
// Strings are trimmed, paths have "~" expanded, and a negative
// refresh_interval is rejected. Missing numeric fields keep their defaults.
package config
