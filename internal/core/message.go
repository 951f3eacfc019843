package core

import (
	"github.com/five82/nimbus/internal/prefs"
	"github.com/five82/nimbus/internal/weather"
)

// Message is one requested state transition. The set is closed: only the
// types in this file implement it.
type Message interface {
	isMessage()
}

// DataFetched carries the outcome of a weather fetch. A nil Snapshot means the
// fetch failed. Generation identifies the request that produced it.
type DataFetched struct {
	Snapshot   *weather.Snapshot
	Point      weather.LocationPoint
	Generation uint64
}

// LocationResolved names the selected location. An empty Name resets the
// application to "no location selected". A non-zero Generation ties the
// message to the fetch that queued it; it is dropped once that fetch is stale.
type LocationResolved struct {
	Name       string
	Generation uint64
}

// LocationSearchRequested asks for candidate locations matching Query.
type LocationSearchRequested struct {
	Query string
}

// LocationCandidatesFound delivers search results.
type LocationCandidatesFound struct {
	Candidates []weather.LocationPoint
}

// PreferencesPersist writes Prefs through to the preferences store.
// Generation follows the same rule as in LocationResolved.
type PreferencesPersist struct {
	Prefs      prefs.Prefs
	Generation uint64
}

// UnitsChanged switches the unit system and triggers a refresh.
type UnitsChanged struct {
	Units weather.Units
}

// RefreshRequested re-fetches the current location.
type RefreshRequested struct{}

// WeatherRequested selects Point and fetches its weather.
type WeatherRequested struct {
	Point weather.LocationPoint
}

func (DataFetched) isMessage()             {}
func (LocationResolved) isMessage()        {}
func (LocationSearchRequested) isMessage() {}
func (LocationCandidatesFound) isMessage() {}
func (PreferencesPersist) isMessage()      {}
func (UnitsChanged) isMessage()            {}
func (RefreshRequested) isMessage()        {}
func (WeatherRequested) isMessage()        {}

// Name returns a short label for logging.
func Name(msg Message) string {
	switch msg.(type) {
	case DataFetched:
		return "data_fetched"
	case LocationResolved:
		return "location_resolved"
	case LocationSearchRequested:
		return "location_search_requested"
	case LocationCandidatesFound:
		return "location_candidates_found"
	case PreferencesPersist:
		return "preferences_persist"
	case UnitsChanged:
		return "units_changed"
	case RefreshRequested:
		return "refresh_requested"
	case WeatherRequested:
		return "weather_requested"
	default:
		return "unknown"
	}
}
