package state

import (
	"github.com/five82/nimbus/internal/prefs"
	"github.com/five82/nimbus/internal/weather"
)

// Status is the high-level presentation state.
type Status int

const (
	StatusNoLocation Status = iota
	StatusSearching
	StatusPicking
	StatusLoading
	StatusReady
	StatusInvalidData
)

func (s Status) String() string {
	switch s {
	case StatusSearching:
		return "searching"
	case StatusPicking:
		return "picking"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusInvalidData:
		return "invalid data"
	default:
		return "no location"
	}
}

// Presentation texts shown when a fetch produced no usable data.
const (
	InvalidDataTitle  = "Invalid Data"
	InvalidDataDetail = "Please try another city name!"
)

// Visibility mirrors which affordances the front-end shows.
type Visibility struct {
	LocationLabel bool
	SearchEntry   bool
	SearchButton  bool
	Picker        bool
	Refresh       bool
	Details       bool // current/hourly/daily/alerts pages
}

// Projections are the weather views derived from the last successful fetch.
type Projections struct {
	Timezone string
	Current  *weather.Current
	Hourly   []weather.Current
	Daily    []weather.Daily
	Alerts   []weather.Alert
}

// Empty reports whether no weather data is held.
func (p Projections) Empty() bool {
	return p.Current == nil && len(p.Hourly) == 0 && len(p.Daily) == 0 && len(p.Alerts) == 0
}

// App is the application state. It lives inside an Owner and is only
// written by the consumption loop.
type App struct {
	Point        *weather.LocationPoint // last requested location
	LocationName string                 // resolved display name; empty means none
	Units        weather.Units
	Prefs        *prefs.Prefs
	Weather      Projections
	Candidates   []weather.LocationPoint
	Status       Status
	Visible      Visibility

	// Generation increments for every fetch issued and on reset. A DataFetched
	// carrying an older generation is stale.
	Generation uint64

	// Applied counts messages applied so far.
	Applied uint64
}

// NewApp builds the startup state. p may be nil when no preferences exist.
func NewApp(p *prefs.Prefs) App {
	app := App{Units: weather.Metric, Status: StatusNoLocation}
	if p != nil {
		dup := *p
		app.Prefs = &dup
		app.Units = p.Units
	}
	app.ShowSearch()
	return app
}

// ShowSearch switches affordances to "no location selected".
func (a *App) ShowSearch() {
	a.Visible = Visibility{SearchEntry: true, SearchButton: true}
}

// ShowLocation switches affordances to "location selected".
func (a *App) ShowLocation() {
	a.Visible = Visibility{LocationLabel: true, Refresh: true, Details: true}
}

// ClearWeather drops every projection.
func (a *App) ClearWeather() {
	a.Weather = Projections{}
}

// View is a deep copy of App that may be read from any goroutine.
type View struct {
	App
}

// Snapshot copies the state for observers.
func (a *App) Snapshot() View {
	dup := *a
	if a.Point != nil {
		p := *a.Point
		dup.Point = &p
	}
	if a.Prefs != nil {
		p := *a.Prefs
		dup.Prefs = &p
	}
	if a.Weather.Current != nil {
		c := *a.Weather.Current
		c.Conditions = append([]weather.Condition(nil), c.Conditions...)
		dup.Weather.Current = &c
	}
	if len(a.Weather.Hourly) > 0 || len(a.Weather.Daily) > 0 || len(a.Weather.Alerts) > 0 {
		clone := (&weather.Snapshot{
			Hourly: a.Weather.Hourly,
			Daily:  a.Weather.Daily,
			Alerts: a.Weather.Alerts,
		}).Clone()
		dup.Weather.Hourly = clone.Hourly
		dup.Weather.Daily = clone.Daily
		dup.Weather.Alerts = clone.Alerts
	}
	dup.Candidates = cloneCandidates(a.Candidates)
	return View{App: dup}
}

func cloneCandidates(in []weather.LocationPoint) []weather.LocationPoint {
	if len(in) == 0 {
		return nil
	}
	dup := make([]weather.LocationPoint, len(in))
	copy(dup, in)
	return dup
}
