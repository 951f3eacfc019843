package core

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/five82/nimbus/internal/prefs"
	"github.com/five82/nimbus/internal/state"
	"github.com/five82/nimbus/internal/weather"
)

// transition applies msg to st. It runs under the state lock and must not do
// I/O; anything slow is recorded in fx and run after the lock is released.
func (e *Engine) transition(st *state.App, msg Message, fx *effects) {
	switch m := msg.(type) {
	case RefreshRequested:
		e.refresh(st, fx)
	case WeatherRequested:
		e.requestWeather(st, m.Point, fx)
	case LocationSearchRequested:
		e.searchLocation(st, m.Query, fx)
	case LocationCandidatesFound:
		e.candidatesFound(st, m.Candidates, fx)
	case DataFetched:
		e.dataFetched(st, m, fx)
	case UnitsChanged:
		e.unitsChanged(st, m.Units, fx)
	case LocationResolved:
		if stale(st, m.Generation) {
			e.log.Debug("dropping stale location", "location", m.Name, "generation", m.Generation, "current", st.Generation)
			return
		}
		e.locationResolved(st, m.Name)
	case PreferencesPersist:
		if stale(st, m.Generation) {
			e.log.Debug("dropping stale preferences", "location", m.Prefs.Location, "generation", m.Generation, "current", st.Generation)
			return
		}
		p := m.Prefs
		st.Prefs = &p
		fx.persist = &p
	default:
		e.log.Warn("ignoring unknown message", "msg", Name(msg))
	}
}

func (e *Engine) refresh(st *state.App, fx *effects) {
	if st.Point == nil {
		e.log.Debug("refresh without a location, ignoring")
		return
	}
	e.requestWeather(st, *st.Point, fx)
}

func (e *Engine) requestWeather(st *state.App, p weather.LocationPoint, fx *effects) {
	st.Point = &p
	st.Candidates = nil
	st.Visible.Picker = false
	st.Generation++
	st.Status = state.StatusLoading

	gen, units := st.Generation, st.Units
	e.log.Info("fetching weather", "location", p.Name, "units", units, "generation", gen)
	fx.tasks = append(fx.tasks, task{name: "fetch", run: fetchTask(e.fetcher, e.handle, e.log, p, units, gen)})
}

func (e *Engine) searchLocation(st *state.App, query string, fx *effects) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	st.Visible.LocationLabel = false
	st.Visible.SearchEntry = false
	st.Visible.SearchButton = false
	st.Visible.Picker = false
	st.Candidates = nil
	st.Status = state.StatusSearching

	e.log.Info("searching locations", "query", query)
	fx.tasks = append(fx.tasks, task{name: "search", run: searchTask(e.searcher, e.log, query)})
}

func (e *Engine) candidatesFound(st *state.App, candidates []weather.LocationPoint, fx *effects) {
	switch len(candidates) {
	case 0:
		e.log.Info("no matching locations")
		e.resetLocation(st)
	case 1:
		e.selectSingleCandidate(st, candidates[0], fx)
	default:
		st.Candidates = append([]weather.LocationPoint(nil), candidates...)
		st.Visible.Picker = true
		st.Status = state.StatusPicking
	}
}

// selectSingleCandidate skips the picker when the search was unambiguous.
func (e *Engine) selectSingleCandidate(st *state.App, p weather.LocationPoint, fx *effects) {
	e.requestWeather(st, p, fx)
}

func (e *Engine) dataFetched(st *state.App, m DataFetched, fx *effects) {
	if m.Generation != st.Generation {
		e.log.Debug("dropping stale weather", "location", m.Point.Name, "generation", m.Generation, "current", st.Generation)
		return
	}
	if m.Snapshot == nil {
		st.ClearWeather()
		st.Status = state.StatusInvalidData
		fx.follow = append(fx.follow, LocationResolved{Name: m.Point.Name, Generation: m.Generation})
		return
	}
	if m.Snapshot.Units != st.Units {
		e.log.Debug("dropping weather in outdated units", "location", m.Point.Name, "units", m.Snapshot.Units)
		return
	}

	snap := m.Snapshot.Clone()
	st.Weather = state.Projections{
		Timezone: snap.Timezone,
		Current:  &snap.Current,
		Hourly:   snap.Hourly,
		Daily:    snap.Daily,
		Alerts:   snap.Alerts,
	}
	st.Status = state.StatusReady
	fx.follow = append(fx.follow,
		LocationResolved{Name: m.Point.Name, Generation: m.Generation},
		PreferencesPersist{Prefs: prefs.FromPoint(m.Point, st.Units), Generation: m.Generation},
	)
}

func (e *Engine) unitsChanged(st *state.App, units weather.Units, fx *effects) {
	st.Units = units
	if st.Prefs != nil {
		st.Prefs.Units = units
	}
	// Results still in flight were requested in the old units.
	st.Generation++
	fx.follow = append(fx.follow, RefreshRequested{})
}

func (e *Engine) locationResolved(st *state.App, name string) {
	if name == "" {
		e.resetLocation(st)
		return
	}
	st.LocationName = name
	st.ShowLocation()
}

func (e *Engine) resetLocation(st *state.App) {
	st.Point = nil
	st.LocationName = ""
	st.Candidates = nil
	st.ClearWeather()
	st.ShowSearch()
	st.Status = state.StatusNoLocation
	st.Generation++
}

// stale reports whether a follow-up tagged with gen was overtaken by a later
// fetch, reset or unit change. Zero means untagged.
func stale(st *state.App, gen uint64) bool {
	return gen != 0 && gen != st.Generation
}

// fetchTask captures its collaborators and a weak handle, never the Engine, so
// an outstanding fetch cannot keep the state alive.
func fetchTask(fetcher Fetcher, handle state.Handle[state.App], logger *log.Logger, p weather.LocationPoint, units weather.Units, gen uint64) func(ctx context.Context) Message {
	return func(ctx context.Context) Message {
		var snap *weather.Snapshot
		if fetcher == nil {
			logger.Warn("no weather fetcher configured", "location", p.Name)
		} else {
			got, err := fetcher.Fetch(ctx, units, p.Lat, p.Lon)
			if err != nil {
				logger.Warn("weather fetch failed", "location", p.Name, "error", err)
			} else {
				snap = got
			}
		}
		if superseded(handle, gen) {
			logger.Debug("fetch superseded, discarding", "location", p.Name, "generation", gen)
			return nil
		}
		return DataFetched{Snapshot: snap, Point: p, Generation: gen}
	}
}

// superseded peeks at the current generation. Contention or a released state
// answers false so the consumption loop makes the final call.
func superseded(handle state.Handle[state.App], gen uint64) bool {
	g, err := handle.TryAcquire()
	if err != nil {
		return false
	}
	defer g.Release()
	return g.Value().Generation != gen
}

func searchTask(searcher Searcher, logger *log.Logger, query string) func(ctx context.Context) Message {
	return func(ctx context.Context) Message {
		if searcher == nil {
			logger.Warn("no location searcher configured", "query", query)
			return LocationCandidatesFound{}
		}
		found, err := searcher.Search(ctx, query)
		if err != nil {
			logger.Warn("location search failed", "query", query, "error", err)
			return LocationCandidatesFound{}
		}
		logger.Debug("location search finished", "query", query, "results", len(found))
		return LocationCandidatesFound{Candidates: found}
	}
}
