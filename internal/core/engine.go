package core

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/nimbus/internal/prefs"
	"github.com/five82/nimbus/internal/state"
	"github.com/five82/nimbus/internal/weather"
)

// ErrAlreadyRunning is returned when a second consumer is started.
var ErrAlreadyRunning = errors.New("engine is already running")

// Fetcher retrieves weather for a coordinate.
type Fetcher interface {
	Fetch(ctx context.Context, units weather.Units, lat, lon float64) (*weather.Snapshot, error)
}

// Searcher resolves free text to candidate locations.
type Searcher interface {
	Search(ctx context.Context, query string) ([]weather.LocationPoint, error)
}

// PrefsStore persists preferences.
type PrefsStore interface {
	Persist(p prefs.Prefs) error
}

// Observer is told about every applied message together with the resulting state.
type Observer func(msg Message, view state.View)

// Options configure an Engine.
type Options struct {
	Fetcher     Fetcher
	Searcher    Searcher
	Prefs       PrefsStore
	Initial     *prefs.Prefs // nil when no preferences were saved
	Logger      *log.Logger
	TaskTimeout time.Duration
}

// Engine owns the application state and is its only writer. Producers
// Submit messages; Run drains them one at a time.
type Engine struct {
	owner   *state.Owner[state.App]
	handle  state.Handle[state.App]
	ch      *Channel
	spawner *Spawner

	fetcher  Fetcher
	searcher Searcher
	store    PrefsStore
	log      *log.Logger

	initial *prefs.Prefs

	obsMu     sync.Mutex
	observers []Observer

	cancel    context.CancelFunc
	running   atomic.Bool
	closeOnce sync.Once
}

// New builds an Engine holding the startup state.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())

	owner := state.NewOwner(state.NewApp(opts.Initial))
	ch := NewChannel()
	e := &Engine{
		owner:    owner,
		handle:   owner.Weak(),
		ch:       ch,
		fetcher:  opts.Fetcher,
		searcher: opts.Searcher,
		store:    opts.Prefs,
		log:      logger,
		cancel:   cancel,
	}
	if opts.Initial != nil {
		dup := *opts.Initial
		e.initial = &dup
	}
	e.spawner = NewSpawner(ctx, e.handle, ch, logger.With("component", "spawner"), opts.TaskTimeout)
	return e
}

// Submit enqueues msg. It never blocks and reports false after Close.
func (e *Engine) Submit(msg Message) bool {
	return e.Producer().Submit(msg)
}

// Producer is a non-owning front onto an Engine for UI callbacks and timers.
// It holds the channel and a weak handle only, so keeping one does not keep
// the state alive.
type Producer struct {
	ch     *Channel
	handle state.Handle[state.App]
}

// Producer returns a Producer for e.
func (e *Engine) Producer() Producer {
	return Producer{ch: e.ch, handle: e.handle}
}

// Submit enqueues msg. It never blocks and reports false after Close.
func (p Producer) Submit(msg Message) bool {
	return p.ch.Send(msg)
}

// TryView copies the state without blocking. It reports false when the loop
// holds the lock or the state has been released.
func (p Producer) TryView() (state.View, bool) {
	g, err := p.handle.TryAcquire()
	if err != nil {
		return state.View{}, false
	}
	defer g.Release()
	return g.Value().Snapshot(), true
}

// Start queues the startup transition: load the saved location, or show the
// search affordances when there is none.
func (e *Engine) Start() {
	if e.initial != nil {
		e.Submit(WeatherRequested{Point: e.initial.Point()})
		return
	}
	e.Submit(LocationResolved{})
}

// OnUpdate registers an observer. Observers run on the consumption goroutine
// and must not block for long.
func (e *Engine) OnUpdate(fn Observer) {
	e.obsMu.Lock()
	defer e.obsMu.Unlock()
	e.observers = append(e.observers, fn)
}

// Handle returns a weak handle to the state.
func (e *Engine) Handle() state.Handle[state.App] {
	return e.handle
}

// TryView is Producer().TryView.
func (e *Engine) TryView() (state.View, bool) {
	return e.Producer().TryView()
}

// Run drains the channel until ctx ends or the engine is closed.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer e.running.Store(false)

	for {
		msg, err := e.ch.Receive(ctx)
		if err != nil {
			if errors.Is(err, ErrChannelClosed) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		e.apply(msg)
	}
}

// RunUntilIdle drains the channel, waiting for spawned tasks, until nothing is
// queued and nothing is in flight.
func (e *Engine) RunUntilIdle(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer e.running.Store(false)

	for {
		if e.ch.Len() > 0 {
			msg, err := e.ch.Receive(ctx)
			if err != nil {
				return err
			}
			e.apply(msg)
			continue
		}
		if e.spawner.Inflight() == 0 {
			if e.ch.Len() == 0 {
				return nil
			}
			continue
		}
		if err := e.spawner.Wait(ctx); err != nil {
			return err
		}
	}
}

// Close tears the state down. In-flight tasks become inert: their results are
// dropped once they notice the handle no longer resolves.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		e.cancel()
		e.ch.Close()
		e.owner.Close()
	})
}

// Wait blocks until spawned tasks have finished or ctx ends.
func (e *Engine) Wait(ctx context.Context) error {
	return e.spawner.Wait(ctx)
}

// effects are collected under the lock and executed after it is released.
type effects struct {
	follow  []Message
	tasks   []task
	persist *prefs.Prefs
}

type task struct {
	name string
	run  func(ctx context.Context) Message
}

func (e *Engine) apply(msg Message) {
	g, err := e.owner.Acquire()
	if err != nil {
		e.log.Debug("state released, dropping message", "msg", Name(msg))
		return
	}

	var fx effects
	view := func() state.View {
		defer g.Release()
		st := g.Value()
		st.Applied++
		e.transition(st, msg, &fx)
		return st.Snapshot()
	}()

	if fx.persist != nil {
		e.persist(*fx.persist)
	}
	for _, m := range fx.follow {
		e.ch.Send(m)
	}
	for _, t := range fx.tasks {
		e.spawner.Spawn(t.name, t.run)
	}

	e.obsMu.Lock()
	observers := append([]Observer(nil), e.observers...)
	e.obsMu.Unlock()
	for _, fn := range observers {
		fn(msg, view)
	}
}

func (e *Engine) persist(p prefs.Prefs) {
	if e.store == nil {
		return
	}
	if err := e.store.Persist(p); err != nil {
		e.log.Error("persist preferences failed", "location", p.Location, "error", err)
		return
	}
	e.log.Debug("preferences saved", "location", p.Location, "units", p.Units)
}
