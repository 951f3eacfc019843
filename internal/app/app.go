package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/nimbus/internal/config"
	"github.com/five82/nimbus/internal/core"
	"github.com/five82/nimbus/internal/prefs"
	"github.com/five82/nimbus/internal/state"
	"github.com/five82/nimbus/internal/ui"
	"github.com/five82/nimbus/internal/weather"
)

// ErrNoLocation is returned by Now when neither a query nor a saved location exists.
var ErrNoLocation = errors.New("no saved location; pass a location to look up")

const shutdownGrace = 2 * time.Second

// Options configure the nimbus application.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses ~/.config/nimbus/prefs.toml
	RefreshEvery int    // seconds; overrides refresh_interval when positive
	Debug        bool
	Version      string // reported in the weather client's User-Agent
}

type session struct {
	cfg     config.Config
	logger  *log.Logger
	logFile io.Closer
	engine  *core.Engine
}

func setup(opts Options) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.RefreshEvery > 0 {
		cfg.RefreshInterval = time.Duration(opts.RefreshEvery) * time.Second
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: set api_key in the config file or NIMBUS_API_KEY", weather.ErrMissingAPIKey)
	}

	logger, logFile, err := openLogger(cfg.LogFile, cfg.LogLevel, opts.Debug)
	if err != nil {
		return nil, err
	}

	prefsPath, err := prefs.ExpandPath(firstNonEmpty(opts.PrefsPath, prefs.DefaultPath()))
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("resolve prefs path: %w", err)
	}
	saved, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("ignoring unreadable preferences", "path", prefsPath, "error", err)
		saved = nil
	}

	client, err := weather.NewClient(weather.Options{
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.APIBaseURL,
		GeoURL:            cfg.GeoBaseURL,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.RequestBurst,
		Version:           opts.Version,
	})
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("init weather client: %w", err)
	}

	engine := core.New(core.Options{
		Fetcher:     client,
		Searcher:    client,
		Prefs:       prefs.Store{Path: prefsPath},
		Initial:     saved,
		Logger:      logger.With("component", "core"),
		TaskTimeout: cfg.RequestTimeout * 3,
	})

	logger.Info("nimbus starting",
		"prefs", prefsPath,
		"saved_location", saved != nil,
		"refresh_interval", cfg.RefreshInterval,
	)
	return &session{cfg: cfg, logger: logger, logFile: logFile, engine: engine}, nil
}

func (rt *session) close() {
	rt.engine.Close()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := rt.engine.Wait(ctx); err != nil {
		rt.logger.Warn("background tasks still running at exit", "error", err)
	}
	rt.logger.Info("nimbus stopped")
	_ = rt.logFile.Close()
}

// Run boots the nimbus TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates, observe := ui.Notify()
	rt.engine.OnUpdate(observe)
	rt.engine.OnUpdate(func(msg core.Message, v state.View) {
		rt.logger.Debug("applied", "msg", core.Name(msg), "status", v.Status, "applied", v.Applied)
	})

	loopDone := make(chan error, 1)
	go func() { loopDone <- rt.engine.Run(ctx) }()

	rt.engine.Start()
	StartPoller(ctx, rt.engine.Producer(), rt.cfg.RefreshInterval, rt.logger.With("component", "poller"))

	uiErr := ui.Run(ctx, ui.Options{
		Engine:    rt.engine.Producer(),
		Updates:   updates,
		ThemeName: rt.cfg.Theme,
		LogPath:   rt.cfg.LogFile,
		LogLevel:  parseLevel(rt.cfg.LogLevel, opts.Debug),
	})

	cancel()
	if err := <-loopDone; err != nil {
		rt.logger.Error("consumption loop stopped", "error", err)
	}
	return uiErr
}

// Now resolves query (or the saved location when query is empty) without the
// TUI and returns the settled state.
func Now(ctx context.Context, opts Options, query string, units *weather.Units) (state.View, error) {
	rt, err := setup(opts)
	if err != nil {
		return state.View{}, err
	}
	defer rt.close()

	if units != nil {
		rt.engine.Submit(core.UnitsChanged{Units: *units})
	}
	switch {
	case query != "":
		rt.engine.Submit(core.LocationSearchRequested{Query: query})
	default:
		v, ok := rt.engine.TryView()
		if !ok || v.Prefs == nil {
			return state.View{}, ErrNoLocation
		}
		rt.engine.Start()
	}

	if err := rt.engine.RunUntilIdle(ctx); err != nil {
		return state.View{}, fmt.Errorf("resolve weather: %w", err)
	}
	v, ok := rt.engine.TryView()
	if !ok {
		return state.View{}, fmt.Errorf("read state: %w", state.ErrLockContention)
	}
	return v, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
