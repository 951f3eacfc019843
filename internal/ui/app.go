package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/nimbus/internal/core"
	"github.com/five82/nimbus/internal/logtail"
	"github.com/five82/nimbus/internal/state"
)

// Page is the active details page.
type Page int

const (
	PageCurrent Page = iota
	PageHourly
	PageDaily
	PageAlerts
	PageLog
	pageCount
)

var pageTitles = [pageCount]string{"Current", "Hourly", "Daily", "Alerts", "Log"}

func (p Page) String() string {
	if p < 0 || p >= pageCount {
		return "Unknown"
	}
	return pageTitles[p]
}

const (
	defaultTick  = 500 * time.Millisecond
	logTailLines = 400
)

// Engine is what the UI needs from the update engine.
type Engine interface {
	Submit(msg core.Message) bool
	TryView() (state.View, bool)
}

// Options configures the UI.
type Options struct {
	Engine    Engine
	Updates   <-chan struct{} // signalled after each applied message
	ThemeName string
	LogPath   string
	LogLevel  log.Level // minimum level shown on the Log page
	PollTick  time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	engine   Engine
	updates  <-chan struct{}
	logPath  string
	pollTick time.Duration

	// UI state
	theme    Theme
	keys     keyMap
	page     Page
	width    int
	height   int
	ready    bool
	showHelp bool

	// Engine state, the last frame successfully read
	view    state.View
	hasView bool
	loc     *time.Location

	// Widgets
	input   textinput.Model
	spinner spinner.Model
	body    viewport.Model
	cursor  int // picker selection

	// Log page
	logLines []string
	logLevel log.Level
	logErr   error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = defaultTick
	}

	input := textinput.New()
	input.Placeholder = "City name, e.g. Oslo or Paris, TX"
	input.Prompt = "Location: "
	input.CharLimit = 120

	m := Model{
		engine:   opts.Engine,
		updates:  opts.Updates,
		logPath:  opts.LogPath,
		pollTick: pollTick,
		theme:    GetTheme(opts.ThemeName),
		keys:     DefaultKeyMap(),
		loc:      time.Local,
		input:    input,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		body:     viewport.New(0, 0),
		logLevel: opts.LogLevel,
	}
	m.refreshView()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		m.spinner.Tick,
		tickCmd(m.pollTick),
	}
	if m.updates != nil {
		cmds = append(cmds, waitForUpdate(m.updates))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = msg.Width
		m.body.Height = max(msg.Height-3, 1) // header, tabs, footer
		m.input.Width = max(msg.Width-len(m.input.Prompt)-4, 10)
		m.ready = true
		m.syncBody()
		return m, nil

	case tickMsg:
		m.refreshView()
		cmds := []tea.Cmd{tickCmd(m.pollTick)}
		if m.page == PageLog {
			cmds = append(cmds, readLogCmd(m.logPath, m.logLevel))
		}
		return m, tea.Batch(cmds...)

	case updateMsg:
		m.refreshView()
		return m, waitForUpdate(m.updates)

	case logMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		if m.page == PageLog {
			m.syncBody()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// refreshView reads the engine state without blocking. On contention the
// previous frame stays and the next tick tries again.
func (m *Model) refreshView() {
	if m.engine == nil {
		return
	}
	v, ok := m.engine.TryView()
	if !ok {
		return
	}
	m.applyView(v)
}

func (m *Model) applyView(v state.View) {
	prev := m.view
	m.view = v
	m.hasView = true

	if v.Visible.Picker && (!prev.Visible.Picker || m.cursor >= len(v.Candidates)) {
		m.cursor = 0
	}
	if v.Visible.SearchEntry {
		if !m.input.Focused() {
			m.input.Focus()
		}
	} else if m.input.Focused() {
		m.input.Blur()
		m.input.Reset()
	}
	if v.Weather.Timezone != prev.Weather.Timezone {
		m.loc = loadLocation(v.Weather.Timezone)
	}
	m.syncBody()
}

func (m *Model) submit(msg core.Message) {
	if m.engine == nil {
		return
	}
	m.engine.Submit(msg)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.input.Focused() {
		return m.handleInputKey(msg)
	}
	if m.view.Visible.Picker {
		if handled, next, cmd := m.handlePickerKey(msg); handled {
			return next, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.syncBody()
	case key.Matches(msg, m.keys.Tab):
		return m.setPage((m.page + 1) % pageCount)
	case key.Matches(msg, m.keys.ShiftTab):
		return m.setPage((m.page + pageCount - 1) % pageCount)
	case key.Matches(msg, m.keys.PageCurrent):
		return m.setPage(PageCurrent)
	case key.Matches(msg, m.keys.PageHourly):
		return m.setPage(PageHourly)
	case key.Matches(msg, m.keys.PageDaily):
		return m.setPage(PageDaily)
	case key.Matches(msg, m.keys.PageAlerts):
		return m.setPage(PageAlerts)
	case key.Matches(msg, m.keys.PageLog):
		return m.setPage(PageLog)
	case key.Matches(msg, m.keys.Refresh):
		if m.view.Visible.Refresh {
			m.submit(core.RefreshRequested{})
		}
	case key.Matches(msg, m.keys.ToggleUnits):
		m.submit(core.UnitsChanged{Units: m.view.Units.Toggle()})
	case key.Matches(msg, m.keys.EditLocation):
		m.submit(core.LocationResolved{})
	case key.Matches(msg, m.keys.CycleLevel):
		if m.page == PageLog {
			m.logLevel = nextLevel(m.logLevel)
			return m, readLogCmd(m.logPath, m.logLevel)
		}
	case key.Matches(msg, m.keys.Top):
		m.body.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.body.GotoBottom()
	default:
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		query := m.input.Value()
		if strings.TrimSpace(query) != "" {
			m.submit(core.LocationSearchRequested{Query: query})
			m.input.Reset()
		}
		return m, nil
	case tea.KeyEsc:
		m.input.Reset()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	n := len(m.view.Candidates)
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(n-1, 0)
	case key.Matches(msg, m.keys.Confirm):
		if m.cursor < n {
			m.submit(core.WeatherRequested{Point: m.view.Candidates[m.cursor]})
		}
	case key.Matches(msg, m.keys.Escape):
		m.submit(core.LocationResolved{})
	default:
		return false, m, nil
	}
	m.syncBody()
	return true, m, nil
}

func (m Model) setPage(p Page) (tea.Model, tea.Cmd) {
	m.page = p
	m.body.GotoTop()
	m.syncBody()
	if p == PageLog {
		return m, readLogCmd(m.logPath, m.logLevel)
	}
	return m, nil
}

func (m *Model) syncBody() {
	m.body.SetContent(m.renderBody())
}

// Messages

type tickMsg time.Time

type updateMsg struct{}

type logMsg struct {
	lines []string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForUpdate(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return updateMsg{}
	}
}

func readLogCmd(path string, level log.Level) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, logTailLines)
		if err != nil {
			return logMsg{err: err}
		}
		return logMsg{lines: logtail.Filter(lines, level)}
	}
}

// Notify returns a channel signalled after every applied message together
// with the observer that signals it. The observer never blocks the engine;
// bursts collapse into one pending signal.
func Notify() (<-chan struct{}, core.Observer) {
	ch := make(chan struct{}, 1)
	return ch, func(core.Message, state.View) {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
