package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// Pages
	PageCurrent key.Binding
	PageHourly  key.Binding
	PageDaily   key.Binding
	PageAlerts  key.Binding
	PageLog     key.Binding

	// Weather actions
	Refresh      key.Binding
	ToggleUnits  key.Binding
	EditLocation key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Log page
	CycleLevel key.Binding

	// Search/input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next page"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous page"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),

		PageCurrent: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Current"),
		),
		PageHourly: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Hourly"),
		),
		PageDaily: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Daily"),
		),
		PageAlerts: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Alerts"),
		),
		PageLog: key.NewBinding(
			key.WithKeys("5", "l"),
			key.WithHelp("5/l", "Log"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		ToggleUnits: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Toggle units"),
		),
		EditLocation: key.NewBinding(
			key.WithKeys("/", "e"),
			key.WithHelp("/", "Change location"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		CycleLevel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle log level"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.EditLocation, k.Refresh, k.ToggleUnits, k.Tab, k.Help, k.Quit}
}

// footer returns the footer bindings, leaving out refresh when it is hidden.
func (k keyMap) footer(showRefresh bool) []key.Binding {
	if showRefresh {
		return k.ShortHelp()
	}
	return []key.Binding{k.EditLocation, k.ToggleUnits, k.Tab, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.PageCurrent, k.PageHourly, k.PageDaily, k.PageAlerts, k.PageLog},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.EditLocation, k.Refresh, k.ToggleUnits, k.Confirm, k.Escape},
		{k.CycleLevel},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
