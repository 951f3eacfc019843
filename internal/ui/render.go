package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/five82/nimbus/internal/logtail"
	"github.com/five82/nimbus/internal/state"
	"github.com/five82/nimbus/internal/weather"
)

// renderMain renders header, page tabs, body and footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.body.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	v := m.view

	parts := []string{styles.Logo.Render("nimbus")}
	parts = append(parts, styles.StatusStyle(v.Status).Render(v.Status.String()))
	if v.Status == state.StatusSearching || v.Status == state.StatusLoading {
		parts = append(parts, styles.AccentText.Render(m.spinner.View()))
	}
	if v.Visible.LocationLabel && v.LocationName != "" {
		parts = append(parts, styles.Text.Bold(true).Render(truncate(v.LocationName, 48)))
	}
	parts = append(parts, styles.MutedText.Render(v.Units.String()))
	if c := v.Weather.Current; c != nil {
		parts = append(parts, styles.FaintText.Render("observed "+formatClock(c.Time, m.loc)))
	}
	if !m.hasView {
		parts = append(parts, styles.WarningText.Render("waiting for state..."))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	tabs := make([]string, 0, pageCount)
	for p := Page(0); p < pageCount; p++ {
		label := fmt.Sprintf("%d %s", p+1, p)
		if p == PageAlerts && len(m.view.Weather.Alerts) > 0 {
			label = fmt.Sprintf("%s (%d)", label, len(m.view.Weather.Alerts))
		}
		if p == m.page {
			tabs = append(tabs, styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	var hints []string
	switch {
	case m.input.Focused():
		hints = []string{"enter search", "esc clear", "ctrl+c quit"}
	case m.view.Visible.Picker:
		hints = []string{"j/k choose", "enter select", "esc back"}
	default:
		for _, b := range m.keys.footer(m.view.Visible.Refresh) {
			h := b.Help()
			hints = append(hints, h.Key+" "+strings.ToLower(h.Desc))
		}
	}
	if m.page == PageLog {
		hints = append(hints, "f level")
	}
	return styles.Footer.Width(m.width).Render(strings.Join(hints, "  •  "))
}

// renderBody renders the scrollable area for the current state and page.
func (m Model) renderBody() string {
	if m.page == PageLog {
		return m.renderLog()
	}
	styles := m.theme.Styles()
	v := m.view

	switch {
	case v.Visible.Picker:
		return m.renderPicker()
	case v.Visible.SearchEntry:
		return m.renderSearch()
	case v.Status == state.StatusSearching:
		return styles.MutedText.Render("Searching for locations...")
	case v.Status == state.StatusInvalidData:
		return m.renderInvalid()
	case v.Status == state.StatusLoading && v.Weather.Empty():
		return styles.MutedText.Render("Loading weather...")
	}

	switch m.page {
	case PageHourly:
		return m.renderHourly()
	case PageDaily:
		return m.renderDaily()
	case PageAlerts:
		return m.renderAlerts()
	default:
		return m.renderCurrent()
	}
}

func (m Model) renderSearch() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Choose a location"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Press enter to search. Add a country code to narrow it down."))
	return styles.Panel.Render(b.String())
}

func (m Model) renderPicker() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(fmt.Sprintf("%d locations match", len(m.view.Candidates))))
	b.WriteString("\n\n")
	for i, c := range m.view.Candidates {
		line := fmt.Sprintf("%-40s %8.3f, %8.3f", truncate(c.Name, 40), c.Lat, c.Lon)
		if i == m.cursor {
			b.WriteString(styles.Selected.Render("> " + line))
		} else {
			b.WriteString(styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderInvalid() string {
	styles := m.theme.Styles()
	return styles.DangerText.Render(state.InvalidDataTitle) + "\n\n" +
		styles.MutedText.Render(state.InvalidDataDetail)
}

func (m Model) renderCurrent() string {
	styles := m.theme.Styles()
	c := m.view.Weather.Current
	if c == nil {
		return styles.MutedText.Render("No weather data yet.")
	}
	units := m.view.Units

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(units.Temperature(c.Temp)))
	if s := c.Summary(); s != "" {
		b.WriteString("  ")
		b.WriteString(styles.AccentText.Render(titleCase(s)))
	}
	b.WriteString("\n\n")

	rows := [][2]string{
		{"Feels like", units.Temperature(c.FeelsLike)},
		{"Humidity", fmt.Sprintf("%d%%", c.Humidity)},
		{"Wind", units.Speed(c.WindSpeed)},
		{"Pressure", fmt.Sprintf("%d hPa", c.Pressure)},
		{"UV index", fmt.Sprintf("%.1f", c.UVI)},
		{"Visibility", formatVisibility(c.Visibility, units)},
		{"Icon", weather.IconPath(c.Icon())},
	}
	if len(m.view.Weather.Daily) > 0 {
		today := m.view.Weather.Daily[0]
		rows = append(rows,
			[2]string{"Today", units.Temperature(today.Min) + " / " + units.Temperature(today.Max)},
			[2]string{"Precipitation", formatPercent(today.Pop)},
		)
	}
	label := styles.MutedText.Width(16)
	for _, r := range rows {
		b.WriteString(label.Render(r[0]))
		b.WriteString(styles.Text.Render(r[1]))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHourly() string {
	styles := m.theme.Styles()
	hours := m.view.Weather.Hourly
	if len(hours) == 0 {
		return styles.MutedText.Render("No hourly forecast.")
	}
	units := m.view.Units

	var b strings.Builder
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("%-7s %-10s %-6s %-12s %s", "Time", "Temp", "Rain", "Wind", "Conditions")))
	b.WriteString("\n")
	for _, h := range hours {
		line := fmt.Sprintf("%-7s %-10s %-6s %-12s %s",
			formatClock(h.Time, m.loc),
			units.Temperature(h.Temp),
			formatPercent(h.Pop),
			units.Speed(h.WindSpeed),
			titleCase(h.Summary()),
		)
		b.WriteString(styles.Text.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDaily() string {
	styles := m.theme.Styles()
	days := m.view.Weather.Daily
	if len(days) == 0 {
		return styles.MutedText.Render("No daily forecast.")
	}
	units := m.view.Units

	var b strings.Builder
	for _, d := range days {
		b.WriteString(styles.AccentText.Render(fmt.Sprintf("%-11s", formatDay(d.Time, m.loc))))
		b.WriteString(styles.Text.Render(fmt.Sprintf(" %s / %s  %s rain",
			units.Temperature(d.Min), units.Temperature(d.Max), formatPercent(d.Pop))))
		b.WriteString("\n")
		if d.Summary != "" {
			b.WriteString(styles.MutedText.Width(max(m.width-4, 20)).Render("   " + d.Summary))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderAlerts() string {
	styles := m.theme.Styles()
	alerts := m.view.Weather.Alerts
	if len(alerts) == 0 {
		return styles.MutedText.Render("No active alerts.")
	}

	var b strings.Builder
	for i, a := range alerts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.DangerText.Render(a.Event))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(a.Sender))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(formatStamp(a.Start, m.loc) + " - " + formatStamp(a.End, m.loc)))
		b.WriteString("\n")
		if a.Description != "" {
			b.WriteString(styles.Text.Width(max(m.width-2, 20)).Render(a.Description))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderLog() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("level >= %s  %s", m.logLevel, m.logPath)))
	b.WriteString("\n")
	if m.logErr != nil {
		b.WriteString(styles.DangerText.Render(m.logErr.Error()))
		return b.String()
	}
	if len(m.logLines) == 0 {
		b.WriteString(styles.MutedText.Render("No log entries."))
		return b.String()
	}
	for _, line := range m.logLines {
		b.WriteString(m.colorizeLogLine(styles, line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) colorizeLogLine(styles Styles, line string) string {
	entry := logtail.Parse(line)
	if !entry.HasLevel() {
		return styles.FaintText.Render(line)
	}
	level := strings.ToUpper(entry.Level.String())
	var levelStyle lipgloss.Style
	switch {
	case entry.Level >= log.ErrorLevel:
		levelStyle = styles.DangerText
	case entry.Level >= log.WarnLevel:
		levelStyle = styles.WarningText.Bold(true)
	case entry.Level >= log.InfoLevel:
		levelStyle = styles.SuccessText
	default:
		levelStyle = styles.InfoText
	}
	return styles.FaintText.Render(entry.Time) + " " +
		levelStyle.Render(fmt.Sprintf("%-5s", level)) + " " +
		styles.Text.Render(entry.Message)
}
