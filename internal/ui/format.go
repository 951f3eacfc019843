package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/nimbus/internal/weather"
)

func loadLocation(name string) *time.Location {
	if strings.TrimSpace(name) == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

func formatClock(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.In(loc).Format("15:04")
}

func formatDay(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "---"
	}
	return t.In(loc).Format("Mon 02 Jan")
}

func formatStamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.In(loc).Format("Mon 02 Jan 15:04")
}

// formatPercent renders a 0..1 probability.
func formatPercent(p float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(p*100)))
}

// formatVisibility renders a distance reported in meters.
func formatVisibility(meters int, units weather.Units) string {
	if units == weather.Imperial {
		return fmt.Sprintf("%.1f mi", float64(meters)/1609.344)
	}
	return fmt.Sprintf("%.1f km", float64(meters)/1000)
}

// titleCase upper-cases the first letter of each word of a provider description.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// truncate shortens s to width runes, marking the cut with "…".
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

var levelCycle = []log.Level{log.DebugLevel, log.InfoLevel, log.WarnLevel, log.ErrorLevel}

func nextLevel(current log.Level) log.Level {
	for i, l := range levelCycle {
		if l == current {
			return levelCycle[(i+1)%len(levelCycle)]
		}
	}
	return log.InfoLevel
}
