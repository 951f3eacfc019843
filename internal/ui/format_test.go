package ui

import (
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/nimbus/internal/weather"
)

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0%"},
		{0.346, "35%"},
		{1, "100%"},
	}
	for _, tt := range tests {
		if got := formatPercent(tt.in); got != tt.want {
			t.Fatalf("formatPercent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatVisibility(t *testing.T) {
	if got := formatVisibility(10000, weather.Metric); got != "10.0 km" {
		t.Fatalf("metric visibility = %q", got)
	}
	if got := formatVisibility(10000, weather.Imperial); got != "6.2 mi" {
		t.Fatalf("imperial visibility = %q", got)
	}
}

func TestFormatClockUsesLocation(t *testing.T) {
	ts := time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)
	loc := time.FixedZone("CEST", 2*60*60)
	if got := formatClock(ts, loc); got != "14:30" {
		t.Fatalf("formatClock = %q, want 14:30", got)
	}
	if got := formatDay(ts, time.UTC); got != "Sun 18 Oct" {
		t.Fatalf("formatDay = %q, want Sun 18 Oct", got)
	}
	if got := formatClock(time.Time{}, time.UTC); got != "--:--" {
		t.Fatalf("formatClock zero = %q", got)
	}
}

func TestLoadLocationFallsBackToLocal(t *testing.T) {
	if got := loadLocation(""); got != time.Local {
		t.Fatalf("loadLocation(\"\") = %v, want Local", got)
	}
	if got := loadLocation("Not/AZone"); got != time.Local {
		t.Fatalf("loadLocation(invalid) = %v, want Local", got)
	}
}

func TestTitleCaseAndTruncate(t *testing.T) {
	if got := titleCase("light  rain"); got != "Light Rain" {
		t.Fatalf("titleCase = %q", got)
	}
	if got := truncate("Paris, Ile-de-France, FR", 10); got != "Paris, Il…" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("Oslo", 10); got != "Oslo" {
		t.Fatalf("truncate short = %q", got)
	}
}

func TestNextLevelCycles(t *testing.T) {
	got := []log.Level{}
	level := log.DebugLevel
	for range 4 {
		level = nextLevel(level)
		got = append(got, level)
	}
	want := []log.Level{log.InfoLevel, log.WarnLevel, log.ErrorLevel, log.DebugLevel}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("nextLevel cycle = %v, want %v", got, want)
		}
	}
}
