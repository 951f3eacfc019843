package ui

import (
	"testing"

	"github.com/five82/nimbus/internal/state"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Nightfox", "Kanagawa"},
		{"Kanagawa", "Slate"},
		{"Slate", "Nightfox"},
		{"Unknown", "Nightfox"},
	}
	for _, tt := range tests {
		if got := NextTheme(tt.in); got != tt.want {
			t.Fatalf("NextTheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetTheme_FallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q", got)
	}
	if got := GetTheme("Dracula").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Dracula).Name = %q, want Nightfox", got)
	}
}

func TestThemesColorEveryStatus(t *testing.T) {
	statuses := []state.Status{
		state.StatusNoLocation,
		state.StatusSearching,
		state.StatusPicking,
		state.StatusLoading,
		state.StatusReady,
		state.StatusInvalidData,
	}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, st := range statuses {
			if th.StatusColors[st.String()] == "" {
				t.Fatalf("theme %s has no color for %q", name, st)
			}
		}
	}
}
