package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLevel log.Level
		wantTime  string
		wantMsg   string
	}{
		{
			name:      "short level",
			input:     "2026-10-18 09:15:02 INFO fetching weather location=\"Oslo, NO\" units=metric",
			wantLevel: log.InfoLevel,
			wantTime:  "2026-10-18 09:15:02",
			wantMsg:   "fetching weather location=\"Oslo, NO\" units=metric",
		},
		{
			name:      "four letter error",
			input:     "2026-10-18 09:15:03 ERRO persist preferences failed error=denied",
			wantLevel: log.ErrorLevel,
			wantTime:  "2026-10-18 09:15:03",
			wantMsg:   "persist preferences failed error=denied",
		},
		{
			name:      "full debug",
			input:     "2026-10-18 09:15:04 DEBUG dropping stale weather",
			wantLevel: log.DebugLevel,
			wantTime:  "2026-10-18 09:15:04",
			wantMsg:   "dropping stale weather",
		},
		{
			name:    "continuation",
			input:   "  stack line",
			wantMsg: "  stack line",
		},
		{
			name:    "unknown level",
			input:   "2026-10-18 09:15:04 NOTE hello",
			wantMsg: "2026-10-18 09:15:04 NOTE hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got.Time != tt.wantTime || got.Message != tt.wantMsg || got.Raw != tt.input {
				t.Fatalf("Parse() = %#v", got)
			}
			if got.HasLevel() && got.Level != tt.wantLevel {
				t.Fatalf("Level = %v, want %v", got.Level, tt.wantLevel)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	lines := []string{
		"2026-10-18 09:15:00 DEBU searching locations query=Paris",
		"2026-10-18 09:15:01 INFO fetching weather location=Paris",
		"2026-10-18 09:15:02 WARN weather fetch failed error=timeout",
		"    detail for warn",
		"2026-10-18 09:15:03 DEBU dropping stale weather",
		"    detail for debug",
		"2026-10-18 09:15:04 ERRO persist preferences failed",
	}

	got := Filter(lines, log.WarnLevel)
	want := []string{lines[2], lines[3], lines[6]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter(warn) = %v, want %v", got, want)
	}

	if got := Filter(lines, log.DebugLevel); !reflect.DeepEqual(got, lines) {
		t.Fatalf("Filter(debug) = %v, want all lines", got)
	}
}
