// Package prefs handles nimbus user preferences persistence.
// Preferences are stored in ~/.config/nimbus/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/nimbus/internal/weather"
)

// Prefs is the persisted snapshot of the user's chosen location and units.
type Prefs struct {
	Location string        `toml:"location"`
	Lat      float64       `toml:"lat"`
	Lon      float64       `toml:"lon"`
	Units    weather.Units `toml:"units"`
}

// FromPoint builds preferences for a resolved location.
func FromPoint(p weather.LocationPoint, units weather.Units) Prefs {
	return Prefs{Location: p.Name, Lat: p.Lat, Lon: p.Lon, Units: units}
}

// Point returns the stored location.
func (p Prefs) Point() weather.LocationPoint {
	return weather.LocationPoint{Name: p.Location, Lat: p.Lat, Lon: p.Lon}
}

const defaultPrefsPath = "~/.config/nimbus/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path. A missing, unreadable or invalid file yields
// (nil, nil): the application then starts with no location selected.
func Load(path string) (*Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, nil // Graceful degradation
	}

	var p Prefs
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return nil, nil // Graceful degradation
	}
	p.Location = strings.TrimSpace(p.Location)
	if p.Location == "" {
		return nil, nil
	}
	return &p, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp := resolved + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, resolved); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

// Store persists preferences to a fixed path.
type Store struct {
	Path string
}

// Persist implements the engine's preferences collaborator.
func (s Store) Persist(p Prefs) error {
	return Save(s.Path, p)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultPrefsPath)
	}
	return ExpandPath(path)
}

// ExpandPath resolves a leading "~" and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
