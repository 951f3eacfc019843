package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/nimbus/internal/weather"
)

func TestLoad_MissingFileReturnsNil(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p != nil {
		t.Fatalf("Load = %#v, want nil", p)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "nimbus")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	body := "location = \"Paris, FR\"\nlat = 48.85\nlon = 2.35\nunits = \"imperial\"\n"
	if err := os.WriteFile(filepath.Join(prefsDir, "prefs.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p == nil {
		t.Fatalf("Load = nil, want prefs")
	}
	want := Prefs{Location: "Paris, FR", Lat: 48.85, Lon: 2.35, Units: weather.Imperial}
	if *p != want {
		t.Fatalf("Load = %#v, want %#v", *p, want)
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	want := FromPoint(weather.LocationPoint{Name: "Oslo, NO", Lat: 59.91, Lon: 10.75}, weather.Metric)
	if err := (Store{Path: prefsFile}).Persist(want); err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded == nil || *loaded != want {
		t.Fatalf("Load = %#v, want %#v", loaded, want)
	}
	if loaded.Point() != (weather.LocationPoint{Name: "Oslo, NO", Lat: 59.91, Lon: 10.75}) {
		t.Fatalf("Point = %#v", loaded.Point())
	}
	if _, err := os.Stat(prefsFile + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestSave_FailsWhenDirIsAFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := Save(filepath.Join(blocker, "prefs.toml"), Prefs{Location: "x"}); err == nil {
		t.Fatalf("Save returned nil error, want error")
	}
}

func TestLoad_EmptyLocationIsNoPrefs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("location = \"  \"\nlat = 1.0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p != nil {
		t.Fatalf("Load = %#v, want nil", p)
	}
}

func TestLoad_InvalidTOMLFallsBackToNil(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p != nil {
		t.Fatalf("Load = %#v, want nil", p)
	}
}

func TestLoad_UnknownUnitsFallsBackToNil(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("location = \"x\"\nunits = \"kelvin\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p != nil {
		t.Fatalf("Load = %#v, want nil", p)
	}
}
