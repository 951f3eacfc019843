package weather

import (
	"fmt"
	"strings"
)

// Units selects the measurement system requested from the provider.
type Units int

const (
	Metric Units = iota
	Imperial
)

// ParseUnits accepts "metric" or "imperial" in any case.
func ParseUnits(value string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "metric", "":
		return Metric, nil
	case "imperial":
		return Imperial, nil
	default:
		return Metric, fmt.Errorf("unknown units %q", value)
	}
}

func (u Units) String() string {
	if u == Imperial {
		return "imperial"
	}
	return "metric"
}

// Toggle returns the other unit system.
func (u Units) Toggle() Units {
	if u == Imperial {
		return Metric
	}
	return Imperial
}

// Temperature formats a temperature reported in u.
func (u Units) Temperature(v float64) string {
	if u == Imperial {
		return fmt.Sprintf("%.1f°F", v)
	}
	return fmt.Sprintf("%.1f°C", v)
}

// Speed formats a wind speed reported in u.
func (u Units) Speed(v float64) string {
	if u == Imperial {
		return fmt.Sprintf("%.1f mph", v)
	}
	return fmt.Sprintf("%.1f m/s", v)
}

// MarshalText lets Units round-trip through TOML as a string.
func (u Units) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Units) UnmarshalText(text []byte) error {
	parsed, err := ParseUnits(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
