package weather

import (
	"path/filepath"
	"time"
)

// LocationPoint is a resolved or candidate location.
type LocationPoint struct {
	Name string
	Lat  float64
	Lon  float64
}

// Condition is one provider weather condition (e.g. "Rain", "light rain", "10d").
type Condition struct {
	Main        string
	Description string
	Icon        string
}

// Current holds a point-in-time observation. Hourly forecasts reuse it.
type Current struct {
	Time       time.Time
	Temp       float64
	FeelsLike  float64
	Pressure   int
	Humidity   int
	UVI        float64
	Visibility int
	WindSpeed  float64
	Pop        float64 // probability of precipitation, 0..1
	Conditions []Condition
}

// Icon returns the first condition icon code, or "" when none was reported.
func (c Current) Icon() string {
	if len(c.Conditions) == 0 {
		return ""
	}
	return c.Conditions[0].Icon
}

// Summary returns the first condition description.
func (c Current) Summary() string {
	if len(c.Conditions) == 0 {
		return ""
	}
	return c.Conditions[0].Description
}

// Daily is a one-day forecast.
type Daily struct {
	Time       time.Time
	Min        float64
	Max        float64
	Summary    string
	Pressure   int
	Humidity   int
	WindSpeed  float64
	Pop        float64
	UVI        float64
	Conditions []Condition
}

// Icon returns the first condition icon code.
func (d Daily) Icon() string {
	if len(d.Conditions) == 0 {
		return ""
	}
	return d.Conditions[0].Icon
}

// Alert is a government weather alert.
type Alert struct {
	Sender      string
	Event       string
	Start       time.Time
	End         time.Time
	Description string
	Tags        []string
}

// Snapshot is a full provider response for one location.
type Snapshot struct {
	Units    Units
	Timezone string
	Current  Current
	Hourly   []Current
	Daily    []Daily
	Alerts   []Alert
}

// Clone returns a deep copy so the snapshot can cross goroutines.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	dup := *s
	dup.Current = cloneCurrent(s.Current)
	if s.Hourly != nil {
		dup.Hourly = make([]Current, len(s.Hourly))
		for i, h := range s.Hourly {
			dup.Hourly[i] = cloneCurrent(h)
		}
	}
	if s.Daily != nil {
		dup.Daily = make([]Daily, len(s.Daily))
		for i, d := range s.Daily {
			d.Conditions = append([]Condition(nil), d.Conditions...)
			dup.Daily[i] = d
		}
	}
	if s.Alerts != nil {
		dup.Alerts = make([]Alert, len(s.Alerts))
		for i, a := range s.Alerts {
			a.Tags = append([]string(nil), a.Tags...)
			dup.Alerts[i] = a
		}
	}
	return &dup
}

func cloneCurrent(c Current) Current {
	c.Conditions = append([]Condition(nil), c.Conditions...)
	return c
}

// IconPath maps a provider icon code to a bundled image path.
func IconPath(icon string) string {
	if icon == "" {
		icon = "unknown"
	}
	return filepath.Join("icons", icon+".png")
}
