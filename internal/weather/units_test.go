package weather

import "testing"

func TestParseUnits(t *testing.T) {
	tests := []struct {
		in      string
		want    Units
		wantErr bool
	}{
		{"metric", Metric, false},
		{" Imperial ", Imperial, false},
		{"", Metric, false},
		{"kelvin", Metric, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnits(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseUnits(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseUnits(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnitsFormatting(t *testing.T) {
	if got := Metric.Temperature(21.04); got != "21.0°C" {
		t.Fatalf("Metric.Temperature = %q", got)
	}
	if got := Imperial.Temperature(70); got != "70.0°F" {
		t.Fatalf("Imperial.Temperature = %q", got)
	}
	if got := Imperial.Speed(3.25); got != "3.2 mph" && got != "3.3 mph" {
		t.Fatalf("Imperial.Speed = %q", got)
	}
	if Metric.Toggle() != Imperial || Imperial.Toggle() != Metric {
		t.Fatalf("Toggle did not flip units")
	}
}

func TestUnitsTextRoundTrip(t *testing.T) {
	text, err := Imperial.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var u Units
	if err := u.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if u != Imperial {
		t.Fatalf("round trip = %v, want imperial", u)
	}
}

func TestSnapshotCloneIsIndependent(t *testing.T) {
	orig := &Snapshot{
		Current: Current{Conditions: []Condition{{Icon: "01d"}}},
		Hourly:  []Current{{Temp: 1, Conditions: []Condition{{Icon: "02d"}}}},
		Daily:   []Daily{{Max: 3}},
		Alerts:  []Alert{{Event: "Wind", Tags: []string{"Wind"}}},
	}
	dup := orig.Clone()
	dup.Current.Conditions[0].Icon = "x"
	dup.Hourly[0].Conditions[0].Icon = "x"
	dup.Daily[0].Max = 99
	dup.Alerts[0].Tags[0] = "x"

	if orig.Current.Icon() != "01d" || orig.Hourly[0].Icon() != "02d" ||
		orig.Daily[0].Max != 3 || orig.Alerts[0].Tags[0] != "Wind" {
		t.Fatalf("Clone shares memory with original: %#v", orig)
	}
	if (*Snapshot)(nil).Clone() != nil {
		t.Fatalf("nil Clone should be nil")
	}
}

func TestIconPath(t *testing.T) {
	if got := IconPath(""); got != "icons/unknown.png" {
		t.Fatalf("IconPath blank = %q", got)
	}
	if got := IconPath("10d"); got != "icons/10d.png" {
		t.Fatalf("IconPath = %q", got)
	}
}
