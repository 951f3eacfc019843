package app

import (
	"fmt"
	"strings"

	"github.com/five82/nimbus/internal/state"
)

// Report renders a settled state as plain text for the command line.
func Report(v state.View) string {
	var b strings.Builder
	switch v.Status {
	case state.StatusPicking:
		b.WriteString("Several locations match, be more specific:\n")
		for _, c := range v.Candidates {
			fmt.Fprintf(&b, "  %s (%.3f, %.3f)\n", c.Name, c.Lat, c.Lon)
		}
		return b.String()
	case state.StatusInvalidData:
		fmt.Fprintf(&b, "%s: %s\n%s\n", v.LocationName, state.InvalidDataTitle, state.InvalidDataDetail)
		return b.String()
	case state.StatusNoLocation:
		return "No matching location found.\n"
	}

	units := v.Units
	fmt.Fprintf(&b, "%s\n", v.LocationName)
	if c := v.Weather.Current; c != nil {
		fmt.Fprintf(&b, "  %s", units.Temperature(c.Temp))
		if s := c.Summary(); s != "" {
			fmt.Fprintf(&b, ", %s", s)
		}
		fmt.Fprintf(&b, "\n  feels like %s, humidity %d%%, wind %s\n",
			units.Temperature(c.FeelsLike), c.Humidity, units.Speed(c.WindSpeed))
	}
	for i, d := range v.Weather.Daily {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "  %s  %s / %s  %s\n", d.Time.Format("Mon 02 Jan"),
			units.Temperature(d.Min), units.Temperature(d.Max), d.Summary)
	}
	for _, a := range v.Weather.Alerts {
		fmt.Fprintf(&b, "  ALERT %s (%s)\n", a.Event, a.Sender)
	}
	return b.String()
}
