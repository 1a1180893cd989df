package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"flupp/internal/flupp"
	"flupp/internal/stats"
)

var flightHeaders = []string{"#", "Date", "Type", "Aircraft", "Pilot", "Co-pilot", "Start", "From", "Takeoff", "Landing", "To", "Time", "Ldg", "Dist", "Remarks"}

var flightAligns = []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}

func flightRow(index int, f *flupp.Flight) []string {
	number := strconv.Itoa(index)
	if f.Number != nil {
		number = strconv.FormatUint(uint64(*f.Number), 10)
	}
	return []string{
		number,
		f.Date.String(),
		f.AircraftType,
		f.AircraftID,
		f.PilotName,
		f.CoPilotName,
		f.StartType,
		f.StartLocation,
		shortTime(f.StartTime),
		shortTime(f.LandingTime),
		f.LandingLocation,
		stats.FormatDuration(f.FlightTime),
		strconv.Itoa(int(f.Landings)),
		formatDistance(f.Distance),
		f.Remarks,
	}
}

func flightFooter(t stats.Totals) []string {
	footer := make([]string, len(flightHeaders))
	footer[0] = "Total"
	footer[11] = stats.FormatDuration(t.FlightTime)
	footer[12] = strconv.Itoa(t.Landings)
	if t.Distance > 0 {
		footer[13] = strconv.FormatFloat(t.Distance, 'f', -1, 64)
	}
	return footer
}

func shortTime(t flupp.TimeOfDay) string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func formatDistance(d *float32) string {
	if d == nil {
		return ""
	}
	return strconv.FormatFloat(float64(*d), 'f', -1, 32)
}

func formatDatePtr(d *flupp.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
