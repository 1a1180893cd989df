// Package stats aggregates flight totals from decoded logbooks.
package stats

import (
	"fmt"
	"sort"
	"time"

	"flupp/internal/flupp"
)

// Totals accumulates counts over a set of flights.
type Totals struct {
	Flights    int           `json:"flights"`
	Landings   int           `json:"landings"`
	FlightTime time.Duration `json:"flight_time"`
	BlockTime  time.Duration `json:"block_time"`
	Distance   float64       `json:"distance"`
	First      *flupp.Date   `json:"first,omitempty"`
	Last       *flupp.Date   `json:"last,omitempty"`
}

// Add folds one flight into the totals.
func (t *Totals) Add(f *flupp.Flight) {
	t.Flights++
	t.Landings += int(f.Landings)
	t.FlightTime += f.FlightTime
	if f.BlockTime != nil {
		t.BlockTime += *f.BlockTime
	}
	if f.Distance != nil {
		t.Distance += float64(*f.Distance)
	}
	date := f.Date
	if t.First == nil || date.Time().Before(t.First.Time()) {
		t.First = &date
	}
	if t.Last == nil || date.Time().After(t.Last.Time()) {
		t.Last = &date
	}
}

// Merge adds other into t.
func (t *Totals) Merge(other Totals) {
	t.Flights += other.Flights
	t.Landings += other.Landings
	t.FlightTime += other.FlightTime
	t.BlockTime += other.BlockTime
	t.Distance += other.Distance
	if other.First != nil && (t.First == nil || other.First.Time().Before(t.First.Time())) {
		first := *other.First
		t.First = &first
	}
	if other.Last != nil && (t.Last == nil || other.Last.Time().After(t.Last.Time())) {
		last := *other.Last
		t.Last = &last
	}
}

// LogTotals are the totals of one flight log.
type LogTotals struct {
	Title        string `json:"title"`
	DistanceUnit string `json:"distance_unit,omitempty"`
	Totals
}

// GroupTotals are the totals of one aircraft type.
type GroupTotals struct {
	Key string `json:"key"`
	Totals
}

// Report is the aggregate over a whole document.
type Report struct {
	Logs     []LogTotals   `json:"logs"`
	Aircraft []GroupTotals `json:"aircraft"`
	Overall  Totals        `json:"overall"`
}

// Compute aggregates a document per flight log, per aircraft type and overall.
// Aircraft types are ordered by flight time, longest first.
func Compute(doc *flupp.Document) Report {
	report := Report{Logs: []LogTotals{}, Aircraft: []GroupTotals{}}
	if doc == nil {
		return report
	}

	byType := map[string]*Totals{}
	for i := range doc.FlightLogs {
		log := &doc.FlightLogs[i]
		lt := LogTotals{Title: log.Title, DistanceUnit: log.LicenseSettings.DistanceUnit}
		for j := range log.Flights {
			f := &log.Flights[j]
			lt.Add(f)
			group, ok := byType[f.AircraftType]
			if !ok {
				group = &Totals{}
				byType[f.AircraftType] = group
			}
			group.Add(f)
		}
		report.Overall.Merge(lt.Totals)
		report.Logs = append(report.Logs, lt)
	}

	for key, totals := range byType {
		report.Aircraft = append(report.Aircraft, GroupTotals{Key: key, Totals: *totals})
	}
	sort.Slice(report.Aircraft, func(i, j int) bool {
		a, b := report.Aircraft[i], report.Aircraft[j]
		if a.FlightTime != b.FlightTime {
			return a.FlightTime > b.FlightTime
		}
		return a.Key < b.Key
	})
	return report
}

// FormatDuration renders d as hours and minutes, e.g. "12:05".
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	minutes := int64(d / time.Minute)
	return fmt.Sprintf("%s%d:%02d", sign, minutes/60, minutes%60)
}
