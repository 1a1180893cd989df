package flupp

import (
	"fmt"
	"strings"
)

const tableColsPrefix = "[TableCols]"

// FlightLog is one logbook of a FluPP file: its title, license record, the
// pick lists FluPP keeps for data entry and the decoded flight table.
type FlightLog struct {
	Title                 string          `json:"title"`
	LicenseSettings       LicenseSettings `json:"license_settings"`
	AircraftIDs           []string        `json:"aircraft_ids"`
	AircraftTypes         []string        `json:"aircraft_types"`
	CoPilots              []string        `json:"copilots"`
	Locations             []string        `json:"locations"`
	ColumnWidths          []string        `json:"column_widths"`
	TimeCategories        []string        `json:"time_categories"`
	Categories            []string        `json:"categories"`
	ContestCategories     []string        `json:"contest_categories"`
	LicenseCategories     []string        `json:"license_categories"`
	LicenseTimeCategories []string        `json:"license_time_categories"`
	LicenseDates          []string        `json:"license_dates"`
	AccLicenses           []string        `json:"acc_licenses"`
	OptConditions         []string        `json:"opt_conditions"`
	Flights               []Flight        `json:"flights"`
}

// ListMarker names one of the marker-prefixed list lines of a flight log.
type ListMarker string

const (
	MarkerAircraftIDs           ListMarker = "[AId]"
	MarkerAircraftTypes         ListMarker = "[AType]"
	MarkerCoPilots              ListMarker = "[CoPilot]"
	MarkerLocations             ListMarker = "[Loc]"
	MarkerColumnWidths          ListMarker = "[ColWidth]"
	MarkerTimeCategories        ListMarker = "[CatTime]"
	MarkerCategories            ListMarker = "[Category]"
	MarkerContestCategories     ListMarker = "[Contest]"
	MarkerLicenseCategories     ListMarker = "[LicenseCat]"
	MarkerLicenseTimeCategories ListMarker = "[LicenseTimeCat]"
	MarkerLicenseDates          ListMarker = "[LicenseDates]"
	MarkerAccLicenses           ListMarker = "[AccLicenses]"
	MarkerOptConditions         ListMarker = "[OptConditions]"
)

// ListMarkers returns every list marker in file order.
func ListMarkers() []ListMarker {
	return []ListMarker{
		MarkerAircraftIDs,
		MarkerAircraftTypes,
		MarkerCoPilots,
		MarkerLocations,
		MarkerColumnWidths,
		MarkerTimeCategories,
		MarkerCategories,
		MarkerContestCategories,
		MarkerLicenseCategories,
		MarkerLicenseTimeCategories,
		MarkerLicenseDates,
		MarkerAccLicenses,
		MarkerOptConditions,
	}
}

// List returns the list stored under marker, or nil for an unknown marker.
func (l *FlightLog) List(marker ListMarker) []string {
	if p := l.listField(marker); p != nil {
		return *p
	}
	return nil
}

// SetList replaces the list stored under marker. Unknown markers are ignored
// and reported as false.
func (l *FlightLog) SetList(marker ListMarker, values []string) bool {
	p := l.listField(marker)
	if p == nil {
		return false
	}
	*p = values
	return true
}

func (l *FlightLog) listField(marker ListMarker) *[]string {
	switch marker {
	case MarkerAircraftIDs:
		return &l.AircraftIDs
	case MarkerAircraftTypes:
		return &l.AircraftTypes
	case MarkerCoPilots:
		return &l.CoPilots
	case MarkerLocations:
		return &l.Locations
	case MarkerColumnWidths:
		return &l.ColumnWidths
	case MarkerTimeCategories:
		return &l.TimeCategories
	case MarkerCategories:
		return &l.Categories
	case MarkerContestCategories:
		return &l.ContestCategories
	case MarkerLicenseCategories:
		return &l.LicenseCategories
	case MarkerLicenseTimeCategories:
		return &l.LicenseTimeCategories
	case MarkerLicenseDates:
		return &l.LicenseDates
	case MarkerAccLicenses:
		return &l.AccLicenses
	case MarkerOptConditions:
		return &l.OptConditions
	default:
		return nil
	}
}

// ParseFlightLog decodes one flight log segment, i.e. the text between two
// "\n:" separators of a FluPP file.
func ParseFlightLog(segment string) (FlightLog, error) {
	header, table, ok := strings.Cut(segment, tableColsPrefix)
	if !ok {
		return FlightLog{}, ErrInvalidFile
	}

	lines := splitLines(header)
	if len(lines) == 0 {
		return FlightLog{}, ErrInvalidFile
	}
	title, _, _ := strings.Cut(lines[0], ";")

	if len(lines) < 2 || !strings.HasPrefix(lines[1], licSettingsPrefix) {
		return FlightLog{}, ErrMissingLicSettings
	}
	license, err := ParseLicenseSettings(strings.TrimPrefix(lines[1], licSettingsPrefix))
	if err != nil {
		return FlightLog{}, err
	}

	flightLog := FlightLog{Title: title, LicenseSettings: license}
	rest := lines[2:]
	for _, marker := range ListMarkers() {
		*flightLog.listField(marker) = findList(rest, marker)
	}

	if flightLog.Flights, err = decodeFlights(table); err != nil {
		return FlightLog{}, fmt.Errorf("flight table: %w", err)
	}
	return flightLog, nil
}

// findList returns the entries of the last line starting with marker. A
// missing marker yields an empty list.
func findList(lines []string, marker ListMarker) []string {
	idx := lastIndexWithPrefix(lines, string(marker))
	if idx < 0 {
		return []string{}
	}
	return splitNonEmpty(strings.TrimPrefix(lines[idx], string(marker)), ";")
}

// lastIndexWithPrefix scans lines backwards and returns the index of the last
// line starting with prefix, or -1.
func lastIndexWithPrefix(lines []string, prefix string) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], prefix) {
			return i
		}
	}
	return -1
}
