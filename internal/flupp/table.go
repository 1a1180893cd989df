package flupp

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Flight is one decoded row of a flight table.
type Flight struct {
	Number          *uint32        `json:"number,omitempty"`
	Date            Date           `json:"date"`
	AircraftType    string         `json:"aircraft_type"`
	AircraftID      string         `json:"aircraft_id"`
	PilotName       string         `json:"pilot_name"`
	CoPilotName     string         `json:"copilot_name"`
	Passengers      uint8          `json:"passengers"`
	StartType       string         `json:"start_type"`
	StartTime       TimeOfDay      `json:"start_time"`
	LandingTime     TimeOfDay      `json:"landing_time"`
	FlightTime      time.Duration  `json:"flight_time"`
	BlockOnTime     *TimeOfDay     `json:"block_on_time,omitempty"`
	BlockOffTime    *TimeOfDay     `json:"block_off_time,omitempty"`
	BlockTime       *time.Duration `json:"block_time,omitempty"`
	Landings        uint16         `json:"landings"`
	StartLocation   string         `json:"start_location"`
	LandingLocation string         `json:"landing_location"`
	Remarks         string         `json:"remarks"`
	Distance        *float32       `json:"distance,omitempty"`
	Categories      []string       `json:"categories"`
}

type column int

const (
	columnUnknown column = iota
	columnNumber
	columnDate
	columnAircraftType
	columnAircraftID
	columnPilot
	columnCoPilot
	columnPassengers
	columnStartType
	columnStartTime
	columnLandingTime
	columnFlightTime
	columnBlockOnTime
	columnBlockOffTime
	columnBlockTime
	columnLandings
	columnStartLocation
	columnLandingLocation
	columnRemarks
	columnDistance
	columnCategories
)

// columnAliases maps every known [TableCols] key to its column. FluPP wrote
// English keys in newer releases and German abbreviations in older ones;
// both spellings appear in version 4 files.
var columnAliases = map[string]column{
	"Num": columnNumber,
	"Dat": columnDate,
	"ATy": columnAircraftType,
	"Mus": columnAircraftType,
	"AId": columnAircraftID,
	"Ken": columnAircraftID,
	"Pi1": columnPilot,
	"Pil": columnPilot,
	"Pi2": columnCoPilot,
	"Beg": columnCoPilot,
	"Pas": columnPassengers,
	"ToS": columnStartType,
	"Art": columnStartType,
	"StT": columnStartTime,
	"StZ": columnStartTime,
	"LaT": columnLandingTime,
	"LaZ": columnLandingTime,
	"FlT": columnFlightTime,
	"FlZ": columnFlightTime,
	"StB": columnBlockOnTime,
	"LaB": columnBlockOffTime,
	"BlT": columnBlockTime,
	"BlZ": columnBlockTime,
	"NoL": columnLandings,
	"AFl": columnLandings,
	"StL": columnStartLocation,
	"StO": columnStartLocation,
	"LaL": columnLandingLocation,
	"LaO": columnLandingLocation,
	"Rem": columnRemarks,
	"Bem": columnRemarks,
	"Dst": columnDistance,
	"Str": columnDistance,
	"Cat": columnCategories,
	"Kat": columnCategories,
}

func resolveColumn(key string) column {
	return columnAliases[key]
}

// decodeFlights decodes the text following [TableCols]: a header row of
// column keys and one flight per non-empty line.
func decodeFlights(table string) ([]Flight, error) {
	lines := splitLines(table)
	if len(lines) == 0 {
		return nil, ErrInvalidFile
	}

	keys := strings.Split(lines[0], ";")
	columns := make([]column, len(keys))
	for i, key := range keys {
		columns[i] = resolveColumn(key)
	}

	flights := make([]Flight, 0, len(lines)-1)
	for i, line := range lines[1:] {
		if line == "" {
			continue
		}
		flight, err := decodeFlight(line, columns)
		if err != nil {
			return nil, fmt.Errorf("table row %d: %w", i+1, err)
		}
		flights = append(flights, flight)
	}
	return flights, nil
}

func decodeFlight(line string, columns []column) (Flight, error) {
	values := strings.Split(line, ";")
	if len(values) != len(columns) {
		return Flight{}, ErrInvalidFile
	}

	flight := Flight{Landings: 1, Categories: []string{}}
	var hasDate, hasStart, hasLanding bool

	for i, value := range values {
		var err error
		switch columns[i] {
		case columnNumber:
			if value != "" {
				var n uint32
				n, err = parseUint[uint32](value, 32)
				flight.Number = &n
			}
		case columnDate:
			flight.Date, err = ParseDate(value)
			hasDate = err == nil
		case columnAircraftType:
			flight.AircraftType = value
		case columnAircraftID:
			flight.AircraftID = value
		case columnPilot:
			flight.PilotName = value
		case columnCoPilot:
			flight.CoPilotName = value
		case columnPassengers:
			if value != "" {
				flight.Passengers, err = parseUint[uint8](value, 8)
			}
		case columnStartType:
			flight.StartType = value
		case columnStartTime:
			flight.StartTime, err = ParseTime(value)
			hasStart = err == nil
		case columnLandingTime:
			flight.LandingTime, err = ParseTime(value)
			hasLanding = err == nil
		case columnFlightTime:
			if value != "" {
				flight.FlightTime, err = ParseDuration(value)
			}
		case columnBlockOnTime:
			flight.BlockOnTime, err = optionalTime(value)
		case columnBlockOffTime:
			flight.BlockOffTime, err = optionalTime(value)
		case columnBlockTime:
			if value != "" {
				var d time.Duration
				d, err = ParseDuration(value)
				flight.BlockTime = &d
			}
		case columnLandings:
			if value != "" {
				flight.Landings, err = parseUint[uint16](value, 16)
			}
		case columnStartLocation:
			flight.StartLocation = value
		case columnLandingLocation:
			flight.LandingLocation = value
		case columnRemarks:
			flight.Remarks = value
		case columnDistance:
			if value != "" {
				var d float64
				d, err = strconv.ParseFloat(value, 32)
				if err != nil {
					err = ErrInvalidFile
				}
				distance := float32(d)
				flight.Distance = &distance
			}
		case columnCategories:
			flight.Categories = splitNonEmpty(value, "/")
		}
		if err != nil {
			return Flight{}, err
		}
	}

	if !hasDate || !hasStart || !hasLanding {
		return Flight{}, ErrInvalidFile
	}
	return flight, nil
}

func optionalTime(value string) (*TimeOfDay, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseTime(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseUint decodes an unsigned integer cell. Malformed counters are a
// structural problem of the table rather than a scalar format error.
func parseUint[T uint8 | uint16 | uint32](value string, bits int) (T, error) {
	n, err := strconv.ParseUint(value, 10, bits)
	if err != nil {
		return 0, ErrInvalidFile
	}
	return T(n), nil
}

// splitNonEmpty splits s on sep and drops empty tokens. The result is never
// nil.
func splitNonEmpty(s, sep string) []string {
	out := []string{}
	for _, token := range strings.Split(s, sep) {
		if token != "" {
			out = append(out, token)
		}
	}
	return out
}

// splitLines splits text into lines, accepting both "\n" and "\r\n" endings.
// A final line terminator does not produce a trailing empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
