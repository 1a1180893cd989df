package logbook

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"flupp/internal/flupp"
)

func nullableText(value interface{ MarshalText() ([]byte, error) }) (any, error) {
	text, err := value.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

func nullableSeconds(value *time.Duration) any {
	if value == nil {
		return nil
	}
	return int64(*value / time.Second)
}

// timestampLayout keeps fractional seconds fixed width so stored timestamps
// sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	return time.Parse(time.RFC3339Nano, value)
}

func optionalTimeOfDay(raw sql.NullString) (*flupp.TimeOfDay, error) {
	if !raw.Valid {
		return nil, nil
	}
	var t flupp.TimeOfDay
	if err := t.UnmarshalText([]byte(raw.String)); err != nil {
		return nil, err
	}
	return &t, nil
}

func encodeCategories(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode categories: %w", err)
	}
	return string(data), nil
}

func decodeCategories(raw string) ([]string, error) {
	values := []string{}
	if raw == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return values, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

const importColumns = "id, source_name, checksum, imported_at, club_name, club_road, club_location, pilot_name, has_general_settings, flight_log_count, flight_count, source_size, source_zstd IS NOT NULL"

func scanImport(scanner rowScanner) (*Import, error) {
	var (
		imp        Import
		importedAt string
		club       [4]sql.NullString
		hasGeneral bool
	)
	if err := scanner.Scan(
		&imp.ID,
		&imp.SourceName,
		&imp.Checksum,
		&importedAt,
		&club[0],
		&club[1],
		&club[2],
		&club[3],
		&hasGeneral,
		&imp.FlightLogCount,
		&imp.FlightCount,
		&imp.SourceSize,
		&imp.HasSource,
	); err != nil {
		return nil, err
	}
	if ts, err := parseTimeString(importedAt); err == nil {
		imp.ImportedAt = ts
	}
	if hasGeneral {
		imp.GeneralSettings = &flupp.GeneralSettings{
			Name:      club[0].String,
			Road:      club[1].String,
			Location:  club[2].String,
			PilotName: club[3].String,
		}
	}
	return &imp, nil
}

const flightLogColumns = "id, import_id, position, title, lic_starts, lic_time_seconds, lic_since, lic_id_prefix, lic_distance_unit"

func scanFlightLog(scanner rowScanner) (*FlightLog, error) {
	var (
		log         FlightLog
		timeSeconds int64
		since       sql.NullString
	)
	if err := scanner.Scan(
		&log.ID,
		&log.ImportID,
		&log.Position,
		&log.Title,
		&log.LicenseSettings.Starts,
		&timeSeconds,
		&since,
		&log.LicenseSettings.IDPrefix,
		&log.LicenseSettings.DistanceUnit,
	); err != nil {
		return nil, err
	}
	log.LicenseSettings.Time = time.Duration(timeSeconds) * time.Second
	if since.Valid {
		var d flupp.Date
		if err := d.UnmarshalText([]byte(since.String)); err != nil {
			return nil, fmt.Errorf("flight log %d license date: %w", log.ID, err)
		}
		log.LicenseSettings.LicenseSince = &d
	}
	for _, marker := range flupp.ListMarkers() {
		log.SetList(marker, []string{})
	}
	log.Flights = []flupp.Flight{}
	return &log, nil
}

const flightColumns = "id, flight_log_id, position, number, flight_date, aircraft_type, aircraft_id, pilot_name, copilot_name, passengers, start_type, start_time, landing_time, flight_seconds, block_on_time, block_off_time, block_seconds, landings, start_location, landing_location, remarks, distance, categories_json"

func scanFlight(scanner rowScanner) (*Flight, error) {
	var (
		f             Flight
		number        sql.NullInt64
		date          string
		start         string
		landing       string
		flightSeconds int64
		blockOn       sql.NullString
		blockOff      sql.NullString
		blockSeconds  sql.NullInt64
		distance      sql.NullFloat64
		categories    string
	)
	if err := scanner.Scan(
		&f.ID,
		&f.FlightLogID,
		&f.Position,
		&number,
		&date,
		&f.AircraftType,
		&f.AircraftID,
		&f.PilotName,
		&f.CoPilotName,
		&f.Passengers,
		&f.StartType,
		&start,
		&landing,
		&flightSeconds,
		&blockOn,
		&blockOff,
		&blockSeconds,
		&f.Landings,
		&f.StartLocation,
		&f.LandingLocation,
		&f.Remarks,
		&distance,
		&categories,
	); err != nil {
		return nil, err
	}

	if number.Valid {
		n := uint32(number.Int64)
		f.Number = &n
	}
	if err := f.Date.UnmarshalText([]byte(date)); err != nil {
		return nil, fmt.Errorf("flight %d date: %w", f.ID, err)
	}
	if err := f.StartTime.UnmarshalText([]byte(start)); err != nil {
		return nil, fmt.Errorf("flight %d start time: %w", f.ID, err)
	}
	if err := f.LandingTime.UnmarshalText([]byte(landing)); err != nil {
		return nil, fmt.Errorf("flight %d landing time: %w", f.ID, err)
	}
	f.FlightTime = time.Duration(flightSeconds) * time.Second

	var err error
	if f.BlockOnTime, err = optionalTimeOfDay(blockOn); err != nil {
		return nil, fmt.Errorf("flight %d block on time: %w", f.ID, err)
	}
	if f.BlockOffTime, err = optionalTimeOfDay(blockOff); err != nil {
		return nil, fmt.Errorf("flight %d block off time: %w", f.ID, err)
	}
	if blockSeconds.Valid {
		d := time.Duration(blockSeconds.Int64) * time.Second
		f.BlockTime = &d
	}
	if distance.Valid {
		v := float32(distance.Float64)
		f.Distance = &v
	}
	if f.Categories, err = decodeCategories(categories); err != nil {
		return nil, fmt.Errorf("flight %d: %w", f.ID, err)
	}
	return &f, nil
}
