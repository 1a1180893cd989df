package logbook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"flupp/internal/flupp"
	"flupp/internal/logging"
	"flupp/internal/source"
)

// Import stores a decoded document and its flight logs in one transaction.
func (s *Store) Import(ctx context.Context, req ImportRequest) (*Import, error) {
	if req.Document == nil {
		return nil, errors.New("import: document is required")
	}
	if req.Checksum == "" {
		return nil, errors.New("import: checksum is required")
	}

	var archive []byte
	if len(req.Source) > 0 {
		var err error
		if archive, err = source.Compress(req.Source); err != nil {
			return nil, fmt.Errorf("archive source: %w", err)
		}
	}

	ctx = ensureContext(ctx)
	doc := req.Document
	imp := &Import{
		ID:              uuid.NewString(),
		SourceName:      req.SourceName,
		Checksum:        req.Checksum,
		ImportedAt:      time.Now().UTC(),
		GeneralSettings: doc.GeneralSettings,
		FlightLogCount:  len(doc.FlightLogs),
		FlightCount:     doc.FlightCount(),
		SourceSize:      int64(len(req.Source)),
		HasSource:       archive != nil,
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := insertImport(ctx, tx, imp, archive); err != nil {
			return err
		}
		for i := range doc.FlightLogs {
			if err := insertFlightLog(ctx, tx, imp.ID, i, &doc.FlightLogs[i]); err != nil {
				return fmt.Errorf("flight log %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store import: %w", err)
	}

	s.logger.Info("logbook stored",
		logging.String(logging.FieldImportID, imp.ID),
		logging.String(logging.FieldSource, imp.SourceName),
		logging.Int("flight_logs", imp.FlightLogCount),
		logging.Int("flights", imp.FlightCount),
		logging.Bool("archived", imp.HasSource),
	)
	return imp, nil
}

func insertImport(ctx context.Context, tx *sql.Tx, imp *Import, archive []byte) error {
	var club [4]any
	if gs := imp.GeneralSettings; gs != nil {
		club = [4]any{gs.Name, gs.Road, gs.Location, gs.PilotName}
	}
	var blob any
	if archive != nil {
		blob = archive
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO imports (id, source_name, checksum, imported_at, club_name, club_road, club_location, pilot_name,
			has_general_settings, flight_log_count, flight_count, source_size, source_zstd)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		imp.ID,
		imp.SourceName,
		imp.Checksum,
		formatTimestamp(imp.ImportedAt),
		club[0], club[1], club[2], club[3],
		imp.GeneralSettings != nil,
		imp.FlightLogCount,
		imp.FlightCount,
		imp.SourceSize,
		blob,
	)
	if err != nil {
		return fmt.Errorf("insert import: %w", err)
	}
	return nil
}

func insertFlightLog(ctx context.Context, tx *sql.Tx, importID string, position int, log *flupp.FlightLog) error {
	var since any
	if log.LicenseSettings.LicenseSince != nil {
		var err error
		if since, err = nullableText(log.LicenseSettings.LicenseSince); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO flight_logs (import_id, position, title, lic_starts, lic_time_seconds, lic_since, lic_id_prefix, lic_distance_unit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		importID,
		position,
		log.Title,
		int64(log.LicenseSettings.Starts),
		int64(log.LicenseSettings.Time/time.Second),
		since,
		log.LicenseSettings.IDPrefix,
		log.LicenseSettings.DistanceUnit,
	)
	if err != nil {
		return fmt.Errorf("insert flight log: %w", err)
	}
	logID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("flight log id: %w", err)
	}

	for _, marker := range flupp.ListMarkers() {
		for i, value := range log.List(marker) {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO flight_log_lists (flight_log_id, marker, position, value) VALUES (?, ?, ?, ?)",
				logID, string(marker), i, value,
			); err != nil {
				return fmt.Errorf("insert %s entry: %w", marker, err)
			}
		}
	}

	for i := range log.Flights {
		if err := insertFlight(ctx, tx, logID, i, &log.Flights[i]); err != nil {
			return fmt.Errorf("flight %d: %w", i+1, err)
		}
	}
	return nil
}

func insertFlight(ctx context.Context, tx *sql.Tx, logID int64, position int, f *flupp.Flight) error {
	var number any
	if f.Number != nil {
		number = int64(*f.Number)
	}
	var distance any
	if f.Distance != nil {
		distance = float64(*f.Distance)
	}
	var blockOn, blockOff any
	if f.BlockOnTime != nil {
		blockOn = f.BlockOnTime.String()
	}
	if f.BlockOffTime != nil {
		blockOff = f.BlockOffTime.String()
	}
	categories, err := encodeCategories(f.Categories)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO flights (flight_log_id, position, number, flight_date, aircraft_type, aircraft_id, pilot_name, copilot_name,
			passengers, start_type, start_time, landing_time, flight_seconds, block_on_time, block_off_time, block_seconds,
			landings, start_location, landing_location, remarks, distance, categories_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		logID,
		position,
		number,
		f.Date.String(),
		f.AircraftType,
		f.AircraftID,
		f.PilotName,
		f.CoPilotName,
		int64(f.Passengers),
		f.StartType,
		f.StartTime.String(),
		f.LandingTime.String(),
		int64(f.FlightTime/time.Second),
		blockOn,
		blockOff,
		nullableSeconds(f.BlockTime),
		int64(f.Landings),
		f.StartLocation,
		f.LandingLocation,
		f.Remarks,
		distance,
		categories,
	)
	if err != nil {
		return fmt.Errorf("insert flight: %w", err)
	}
	return nil
}

// GetImport fetches an import by ID. It returns nil when no import matches.
func (s *Store) GetImport(ctx context.Context, id string) (*Import, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, "SELECT "+importColumns+" FROM imports WHERE id = ?", id)
	imp, err := scanImport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get import: %w", err)
	}
	return imp, nil
}

// FindByChecksum returns the most recent import of content with the given
// checksum, or nil when it was never imported.
func (s *Store) FindByChecksum(ctx context.Context, checksum string) (*Import, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+importColumns+" FROM imports WHERE checksum = ? ORDER BY imported_at DESC LIMIT 1", checksum)
	imp, err := scanImport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find import by checksum: %w", err)
	}
	return imp, nil
}

// ListImports returns all imports, newest first.
func (s *Store) ListImports(ctx context.Context) ([]*Import, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT "+importColumns+" FROM imports ORDER BY imported_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	defer rows.Close()

	var imports []*Import
	for rows.Next() {
		imp, err := scanImport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		imports = append(imports, imp)
	}
	return imports, rows.Err()
}

// Source returns the original export bytes of an import.
func (s *Store) Source(ctx context.Context, id string) ([]byte, error) {
	ctx = ensureContext(ctx)
	var (
		exists  int
		archive []byte
	)
	err := s.db.QueryRowContext(ctx, "SELECT 1, source_zstd FROM imports WHERE id = ?", id).Scan(&exists, &archive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load source: %w", err)
	}
	if archive == nil {
		return nil, ErrNoSource
	}
	return source.Decompress(archive)
}

// Remove deletes an import together with its flight logs and flights.
// It reports whether an import was deleted.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	ctx = ensureContext(ctx)
	var removed bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM imports WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete import: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		removed = affected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	if removed {
		s.logger.Info("import removed", logging.String(logging.FieldImportID, id))
	}
	return removed, nil
}
