package logbook

import (
	"context"
	"fmt"

	"flupp/internal/flupp"
)

// FlightLogs returns the flight logs of an import in file order, with their
// marker lists populated and flights omitted.
func (s *Store) FlightLogs(ctx context.Context, importID string) ([]*FlightLog, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+flightLogColumns+" FROM flight_logs WHERE import_id = ? ORDER BY position", importID)
	if err != nil {
		return nil, fmt.Errorf("list flight logs: %w", err)
	}
	var logs []*FlightLog
	for rows.Next() {
		log, err := scanFlightLog(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan flight log: %w", err)
		}
		logs = append(logs, log)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list flight logs: %w", err)
	}

	for _, log := range logs {
		if err := s.loadLists(ctx, log); err != nil {
			return nil, err
		}
	}
	return logs, nil
}

// GetFlightLog fetches a single stored flight log, or nil when absent.
func (s *Store) GetFlightLog(ctx context.Context, id int64) (*FlightLog, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT "+flightLogColumns+" FROM flight_logs WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("get flight log: %w", err)
	}
	var log *FlightLog
	if rows.Next() {
		log, err = scanFlightLog(rows)
	}
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("scan flight log: %w", err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get flight log: %w", err)
	}
	if log == nil {
		return nil, nil
	}
	if err := s.loadLists(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *Store) loadLists(ctx context.Context, log *FlightLog) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT marker, value FROM flight_log_lists WHERE flight_log_id = ? ORDER BY marker, position", log.ID)
	if err != nil {
		return fmt.Errorf("load lists for flight log %d: %w", log.ID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var marker, value string
		if err := rows.Scan(&marker, &value); err != nil {
			return fmt.Errorf("scan list entry: %w", err)
		}
		m := flupp.ListMarker(marker)
		log.SetList(m, append(log.List(m), value))
	}
	return rows.Err()
}

// Flights returns the flights of a stored flight log in table order.
func (s *Store) Flights(ctx context.Context, flightLogID int64) ([]*Flight, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+flightColumns+" FROM flights WHERE flight_log_id = ? ORDER BY position", flightLogID)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	defer rows.Close()

	var flights []*Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// Document reassembles the decoded document of an import. It returns
// ErrNotFound for an unknown import.
func (s *Store) Document(ctx context.Context, importID string) (*flupp.Document, error) {
	imp, err := s.GetImport(ctx, importID)
	if err != nil {
		return nil, err
	}
	if imp == nil {
		return nil, ErrNotFound
	}
	logs, err := s.FlightLogs(ctx, importID)
	if err != nil {
		return nil, err
	}
	doc := &flupp.Document{GeneralSettings: imp.GeneralSettings, FlightLogs: make([]flupp.FlightLog, 0, len(logs))}
	for _, log := range logs {
		flights, err := s.Flights(ctx, log.ID)
		if err != nil {
			return nil, err
		}
		fl := log.FlightLog
		for _, f := range flights {
			fl.Flights = append(fl.Flights, f.Flight)
		}
		doc.FlightLogs = append(doc.FlightLogs, fl)
	}
	return doc, nil
}
