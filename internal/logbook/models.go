package logbook

import (
	"errors"
	"time"

	"flupp/internal/flupp"
)

var (
	// ErrNotFound is returned when an import or flight log does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoSource is returned by Source when the import was stored without
	// its raw export.
	ErrNoSource = errors.New("import has no archived source")
)

// ImportRequest describes a decoded logbook to persist.
type ImportRequest struct {
	SourceName string
	Checksum   string
	Document   *flupp.Document
	// Source is the raw export. It is archived when non-empty.
	Source []byte
}

// Import is the stored summary of one imported logbook file.
type Import struct {
	ID              string                 `json:"id"`
	SourceName      string                 `json:"source_name"`
	Checksum        string                 `json:"checksum"`
	ImportedAt      time.Time              `json:"imported_at"`
	GeneralSettings *flupp.GeneralSettings `json:"general_settings,omitempty"`
	FlightLogCount  int                    `json:"flight_log_count"`
	FlightCount     int                    `json:"flight_count"`
	SourceSize      int64                  `json:"source_size"`
	HasSource       bool                   `json:"has_source"`
}

// FlightLog is a stored flight log. The embedded Flights slice is left empty;
// use Store.Flights to load them.
type FlightLog struct {
	ID       int64  `json:"id"`
	ImportID string `json:"import_id"`
	Position int    `json:"position"`
	flupp.FlightLog
}

// Flight is a stored flight row.
type Flight struct {
	ID          int64 `json:"id"`
	FlightLogID int64 `json:"flight_log_id"`
	Position    int   `json:"position"`
	flupp.Flight
}
