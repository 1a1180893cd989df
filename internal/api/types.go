package api

import (
	"flupp/internal/flupp"
	"flupp/internal/logbook"
	"flupp/internal/stats"
)

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cached   int    `json:"cached_documents"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Raw   string `json:"raw,omitempty"`
}

// ImportList wraps the stored imports.
type ImportList struct {
	Imports []*logbook.Import `json:"imports"`
}

// FlightLogList wraps the flight logs of one import.
type FlightLogList struct {
	ImportID   string               `json:"import_id"`
	FlightLogs []*logbook.FlightLog `json:"flight_logs"`
}

// FlightList wraps the flights of one flight log.
type FlightList struct {
	FlightLogID int64             `json:"flight_log_id"`
	Flights     []*logbook.Flight `json:"flights"`
}

// DecodeResponse is returned by the decode endpoint.
type DecodeResponse struct {
	Checksum string          `json:"checksum"`
	Cached   bool            `json:"cached"`
	Totals   stats.Report    `json:"totals"`
	Document *flupp.Document `json:"document"`
}
