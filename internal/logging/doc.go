// Package logging assembles the structured slog loggers used by the flupp
// commands, the importer and the HTTP API.
//
// It owns the console and JSON handlers, maps configuration levels onto slog
// levels, and exposes context helpers so import and request code can tag log
// lines with import IDs and correlation IDs. A no-op logger is provided for
// tests and wiring code that cannot fail.
package logging
