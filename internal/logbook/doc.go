// Package logbook persists decoded FluPP documents in SQLite.
//
// Each import is stored under a UUID together with its flight logs, their
// marker lists and flights. The raw export can be archived zstd compressed so
// the original file is recoverable. Schema changes ship as numbered SQL files
// under migrations/ and are applied on Open.
package logbook
