// Command flupp decodes FluPP flight logbook exports and manages a local
// logbook database built from them.
//
// Decoding commands (parse, flights, totals, schema) work on files directly
// and need no configuration. The import, imports, watch and serve commands
// use the SQLite database in the configured data directory.
package main
