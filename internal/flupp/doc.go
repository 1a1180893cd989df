// Package flupp decodes FluPP logbook exports (file format version 4) into
// plain Go values.
//
// A FluPP export is a line oriented text file. The first line carries the
// format version, followed by a free-form header that may hold a
// [GenSettings] record, followed by one or more flight log segments that each
// start on a line beginning with ':'. A segment holds the log title, its
// [LicSettings] record, a number of marker-prefixed list lines and a
// semicolon separated flight table introduced by [TableCols].
//
// Decoding is a pure function of the input: Parse, DecodeBytes and Decode
// never mutate shared state and can be called concurrently. The first
// malformed element aborts decoding; no partial document is returned. Errors
// can be classified with errors.Is against the exported sentinels and the
// offending raw value recovered with errors.As and *ValueError.
package flupp
