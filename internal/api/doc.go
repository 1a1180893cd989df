// Package api serves stored logbooks over HTTP.
//
// Routes live under /api/v1 and are built on chi. Imports, flight logs and
// flights are read from the logbook store; an import can be deleted. The
// decode endpoint parses a posted export without storing it and caches the
// result by content checksum in an LRU cache.
//
// Responses are JSON. Errors carry a message and, for decode failures, the
// error kind so clients can tell malformed dates from unsupported versions.
package api
