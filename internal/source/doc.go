// Package source opens logbook exports from disk. Plain .flu files are
// returned as-is; .gz and .zst files are decompressed transparently.
package source
