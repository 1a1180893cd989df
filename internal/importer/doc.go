// Package importer turns logbook files into stored imports. It reads and
// decompresses the export, skips content that was already imported, decodes
// it and persists the document. Writers across processes are serialized by a
// file lock in the data directory.
package importer
