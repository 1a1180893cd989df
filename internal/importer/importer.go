package importer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"flupp/internal/config"
	"flupp/internal/flupp"
	"flupp/internal/logbook"
	"flupp/internal/logging"
	"flupp/internal/source"
)

const lockRetryDelay = 100 * time.Millisecond

// Result describes the outcome of one import.
type Result struct {
	// Import is the stored import, or the existing one for a duplicate.
	Import *logbook.Import
	// Duplicate is set when the content was already stored and skipped.
	Duplicate bool
	// Document is the decoded logbook; nil for duplicates.
	Document *flupp.Document
}

// Importer decodes logbook files and stores them.
type Importer struct {
	store          *logbook.Store
	lock           *flock.Flock
	logger         *slog.Logger
	skipDuplicates bool
	archiveSource  bool
}

// New constructs an Importer writing to store.
func New(cfg *config.Config, store *logbook.Store, logger *slog.Logger) *Importer {
	return &Importer{
		store:          store,
		lock:           flock.New(cfg.LockPath()),
		logger:         logging.NewComponentLogger(logger, "importer"),
		skipDuplicates: cfg.Import.SkipDuplicates,
		archiveSource:  cfg.Import.ArchiveSource,
	}
}

// ImportFile reads path, decompressing .gz and .zst exports, and imports it.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	data, err := source.Read(path)
	if err != nil {
		return nil, err
	}
	return i.ImportBytes(ctx, filepath.Base(path), data)
}

// ImportBytes imports raw FluPP content under the given source name.
func (i *Importer) ImportBytes(ctx context.Context, name string, data []byte) (*Result, error) {
	logger := i.logger.With(logging.String(logging.FieldSource, name))
	checksum := source.Checksum(data)

	doc, err := flupp.DecodeBytes(data)
	if err != nil {
		logging.WarnWithContext(logger, "logbook rejected", "import_decode_failed",
			"check that the file is a FluPP version 4 export", logging.Error(err))
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	locked, err := i.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire import lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("acquire import lock: %s is held by another process", i.lock.Path())
	}
	defer func() {
		if err := i.lock.Unlock(); err != nil {
			logger.Warn("failed to release import lock", logging.Error(err))
		}
	}()

	if i.skipDuplicates {
		existing, err := i.store.FindByChecksum(ctx, checksum)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			logger.Info("logbook already imported",
				logging.String(logging.FieldImportID, existing.ID),
				logging.String("checksum", checksum),
			)
			return &Result{Import: existing, Duplicate: true}, nil
		}
	}

	req := logbook.ImportRequest{
		SourceName: name,
		Checksum:   checksum,
		Document:   doc,
	}
	if i.archiveSource {
		req.Source = data
	}
	imp, err := i.store.Import(ctx, req)
	if err != nil {
		return nil, err
	}

	logging.WithContext(logging.WithImportID(ctx, imp.ID), logger).Info("logbook imported",
		logging.Int("flight_logs", imp.FlightLogCount),
		logging.Int("flights", imp.FlightCount),
	)
	return &Result{Import: imp, Document: doc}, nil
}
