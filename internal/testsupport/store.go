package testsupport

import (
	"context"
	"testing"

	"flupp/internal/config"
	"flupp/internal/flupp"
	"flupp/internal/logbook"
	"flupp/internal/source"
)

// MustOpenStore opens a logbook.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *logbook.Store {
	t.Helper()

	store, err := logbook.Open(cfg)
	if err != nil {
		t.Fatalf("logbook.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustImportSample decodes SampleLogbook and stores it under name.
func MustImportSample(t testing.TB, store *logbook.Store, name string) *logbook.Import {
	t.Helper()

	data := []byte(SampleLogbook)
	doc, err := flupp.DecodeBytes(data)
	if err != nil {
		t.Fatalf("decode sample: %v", err)
	}
	imp, err := store.Import(context.Background(), logbook.ImportRequest{
		SourceName: name,
		Checksum:   source.Checksum(data),
		Document:   doc,
		Source:     data,
	})
	if err != nil {
		t.Fatalf("store.Import: %v", err)
	}
	return imp
}
