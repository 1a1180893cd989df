package importer_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"flupp/internal/flupp"
	"flupp/internal/importer"
	"flupp/internal/testsupport"
)

func TestImportFileStoresLogbook(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	imp := importer.New(cfg, store, nil)

	path := testsupport.WriteSample(t, testsupport.BaseDir(cfg), "club.flu")
	result, err := imp.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ImportFile returned error: %v", err)
	}
	if result.Duplicate {
		t.Fatal("first import must not be a duplicate")
	}
	if result.Import.SourceName != "club.flu" || result.Import.FlightCount != 3 {
		t.Fatalf("unexpected import %+v", result.Import)
	}
	if result.Document == nil || len(result.Document.FlightLogs) != 2 {
		t.Fatalf("unexpected document %+v", result.Document)
	}
	if !result.Import.HasSource {
		t.Fatal("expected source archive by default")
	}
}

func TestImportSkipsDuplicates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	imp := importer.New(cfg, store, nil)
	ctx := context.Background()

	first, err := imp.ImportBytes(ctx, "a.flu", []byte(testsupport.SampleLogbook))
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	second, err := imp.ImportBytes(ctx, "b.flu", []byte(testsupport.SampleLogbook))
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if !second.Duplicate || second.Import.ID != first.Import.ID {
		t.Fatalf("expected duplicate of %s, got %+v", first.Import.ID, second)
	}

	imports, err := store.ListImports(ctx)
	if err != nil {
		t.Fatalf("ListImports: %v", err)
	}
	if len(imports) != 1 {
		t.Fatalf("expected 1 stored import, got %d", len(imports))
	}
}

func TestImportWithoutDuplicateSkipping(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutDuplicateSkipping(), testsupport.WithoutArchive())
	store := testsupport.MustOpenStore(t, cfg)
	imp := importer.New(cfg, store, nil)
	ctx := context.Background()

	for _, name := range []string{"a.flu", "b.flu"} {
		result, err := imp.ImportBytes(ctx, name, []byte(testsupport.SampleLogbook))
		if err != nil {
			t.Fatalf("import %s: %v", name, err)
		}
		if result.Duplicate || result.Import.HasSource {
			t.Fatalf("unexpected result for %s: %+v", name, result.Import)
		}
	}
	imports, err := store.ListImports(ctx)
	if err != nil {
		t.Fatalf("ListImports: %v", err)
	}
	if len(imports) != 2 {
		t.Fatalf("expected 2 stored imports, got %d", len(imports))
	}
}

func TestImportCompressedFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	imp := importer.New(cfg, store, nil)

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	packed := enc.EncodeAll([]byte(testsupport.SampleLogbook), nil)
	enc.Close()
	path := testsupport.WriteLogbook(t, filepath.Join(testsupport.BaseDir(cfg), "club.flu.zst"), packed)

	result, err := imp.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ImportFile returned error: %v", err)
	}
	raw, err := store.Source(context.Background(), result.Import.ID)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if string(raw) != testsupport.SampleLogbook {
		t.Fatal("archive should hold the uncompressed export")
	}
}

func TestImportRejectsInvalidLogbook(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	imp := importer.New(cfg, store, nil)

	_, err := imp.ImportBytes(context.Background(), "old.flu", []byte("3\nheader\n:Log\n"))
	var versionErr *flupp.UnsupportedVersionError
	if !errors.As(err, &versionErr) || versionErr.Version != "3" {
		t.Fatalf("expected unsupported version error, got %v", err)
	}
	imports, err := store.ListImports(context.Background())
	if err != nil {
		t.Fatalf("ListImports: %v", err)
	}
	if len(imports) != 0 {
		t.Fatalf("rejected logbook must not be stored, got %d imports", len(imports))
	}
}
