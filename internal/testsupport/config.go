package testsupport

import (
	"path/filepath"
	"testing"

	"flupp/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.API.Bind = "127.0.0.1:0"
	cfgVal.Import.WatchDebounceMillis = 20

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithWatchDir configures a watch directory below the test root.
func WithWatchDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.WatchDir = filepath.Join(b.baseDir, "inbox")
	}
}

// WithoutDuplicateSkipping lets the same content be imported repeatedly.
func WithoutDuplicateSkipping() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Import.SkipDuplicates = false
	}
}

// WithoutArchive disables storing the raw export.
func WithoutArchive() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Import.ArchiveSource = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
