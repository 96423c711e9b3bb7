package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"codplayer/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The database directory exists but is not initialized.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Database.Dir = filepath.Join(base, "db")
	cfg.Logging.Dir = filepath.Join(base, "logs")
	if err := os.MkdirAll(cfg.Database.Dir, 0o755); err != nil {
		t.Fatalf("mkdir database dir: %v", err)
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithLogLevel overrides the log level on the test config.
func WithLogLevel(level string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Logging.Level = level
	}
}
