package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"codplayer/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("CODPLAYER_DATABASE", "")
	t.Chdir(tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "codplayer", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if want := filepath.Join(tempHome, ".local", "share", "codplayer", "db"); cfg.Database.Dir != want {
		t.Fatalf("unexpected database dir: got %q want %q", cfg.Database.Dir, want)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Logging.Dir != "" {
		t.Fatalf("expected no log dir by default, got %q", cfg.Logging.Dir)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("CODPLAYER_DATABASE", "")
	configPath := filepath.Join(tempDir, "codplayer.toml")

	custom := config.Config{
		Database: config.Database{Dir: filepath.Join(tempDir, "db")},
		Logging:  config.Logging{Format: "JSON", Level: "Debug", Dir: filepath.Join(tempDir, "logs")},
	}
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected %q to be loaded, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Database.Dir != filepath.Join(tempDir, "db") {
		t.Fatalf("unexpected database dir %q", cfg.Database.Dir)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging values, got %+v", cfg.Logging)
	}
}

func TestLoadDatabaseFromEnv(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	dbDir := filepath.Join(tempDir, "env-db")
	t.Setenv("CODPLAYER_DATABASE", dbDir)

	cfg, _, _, err := config.Load(filepath.Join(tempDir, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Dir != dbDir {
		t.Fatalf("expected env database dir %q, got %q", dbDir, cfg.Database.Dir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("CODPLAYER_DATABASE", "")
	tests := map[string]string{
		"format":  "[logging]\nformat = \"xml\"\n",
		"level":   "[logging]\nlevel = \"loud\"\n",
		"unknown": "[database]\npath = \"/tmp\"\n",
		"syntax":  "[database\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected Load to fail")
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("CODPLAYER_DATABASE", "")
	path := filepath.Join(tempDir, "nested", "config.toml")

	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(content), "[database]") {
		t.Fatalf("sample config missing database section:\n%s", content)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Database.Dir != filepath.Join(tempDir, ".local", "share", "codplayer", "db") {
		t.Fatalf("unexpected database dir from sample: %q", cfg.Database.Dir)
	}
}
