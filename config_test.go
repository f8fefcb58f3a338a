package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig of missing file failed: %v", err)
	}
	if cfg.Socket != defaultConfig().Socket || cfg.LogLevel != "info" {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vimy-rat.yaml")
	data := `
websocket: ":8090"
catalog: units.yaml.zst
seed: 42
roleStrictness: 1
filters:
  cheap: BV < 800
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.WebSocket != ":8090" || cfg.Catalog != "units.yaml.zst" || cfg.Seed != 42 || cfg.RoleStrictness != 1 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Filters["cheap"] != "BV < 800" {
		t.Errorf("filters = %v", cfg.Filters)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Socket != defaultConfig().Socket {
		t.Errorf("Socket = %q, want default", cfg.Socket)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("seed: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig of malformed YAML succeeded")
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	f := newFlags()
	if err := f.parse([]string{"-ws", ":9000", "-seed", "7", "-log-level", "debug"}); err != nil {
		t.Fatal(err)
	}
	cfg := defaultConfig()
	cfg.Catalog = "from-file.yaml"
	f.apply(&cfg)

	if cfg.WebSocket != ":9000" || cfg.Seed != 7 || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v, want flag values", cfg)
	}
	if cfg.Catalog != "from-file.yaml" {
		t.Errorf("Catalog = %q, unset flag should not override", cfg.Catalog)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tc := range tests {
		got, err := parseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("parseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
