package daemon

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("default host = %s, want 127.0.0.1", cfg.API.Host)
	}
	if cfg.API.Port != 7151 {
		t.Errorf("default port = %d, want 7151", cfg.API.Port)
	}
	if cfg.Sync.DebounceMS != 500 {
		t.Errorf("default debounce = %dms, want 500", cfg.Sync.DebounceMS)
	}
	if cfg.Sync.SweepIntervalS != 60 {
		t.Errorf("default sweep interval = %ds, want 60", cfg.Sync.SweepIntervalS)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("QUESTFORGE_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.Port != DefaultConfig().API.Port {
		t.Errorf("port = %d, want default %d", cfg.API.Port, DefaultConfig().API.Port)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUESTFORGE_HOME", dir)

	cfg := DefaultConfig()
	cfg.User.Name = "Aria"
	cfg.API.Port = 9999
	cfg.Sync.DebounceMS = 250
	cfg.Telemetry.Prometheus = false

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.User.Name != "Aria" {
		t.Errorf("name = %s, want Aria", loaded.User.Name)
	}
	if loaded.API.Port != 9999 {
		t.Errorf("port = %d, want 9999", loaded.API.Port)
	}
	if loaded.Sync.DebounceMS != 250 {
		t.Errorf("debounce = %dms, want 250", loaded.Sync.DebounceMS)
	}
	if loaded.Telemetry.Prometheus {
		t.Error("prometheus should be disabled after round trip")
	}
}

func TestHomeHonorsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUESTFORGE_HOME", dir)

	if got := Home(); got != dir {
		t.Errorf("Home() = %s, want %s", got, dir)
	}
	if filepath.Dir(DefaultConfig().Logging.File) != dir {
		t.Errorf("log file should live under %s", dir)
	}
}
