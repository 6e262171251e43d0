package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.VolumeStep != 5 {
		t.Errorf("Expected VolumeStep 5, got %d", cfg.VolumeStep)
	}
	if cfg.PauseRune() != ' ' || cfg.RestartRune() != 's' {
		t.Errorf("Expected default keys ' ' and 's', got %q and %q", cfg.PauseRune(), cfg.RestartRune())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got: %v", err)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lrcgen.toml")

	cfg := DefaultConfig()
	cfg.VolumeStep = 10
	cfg.RestartKey = "r"
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.VolumeStep != 10 {
		t.Errorf("VolumeStep mismatch: got %d, want 10", loaded.VolumeStep)
	}
	if loaded.RestartRune() != 'r' {
		t.Errorf("RestartKey mismatch: got %q, want 'r'", loaded.RestartKey)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Errorf("Expected no error for non-existent file, got: %v", err)
	}

	if cfg != DefaultConfig() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	if err := os.WriteFile(path, []byte("volume_step = 250\nrequire_audio = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.VolumeStep != 100 {
		t.Errorf("Expected VolumeStep clamped to 100, got %d", cfg.VolumeStep)
	}
	if !cfg.RequireAudio {
		t.Error("Expected RequireAudio true")
	}
	if cfg.ChannelCapacity != DefaultConfig().ChannelCapacity {
		t.Errorf("Expected default ChannelCapacity, got %d", cfg.ChannelCapacity)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad toml", "volume_step = = 3"},
		{"multi-char key", `pause_key = "ab"`},
		{"same keys", "pause_key = \"x\"\nrestart_key = \"x\""},
		{"enter as key", `pause_key = "\n"`},
		{"control key", `restart_key = "\u0003"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}

			cfg, err := LoadConfig(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if cfg != DefaultConfig() {
				t.Errorf("expected defaults on error, got %+v", cfg)
			}
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	if got := GetConfigPath("/explicit.toml"); got != "/explicit.toml" {
		t.Errorf("explicit path ignored: %s", got)
	}

	t.Setenv(EnvConfigPath, "/from/env.toml")
	if got := GetConfigPath(""); got != "/from/env.toml" {
		t.Errorf("env path ignored: %s", got)
	}
}

func TestValidateAcceptsNonASCIIKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PauseKey = "ă"
	cfg.RestartKey = "ć"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.PauseRune() != 'ă' || cfg.RestartRune() != 'ć' {
		t.Errorf("Expected keys 'ă' and 'ć', got %q and %q", cfg.PauseRune(), cfg.RestartRune())
	}
}
