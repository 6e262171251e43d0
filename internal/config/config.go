// Package config loads and saves the lrcgen TOML configuration file.
// A missing file is not an error: the defaults are used instead.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath names an environment variable holding a config file path.
const EnvConfigPath = "LRCGEN_CONFIG"

// Config holds the tunable settings of the generator.
type Config struct {
	// Synchronization
	VolumeStep    int  `toml:"volume_step"`
	InitialVolume int  `toml:"initial_volume"`
	RequireAudio  bool `toml:"require_audio"` // abort syncing when the track cannot be opened

	// Key bindings (single characters)
	PauseKey   string `toml:"pause_key"`
	RestartKey string `toml:"restart_key"`

	// Plumbing
	ChannelCapacity int `toml:"channel_capacity"`

	// Output
	MetadataFromTags bool `toml:"metadata_from_tags"` // prefill ti/ar/al from the audio file's tags
	BackupOutput     bool `toml:"backup_output"`      // rename an existing output file to .bak
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		VolumeStep:       5,
		InitialVolume:    100,
		RequireAudio:     false,
		PauseKey:         " ",
		RestartKey:       "s",
		ChannelCapacity:  8,
		MetadataFromTags: true,
		BackupOutput:     true,
	}
}

// GetConfigPath returns the config file path to use. An explicit path wins,
// then $LRCGEN_CONFIG, then ./lrcgen.toml if it exists, then
// ~/.config/lrcgen/config.toml.
func GetConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}

	if _, err := os.Stat("./lrcgen.toml"); err == nil {
		return "./lrcgen.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./lrcgen.toml"
	}

	return filepath.Join(home, ".config", "lrcgen", "config.toml")
}

// LoadConfig loads configuration from a TOML file.
// If the file doesn't exist, returns the default config. Keys missing from
// the file keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file.
func SaveConfig(path string, config Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate clamps numeric settings into range and checks the key bindings.
func (c *Config) Validate() error {
	c.VolumeStep = clamp(c.VolumeStep, 1, 100)
	c.InitialVolume = clamp(c.InitialVolume, 0, 100)
	if c.ChannelCapacity < 1 {
		c.ChannelCapacity = 1
	}

	for name, k := range map[string]string{"pause_key": c.PauseKey, "restart_key": c.RestartKey} {
		if utf8.RuneCountInString(k) != 1 {
			return fmt.Errorf("%s must be a single character, got %q", name, k)
		}
		// Control characters are taken by enter and ctrl+c.
		if r, _ := utf8.DecodeRuneInString(k); r == utf8.RuneError || !unicode.IsPrint(r) {
			return fmt.Errorf("%s must be a printable character, got %q", name, k)
		}
	}
	if c.PauseKey == c.RestartKey {
		return fmt.Errorf("pause_key and restart_key must differ")
	}
	return nil
}

// PauseRune returns the pause key binding.
func (c Config) PauseRune() rune {
	r, _ := utf8.DecodeRuneInString(c.PauseKey)
	return r
}

// RestartRune returns the restart key binding.
func (c Config) RestartRune() rune {
	r, _ := utf8.DecodeRuneInString(c.RestartKey)
	return r
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
