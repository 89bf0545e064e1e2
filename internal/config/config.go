// Package config loads the reccodec CLI's TOML configuration file.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the CLI's on-disk configuration.
type Config struct {
	SchemaDir string      `toml:"schema_dir"`
	Watch     WatchConfig `toml:"watch"`
}

// WatchConfig configures the `watch` subcommand's filesystem polling loop.
type WatchConfig struct {
	Dir         string   `toml:"dir"`
	StopTimeout duration `toml:"stop_timeout"`
}

// duration parses a TOML string like "5s" into a time.Duration via
// encoding.TextUnmarshaler, the form BurntSushi/toml decodes string values
// into when the target implements it.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("config: stop_timeout: %w", err)
	}
	*d = duration(parsed)
	return nil
}

// Duration returns the parsed stop timeout, defaulting to 5s when unset.
func (w WatchConfig) Duration() time.Duration {
	if w.StopTimeout == 0 {
		return 5 * time.Second
	}
	return time.Duration(w.StopTimeout)
}

// Load reads and parses the TOML configuration file at path.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: loading %q: %w", path, err)
	}
	return &cfg, nil
}
