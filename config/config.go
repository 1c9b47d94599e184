// Package config loads linediff configuration from defaults, an optional
// TOML file and LINEDIFF_-prefixed environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/fwojciec/linediff/fs"
)

// Config holds the CLI settings.
type Config struct {
	Diff struct {
		Context int `koanf:"context"`
	} `koanf:"diff"`

	History struct {
		Path string `koanf:"path"`
	} `koanf:"history"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

// Load reads configuration from the file at path, falling back to the
// default locations when path is empty. Environment variables with the
// LINEDIFF_ prefix override file values (LINEDIFF_DIFF_CONTEXT=5 sets
// diff.context).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"diff.context": 3,
		"history.path": fs.DefaultHistoryPath(),
		"log.level":    "warn",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		for _, candidate := range []string{"./linediff.toml", "$HOME/.linediff.toml"} {
			candidate = os.ExpandEnv(candidate)
			if _, err := os.Stat(candidate); err == nil {
				if err := k.Load(file.Provider(candidate), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	if err := k.Load(env.Provider("LINEDIFF_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "LINEDIFF_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.Diff.Context < 0 {
		return nil, fmt.Errorf("diff.context must be non-negative, got %d", cfg.Diff.Context)
	}
	return &cfg, nil
}
