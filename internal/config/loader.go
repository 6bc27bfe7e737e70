package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if NEUROGATE_CONFIG is set
//  3. env (prefix NEUROGATE_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("NEUROGATE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: NEUROGATE_ADDR, NEUROGATE_TOKEN_SECRET, ...
	// Map env keys like NEUROGATE_FREE_QUERY_LIMIT -> free_query_limit (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("NEUROGATE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "neurogate_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.OverlayDurationMS <= 0:
		return fmt.Errorf("%w: overlay_duration_ms must be positive", ErrInvalidConfig)
	case c.WarpDurationMS <= 0:
		return fmt.Errorf("%w: warp_duration_ms must be positive", ErrInvalidConfig)
	case c.FreeQueryLimit < 0:
		return fmt.Errorf("%w: free_query_limit must not be negative", ErrInvalidConfig)
	case c.TokenTTLHours <= 0:
		return fmt.Errorf("%w: token_ttl_hours must be positive", ErrInvalidConfig)
	}
	return nil
}
