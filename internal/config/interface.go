package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads every configuration file reachable from paths, merges them
	// into one RunConfiguration and validates it. Malformed input yields a
	// *ConfigError.
	Load(ctx context.Context, paths ...string) (*RunConfiguration, error)
}
