package presets

import (
	"strings"
	"time"
)

// Config holds configuration for the preset library.
type Config struct {
	// Prefix is the bucket folder holding preset bundles.
	Prefix string `mapstructure:"prefix" default:"presets/"`
	// ModelPrefix is the bucket folder holding glTF/GLB models.
	ModelPrefix string `mapstructure:"model_prefix" default:"models/"`
	// CacheTTLSeconds is how long decoded presets stay cached. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"60"`
}

// CacheTTL returns the cache lifetime.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Folders returns the bucket folders the library relies on, without trailing slash.
func (c Config) Folders() []string {
	return []string{
		strings.TrimSuffix(c.prefix(), "/"),
		strings.TrimSuffix(c.modelPrefix(), "/"),
	}
}

func (c Config) prefix() string {
	return withSlash(c.Prefix, "presets/")
}

func (c Config) modelPrefix() string {
	return withSlash(c.ModelPrefix, "models/")
}

func withSlash(p, fallback string) string {
	if p == "" {
		return fallback
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
