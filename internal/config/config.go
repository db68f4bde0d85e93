// Package config loads operator configuration for procmap.
//
// The interesting knobs are the engine caps: they are DoS thresholds, and
// operators tune them per deployment without code changes. Everything has a
// working default, so a missing config file is not an error.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/procmap/procmap/pkg/errors"
	"github.com/procmap/procmap/pkg/graph"
	"github.com/procmap/procmap/pkg/layout"
)

// DefaultFileName is the config file looked up in the working directory
// and under the user config dir.
const DefaultFileName = "procmap.toml"

// Config is the full operator configuration.
type Config struct {
	// Engine caps (sanitizer + annotator).
	Limits     graph.Limits `toml:"limits"`
	MaxMarkers int          `toml:"max_citation_markers"`

	// Layout geometry.
	Layout layout.Options `toml:"layout"`

	// Server settings, used by `procmap serve`.
	Server ServerConfig `toml:"server"`

	// Cache settings.
	Cache CacheConfig `toml:"cache"`

	// Store settings (layout archive).
	Store StoreConfig `toml:"store"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects and configures the layout cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`
	// RedisAddr is the host:port of the Redis server.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// StoreConfig configures the MongoDB layout archive. An empty URI disables
// the archive entirely.
type StoreConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Limits:     graph.DefaultLimits(),
		MaxMarkers: 100,
		Layout:     layout.DefaultOptions(),
		Server:     ServerConfig{Addr: ":8080"},
		Cache:      CacheConfig{Backend: "file"},
	}
}

// Load reads configuration from path. If path is empty, the default
// locations are tried (./procmap.toml, then $XDG_CONFIG_HOME/procmap/).
// A missing file yields Default(); a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, ok := findDefault()
		if !ok {
			return cfg, nil
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Default(), errors.New(errors.ErrCodeFileNotFound, "config file %s does not exist", path)
		}
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	return cfg, nil
}

// findDefault looks for a config file in the standard locations.
func findDefault() (string, bool) {
	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName, true
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "procmap", DefaultFileName)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}
