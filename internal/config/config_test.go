package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/procmap/procmap/pkg/errors"
	"github.com/procmap/procmap/pkg/layout"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.MaxMarkers != 100 {
		t.Errorf("max markers = %d, want 100", cfg.MaxMarkers)
	}
	if cfg.Limits.MaxNodes != 100 || cfg.Limits.MaxEdges != 500 {
		t.Errorf("limits = %d/%d, want 100/500", cfg.Limits.MaxNodes, cfg.Limits.MaxEdges)
	}
	if cfg.Layout.Direction != layout.TopToBottom {
		t.Errorf("direction = %q, want top-to-bottom", cfg.Layout.Direction)
	}
	if cfg.Store.URI != "" {
		t.Errorf("store uri = %q, want disabled", cfg.Store.URI)
	}
}

func TestLoad(t *testing.T) {
	content := `
max_citation_markers = 25

[limits]
max_nodes = 10
max_edges = 20

[layout]
direction = "left-to-right"
node_width = 120

[server]
addr = ":9999"

[cache]
backend = "redis"
redis_addr = "localhost:6379"

[store]
uri = "mongodb://localhost:27017"
database = "procmap_test"
`
	path := filepath.Join(t.TempDir(), "procmap.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.MaxMarkers != 25 {
		t.Errorf("max markers = %d, want 25", cfg.MaxMarkers)
	}
	if cfg.Limits.MaxNodes != 10 || cfg.Limits.MaxEdges != 20 {
		t.Errorf("limits = %d/%d, want 10/20", cfg.Limits.MaxNodes, cfg.Limits.MaxEdges)
	}
	if cfg.Layout.Direction != layout.LeftToRight {
		t.Errorf("direction = %q", cfg.Layout.Direction)
	}
	if cfg.Layout.NodeWidth != 120 {
		t.Errorf("node width = %g, want 120", cfg.Layout.NodeWidth)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Layout.NodeHeight != layout.DefaultNodeHeight {
		t.Errorf("node height = %g, want default", cfg.Layout.NodeHeight)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr = %q, want :9999", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Store.Database != "procmap_test" {
		t.Errorf("store = %+v", cfg.Store)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("max_citation_markers = ["), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}
