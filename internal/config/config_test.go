package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/graphdraw/pkg/cache"
	"github.com/matzehuels/graphdraw/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Cache.Backend != cache.BackendFile {
		t.Errorf("expected cache backend %q, got %q", cache.BackendFile, cfg.Cache.Backend)
	}
	if len(cfg.Output.Formats) != 1 || cfg.Output.Formats[0] != "svg" {
		t.Errorf("expected formats [svg], got %v", cfg.Output.Formats)
	}
	if cfg.Layout.Seed != 0 {
		t.Error("default seed should be random (0)")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected server addr :8080, got %q", cfg.Server.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	if dir := Dir(); dir != "/tmp/test-xdg/graphdraw" {
		t.Errorf("expected /tmp/test-xdg/graphdraw, got %q", dir)
	}
	if p := Path(); p != "/tmp/test-xdg/graphdraw/config.toml" {
		t.Errorf("unexpected path %q", p)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	if dir := Dir(); dir != filepath.Join(home, ".config", "graphdraw") {
		t.Errorf("unexpected dir %q", dir)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Backend != cache.BackendFile {
		t.Error("missing config should yield defaults")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadFile on missing file: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[layout]
directed = true
multiplier = true
extra_repeats = 3
seed = 42

[output]
formats = ["png", "dot"]

[cache]
backend = "redis"
redis_addr = "cache:6379"
ttl = "2h"

[server]
request_timeout = "5s"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !cfg.Layout.Directed || !cfg.Layout.Multiplier || cfg.Layout.ExtraRepeats != 3 || cfg.Layout.Seed != 42 {
		t.Errorf("layout section not loaded: %+v", cfg.Layout)
	}
	if len(cfg.Output.Formats) != 2 || cfg.Output.Formats[0] != "png" {
		t.Errorf("formats = %v", cfg.Output.Formats)
	}
	if cfg.Cache.Backend != cache.BackendRedis || cfg.Cache.RedisAddr != "cache:6379" {
		t.Errorf("cache section not loaded: %+v", cfg.Cache)
	}
	if cfg.Cache.TTL != 2*time.Hour {
		t.Errorf("ttl = %v, want 2h", cfg.Cache.TTL)
	}
	if cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("request timeout = %v, want 5s", cfg.Server.RequestTimeout)
	}
	// Untouched fields keep defaults
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server addr should keep default, got %q", cfg.Server.Addr)
	}

	opts := cfg.PipelineOptions()
	if !opts.Directed || opts.ExtraRepeats != 3 || opts.Seed != 42 || len(opts.Formats) != 2 {
		t.Errorf("PipelineOptions = %+v", opts)
	}
	if co := cfg.CacheOptions(); co.Backend != cache.BackendRedis || co.RedisAddr != "cache:6379" {
		t.Errorf("CacheOptions = %+v", co)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
layout:
  show_node_labels: true
  extra_repeats: 1
cache:
  backend: mongo
  mongo_uri: mongodb://db:27017
server:
  addr: 127.0.0.1:9000
  write_timeout: 90s
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !cfg.Layout.ShowNodeLabels || cfg.Layout.ExtraRepeats != 1 {
		t.Errorf("layout section not loaded: %+v", cfg.Layout)
	}
	if cfg.Cache.Backend != cache.BackendMongo || cfg.Cache.MongoURI != "mongodb://db:27017" {
		t.Errorf("cache section not loaded: %+v", cfg.Cache)
	}
	if cfg.Cache.MongoDatabase != cache.DefaultMongoDatabase {
		t.Errorf("mongo database should keep default, got %q", cfg.Cache.MongoDatabase)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.WriteTimeout != 90*time.Second {
		t.Errorf("server section not loaded: %+v", cfg.Server)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		file string
		data string
		code errors.Code
	}{
		{"bad toml", "a.toml", "[layout\n", errors.ErrCodeInvalidInput},
		{"bad yaml", "b.yml", "layout: [", errors.ErrCodeInvalidInput},
		{"bad backend", "c.toml", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidOption},
		{"bad format", "d.toml", "[output]\nformats = [\"gif\"]\n", errors.ErrCodeInvalidFormat},
		{"bad repeats", "e.yaml", "layout:\n  extra_repeats: -1\n", errors.ErrCodeInvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); !errors.Is(err, tt.code) {
				t.Errorf("LoadFile() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	for _, name := range []string{"config.toml", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			cfg := Default()
			cfg.Layout.Multiplier = true
			cfg.Layout.Seed = 7
			cfg.Output.Formats = []string{"json", "txt"}
			cfg.Server.ReadTimeout = 3 * time.Second

			if err := Save(cfg, path); err != nil {
				t.Fatalf("Save: %v", err)
			}
			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if !loaded.Layout.Multiplier || loaded.Layout.Seed != 7 {
				t.Errorf("layout not preserved: %+v", loaded.Layout)
			}
			if len(loaded.Output.Formats) != 2 || loaded.Output.Formats[1] != "txt" {
				t.Errorf("formats not preserved: %v", loaded.Output.Formats)
			}
			if loaded.Server.ReadTimeout != 3*time.Second {
				t.Errorf("read timeout not preserved: %v", loaded.Server.ReadTimeout)
			}
		})
	}
}
