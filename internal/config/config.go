// Package config loads graphdraw settings from a TOML or YAML file.
//
// The default location is $XDG_CONFIG_HOME/graphdraw/config.toml. A missing
// file is not an error; every field has a default and command-line flags
// override whatever the file sets.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/graphdraw/pkg/cache"
	"github.com/matzehuels/graphdraw/pkg/errors"
	"github.com/matzehuels/graphdraw/pkg/pipeline"
)

const appName = "graphdraw"

// Config holds graphdraw configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout" yaml:"layout"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// LayoutConfig holds defaults for the draw options.
type LayoutConfig struct {
	Directed          bool   `toml:"directed" yaml:"directed"`
	Multiplier        bool   `toml:"multiplier" yaml:"multiplier"`
	Animate           bool   `toml:"animate" yaml:"animate"`
	ShowNodeLabels    bool   `toml:"show_node_labels" yaml:"show_node_labels"`
	ShowEdgeWeights   bool   `toml:"show_edge_weights" yaml:"show_edge_weights"`
	FinishImmediately bool   `toml:"finish_immediately" yaml:"finish_immediately"`
	ExtraRepeats      int    `toml:"extra_repeats" yaml:"extra_repeats"`
	Seed              uint64 `toml:"seed" yaml:"seed"` // 0 = random
}

// OutputConfig controls written artifacts.
type OutputConfig struct {
	Formats    []string `toml:"formats" yaml:"formats"`
	Directory  string   `toml:"directory" yaml:"directory"`
	Scale      float64  `toml:"scale" yaml:"scale"`
	TermWidth  int      `toml:"term_width" yaml:"term_width"`
	TermHeight int      `toml:"term_height" yaml:"term_height"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend         string        `toml:"backend" yaml:"backend"` // "file", "none", "redis", "mongo"
	Dir             string        `toml:"dir" yaml:"dir"`
	TTL             time.Duration `toml:"ttl" yaml:"ttl"`
	RedisAddr       string        `toml:"redis_addr" yaml:"redis_addr"`
	MongoURI        string        `toml:"mongo_uri" yaml:"mongo_uri"`
	MongoDatabase   string        `toml:"mongo_database" yaml:"mongo_database"`
	MongoCollection string        `toml:"mongo_collection" yaml:"mongo_collection"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr           string        `toml:"addr" yaml:"addr"`
	ReadTimeout    time.Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   time.Duration `toml:"write_timeout" yaml:"write_timeout"`
	RequestTimeout time.Duration `toml:"request_timeout" yaml:"request_timeout"`
	MaxBodyBytes   int64         `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Formats:    []string{pipeline.FormatSVG},
			Directory:  ".",
			Scale:      pipeline.DefaultScale,
			TermWidth:  pipeline.DefaultTermWidth,
			TermHeight: pipeline.DefaultTermHeight,
		},
		Cache: CacheConfig{
			Backend:         cache.BackendFile,
			TTL:             cache.LayoutTTL,
			RedisAddr:       "localhost:6379",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   cache.DefaultMongoDatabase,
			MongoCollection: cache.DefaultMongoCollection,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   60 * time.Second,
			RequestTimeout: 30 * time.Second,
			MaxBodyBytes:   8 << 20,
		},
	}
}

// Dir returns the graphdraw config directory, honouring XDG_CONFIG_HOME.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the default config file. A missing file yields defaults.
func Load() (*Config, error) {
	cfg, err := LoadFile(Path())
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads a config file. The format follows the extension: .yaml and
// .yml are YAML, anything else is TOML. Fields absent from the file keep
// their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		_, err = toml.Decode(string(data), cfg)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories. The encoding follows
// the extension as in [LoadFile].
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var data []byte
	if isYAML(path) {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		data = out
	} else {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		data = buf.Bytes()
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if err := errors.ValidateRepeats(c.Layout.ExtraRepeats); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Output.Formats); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendNone, cache.BackendRedis, cache.BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidOption, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "cache ttl cannot be negative")
	}
	return nil
}

// PipelineOptions converts the layout and output sections into pipeline
// options.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Directed:          c.Layout.Directed,
		Multiplier:        c.Layout.Multiplier,
		ExtraRepeats:      c.Layout.ExtraRepeats,
		Seed:              c.Layout.Seed,
		Animate:           c.Layout.Animate,
		ShowNodeLabels:    c.Layout.ShowNodeLabels,
		ShowEdgeWeights:   c.Layout.ShowEdgeWeights,
		FinishImmediately: c.Layout.FinishImmediately,
		Formats:           append([]string(nil), c.Output.Formats...),
		Scale:             c.Output.Scale,
		TermWidth:         c.Output.TermWidth,
		TermHeight:        c.Output.TermHeight,
	}
}

// CacheOptions converts the cache section into options for [cache.Open].
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:   c.Cache.Backend,
		Dir:       c.Cache.Dir,
		RedisAddr: c.Cache.RedisAddr,
		Mongo: cache.MongoConfig{
			URI:        c.Cache.MongoURI,
			Database:   c.Cache.MongoDatabase,
			Collection: c.Cache.MongoCollection,
		},
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
