// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory, sharded by key hash. The
//     default for CLI use.
//   - [RedisCache]: one string value per key with a native TTL.
//   - [MongoCache]: one document per key with an expires_at field and a TTL
//     index.
//   - [NullCache]: never stores anything.
//
// [NewInstrumented] wraps any backend and reports hits, misses and writes to
// the cache hooks of package observability.
//
// # Keys
//
// A [Keyer] derives keys from content hashes and options. Layout keys combine
// the hash of the graph text with every option that changes positions, and
// artifact keys combine the hash of a layout with the render options:
//
//	layout:<sha256>
//	artifact:<sha256>
//
// Layouts are only cacheable when they are reproducible, so callers skip the
// cache for unseeded runs.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached entries.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// LayoutKeyOpts holds the options that change layout positions.
type LayoutKeyOpts struct {
	Directed     bool    `json:"directed"`
	Multiplier   bool    `json:"multiplier"`
	ExtraRepeats int     `json:"extra_repeats"`
	Seed         uint64  `json:"seed"`
	Dim          float64 `json:"dim,omitempty"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format          string  `json:"format"`
	ShowNodeLabels  bool    `json:"show_node_labels"`
	ShowEdgeWeights bool    `json:"show_edge_weights"`
	Scale           float64 `json:"scale,omitempty"`
	Width           int     `json:"width,omitempty"`
	Height          int     `json:"height,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of a layout computed from the graph whose
	// text hashes to graphHash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of an artifact rendered from the layout
	// whose JSON hashes to layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every key component with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
