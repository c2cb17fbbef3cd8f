// Package cache stores rendered chord diagrams between requests.
//
// # Backends
//
//   - [FileCache]: one file per entry under the user cache directory (CLI)
//   - [RedisCache]: a shared Redis instance (HTTP server)
//   - [NullCache]: never stores anything (--no-cache, tests)
//
// # Keys
//
// A [Keyer] derives keys from everything that affects the output bytes:
// the chord, the style, the area size and the output format. Keys are
// "artifact:<version>:<format>:<sha256>" strings, so any change to an
// input yields a new key and stale entries simply age out.
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.ArtifactKeyOpts{Chord: "x32010/032010", Format: "svg", ...})
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL. A zero TTL
// means the entry does not expire. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Default TTLs.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLChord    = time.Hour
)

// ArtifactKeyOpts lists every input that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Chord     string  `json:"chord"`      // fret/finger notation
	StyleHash string  `json:"style_hash"` // hash of the encoded theme
	Mode      string  `json:"mode"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Format    string  `json:"format"`
	Scale     float64 `json:"scale,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey identifies a rendered diagram.
	ArtifactKey(opts ArtifactKeyOpts) string
	// ChordKey identifies a chord looked up by name in a remote store.
	ChordKey(name string) string
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return artifactKey(opts)
}

// ChordKey implements Keyer. Names are case-insensitive in stores, so the
// caller passes the normalized name.
func (DefaultKeyer) ChordKey(name string) string {
	return "chord:" + name
}
