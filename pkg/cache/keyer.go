package cache

import (
	"github.com/matzehuels/trackgen/pkg/track"
)

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey identifies a generated run by config hash and seed.
	ResultKey(configHash string, seed uint64) string

	// ArtifactKey identifies a rendered artifact of a run.
	ArtifactKey(runHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Scale       float64 `json:"scale"`
	ShowMargins bool    `json:"show_margins"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey returns "result:<hash>".
func (DefaultKeyer) ResultKey(configHash string, seed uint64) string {
	return hashKey("result", configHash, seed)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(runHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", runHash, opts)
}

// ConfigHash hashes a config. Callers should pass the normalized config so
// that equivalent inputs share cache entries.
func ConfigHash(cfg track.Config) string {
	return hashKey("config", cfg)
}
