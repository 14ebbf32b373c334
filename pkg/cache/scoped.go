package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each environment or
// tenant its own key namespace in a shared backend.
//
// Example usage:
//
//	staging := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey generates a prefixed key for run results.
func (k *ScopedKeyer) ResultKey(configHash string, seed uint64) string {
	return k.prefix + k.inner.ResultKey(configHash, seed)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(runHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(runHash, opts)
}
