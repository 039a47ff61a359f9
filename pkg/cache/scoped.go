package cache

// ScopedKeyer prefixes every key produced by an inner Keyer, so separate
// deployments or tenants can share one cache backend.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) TilingKey(opts TilingKeyOpts) string {
	return k.prefix + k.inner.TilingKey(opts)
}

func (k *ScopedKeyer) ArtifactKey(tilingHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(tilingHash, opts)
}
