package cache

// ScopedKeyer prefixes every key of another Keyer. The CLI scopes keys by
// release so a new layout algorithm never reads entries from an old one:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v"+buildinfo.Version+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner; a nil inner means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(sceneHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutID string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutID, opts)
}
