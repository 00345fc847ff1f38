package codeid

// CachedSources returns the number of cached source digests.
func (h *Hasher) CachedSources() int {
	n := 0
	h.sources.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
