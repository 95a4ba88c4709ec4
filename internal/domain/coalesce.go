package domain

// Deref returns *p, or fallback when p is nil. Wire shapes use pointers so
// that a missing value and an explicit zero stay distinguishable until here.
func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
