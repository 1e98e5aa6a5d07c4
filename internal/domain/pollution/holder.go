package pollution

import "sync/atomic"

type snapshot struct {
	field      *Field
	generation uint64
}

// Holder publishes the active Field with an atomic swap so in-flight queries
// never observe a partially built interpolation basis. One writer (the
// refresh path) replaces the snapshot wholesale; any number of readers query
// it without locking.
type Holder struct {
	current atomic.Pointer[snapshot]
	gen     atomic.Uint64
}

// NewHolder starts with no field; Current reports ok=false until the first
// successful Swap.
func NewHolder() *Holder {
	return &Holder{}
}

// Swap publishes a fully constructed field and returns its generation number.
// Generations let cache keys distinguish results computed against different
// datasets.
func (h *Holder) Swap(f *Field) uint64 {
	gen := h.gen.Add(1)
	h.current.Store(&snapshot{field: f, generation: gen})
	return gen
}

// Current returns the active field and its generation, or ok=false when no
// field has been built yet.
func (h *Holder) Current() (*Field, uint64, bool) {
	snap := h.current.Load()
	if snap == nil {
		return nil, 0, false
	}
	return snap.field, snap.generation, true
}
