package types

// Usage is a pair of byte counters: Total is what a store has reserved,
// Used is the part holding live entries.
type Usage struct {
	Total uint64 `json:"total" msgpack:"total"`
	Used  uint64 `json:"used" msgpack:"used"`
}

// Add accumulates o into u.
func (u *Usage) Add(o Usage) {
	u.Total += o.Total
	u.Used += o.Used
}

// Footprint is the memory accounted to one list.
type Footprint struct {
	Kind StoreKind `json:"kind" msgpack:"kind"`
	Usage
}

// MemoryInfo aggregates the footprints of every tracked list, per store
// kind and in total.
type MemoryInfo struct {
	Indexed     Usage  `json:"indexed" msgpack:"indexed"`
	Linked      Usage  `json:"linked" msgpack:"linked"`
	Associative Usage  `json:"associative" msgpack:"associative"`
	Total       uint64 `json:"total" msgpack:"total"`
	Used        uint64 `json:"used" msgpack:"used"`
}

// Add accounts f under its store kind and in the grand totals.
func (m *MemoryInfo) Add(f Footprint) {
	switch f.Kind {
	case Indexed:
		m.Indexed.Add(f.Usage)
	case Linked:
		m.Linked.Add(f.Usage)
	case Associative:
		m.Associative.Add(f.Usage)
	}
	m.Total += f.Total
	m.Used += f.Used
}

// ByKind returns the counters of one store kind.
func (m MemoryInfo) ByKind(k StoreKind) Usage {
	switch k {
	case Indexed:
		return m.Indexed
	case Linked:
		return m.Linked
	case Associative:
		return m.Associative
	}
	return Usage{}
}
