package state

// Ring is a bounded FIFO of strings. It is not safe for concurrent use on its
// own; Memory serializes access.
type Ring struct {
	items []string
	size  int
}

// NewRing returns a ring holding at most size items. Sizes below one are
// raised to one.
func NewRing(size int) *Ring {
	if size < 1 {
		size = 1
	}
	return &Ring{items: make([]string, 0, size), size: size}
}

// Push appends s, evicting the oldest item when full.
func (r *Ring) Push(s string) {
	if len(r.items) == r.size {
		copy(r.items, r.items[1:])
		r.items = r.items[:r.size-1]
	}
	r.items = append(r.items, s)
}

// Items returns a copy of the contents, oldest first.
func (r *Ring) Items() []string {
	out := make([]string, len(r.items))
	copy(out, r.items)
	return out
}

// Contains reports whether s is currently in the ring.
func (r *Ring) Contains(s string) bool {
	for _, it := range r.items {
		if it == s {
			return true
		}
	}
	return false
}
