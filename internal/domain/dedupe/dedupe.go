// Package dedupe tracks which identifiers have already been seen.
package dedupe

// Deduper records seen ids.
type Deduper interface {
	// SeenAndRecord reports whether id was already recorded and records it
	// if it was not.
	SeenAndRecord(id string) bool

	// Size returns the number of distinct ids recorded.
	Size() int
}

// OrderedSet is a Deduper that remembers first-seen order.
// It is not safe for concurrent use.
type OrderedSet struct {
	seen     map[string]struct{}
	order    []string
	capacity int
}

var _ Deduper = (*OrderedSet)(nil)

// NewOrderedSet creates an empty OrderedSet.
func NewOrderedSet(opts ...Option) *OrderedSet {
	s := &OrderedSet{}
	for _, opt := range opts {
		opt(s)
	}
	s.seen = make(map[string]struct{}, s.capacity)
	s.order = make([]string, 0, s.capacity)
	return s
}

// SeenAndRecord returns true if id was already seen, false if it was newly recorded.
func (s *OrderedSet) SeenAndRecord(id string) bool {
	if _, ok := s.seen[id]; ok {
		return true
	}
	s.seen[id] = struct{}{}
	s.order = append(s.order, id)
	return false
}

// Values returns the recorded ids in first-seen order. The slice is a copy.
func (s *OrderedSet) Values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Size returns the number of distinct ids recorded.
func (s *OrderedSet) Size() int {
	return len(s.order)
}
