package dedupe

// Option applies a configuration option to the OrderedSet.
type Option func(*OrderedSet)

// WithCapacityHint pre-sizes the set for roughly n distinct ids.
// Values <= 0 are ignored.
func WithCapacityHint(n int) Option {
	return func(s *OrderedSet) {
		if n > 0 {
			s.capacity = n
		}
	}
}
