package core

type slotState int

const (
	slotUnresolved slotState = iota
	slotResolved
	slotResolvedAbsent
)

// slot memoizes one lookup for the lifetime of an interaction.
// It moves from unresolved to resolved or resolved-absent exactly once.
type slot[T any] struct {
	state slotState
	value *T
}

// get returns the cached value and whether the slot was ever resolved
func (s *slot[T]) get() (*T, bool) {
	return s.value, s.state != slotUnresolved
}

// set resolves the slot. A nil value marks it resolved-absent.
func (s *slot[T]) set(value *T) {
	if s.state != slotUnresolved {
		return
	}
	s.value = value
	if value == nil {
		s.state = slotResolvedAbsent
		return
	}
	s.state = slotResolved
}
