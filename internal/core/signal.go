package core

// Signal holds a value and runs its effects whenever the value changes.
type Signal[T comparable] struct {
	V       T
	effects []func(T)
}

func NewSignal[T comparable](value T) *Signal[T] {
	return &Signal[T]{V: value}
}

// SetValue stores value and reports whether it changed.
func (s *Signal[T]) SetValue(value T) bool {
	if s.V == value {
		return false
	}
	s.V = value
	for _, fn := range s.effects {
		fn(value)
	}
	return true
}

func (s *Signal[T]) AddEffect(fn func(T)) {
	s.effects = append(s.effects, fn)
}
