package models

// Updater is a state-change request for one axis: either a literal
// replacement or a function of the previous value.
type Updater[T any] struct {
	value T
	fn    func(T) T
}

// Set creates an updater that replaces the previous value
func Set[T any](value T) Updater[T] {
	return Updater[T]{value: value}
}

// Update creates an updater that derives the next value from the previous one
func Update[T any](fn func(prev T) T) Updater[T] {
	return Updater[T]{fn: fn}
}

// Apply computes the next value
func (u Updater[T]) Apply(prev T) T {
	if u.fn != nil {
		return u.fn(prev)
	}
	return u.value
}
