package guard

import (
	"fmt"
	"iter"
)

// Limit names the constraint a capacity is proven against.
type Limit int

const (
	// LimitRunLen proves capacity against Constraints.MaxRunLen.
	LimitRunLen Limit = iota
	// LimitBatchSize proves capacity against Constraints.MaxBatchSize.
	LimitBatchSize
)

// String returns the constraint field name.
func (l Limit) String() string {
	switch l {
	case LimitRunLen:
		return "max_run_len"
	case LimitBatchSize:
		return "max_batch_size"
	default:
		return fmt.Sprintf("Limit(%d)", int(l))
	}
}

// Shape is a capacity that has been proven not to exceed its guard maximum.
// It is obtained from DeclareRun or DeclareBatch and reused for every
// Wrap at that call site.
type Shape[T any] struct {
	capacity int
	limit    Limit
}

// DeclareRun proves that capacity <= c.MaxRunLen. The check does not look at
// any data: a capacity of 9 against a maximum of 8 fails before a value
// exists.
func DeclareRun[T any](capacity int, c Constraints) (Shape[T], error) {
	return declare[T](capacity, LimitRunLen, c)
}

// DeclareBatch proves that capacity <= c.MaxBatchSize.
func DeclareBatch[T any](capacity int, c Constraints) (Shape[T], error) {
	return declare[T](capacity, LimitBatchSize, c)
}

// MustDeclareRun is like DeclareRun but panics on failure.
// Intended for package-level declarations.
func MustDeclareRun[T any](capacity int, c Constraints) Shape[T] {
	s, err := DeclareRun[T](capacity, c)
	if err != nil {
		panic(err)
	}
	return s
}

// MustDeclareBatch is like DeclareBatch but panics on failure.
func MustDeclareBatch[T any](capacity int, c Constraints) Shape[T] {
	s, err := DeclareBatch[T](capacity, c)
	if err != nil {
		panic(err)
	}
	return s
}

func declare[T any](capacity int, limit Limit, c Constraints) (Shape[T], error) {
	if capacity < 0 {
		return Shape[T]{}, NewInvalidConstraintError(fmt.Sprintf("capacity must not be negative, got %d", capacity))
	}
	v := NewValidator(c)
	var err error
	switch limit {
	case LimitRunLen:
		err = v.ValidateRunLen(capacity)
	case LimitBatchSize:
		err = v.ValidateBatchSize(capacity)
	default:
		return Shape[T]{}, NewInvalidConstraintError(fmt.Sprintf("unknown limit %v", limit))
	}
	if err != nil {
		return Shape[T]{}, err
	}
	return Shape[T]{capacity: capacity, limit: limit}, nil
}

// Capacity returns the proven capacity.
func (s Shape[T]) Capacity() int {
	return s.capacity
}

// Limit returns the constraint the capacity was proven against.
func (s Shape[T]) Limit() Limit {
	return s.limit
}

// Wrap admits items iff len(items) equals the declared capacity.
// The items are copied; later changes to the input slice are not observed.
func (s Shape[T]) Wrap(items []T) (Sized[T], error) {
	if len(items) != s.capacity {
		return Sized[T]{}, NewCapacityMismatchError(len(items), s.capacity)
	}
	owned := make([]T, len(items))
	copy(owned, items)
	return Sized[T]{items: owned, shape: s}, nil
}

// Sized holds exactly Capacity() elements, and Capacity() is known not to
// exceed the guard maximum. Downstream code must not re-validate it.
type Sized[T any] struct {
	items []T
	shape Shape[T]
}

// NewValidatedRun declares a run shape of the given capacity and wraps items
// in one step.
func NewValidatedRun[T any](capacity int, items []T, c Constraints) (Sized[T], error) {
	shape, err := DeclareRun[T](capacity, c)
	if err != nil {
		return Sized[T]{}, err
	}
	return shape.Wrap(items)
}

// NewValidatedBatch declares a batch shape of the given capacity and wraps
// items in one step.
func NewValidatedBatch[T any](capacity int, items []T, c Constraints) (Sized[T], error) {
	shape, err := DeclareBatch[T](capacity, c)
	if err != nil {
		return Sized[T]{}, err
	}
	return shape.Wrap(items)
}

// Len returns the number of elements, which always equals Capacity().
func (s Sized[T]) Len() int {
	return len(s.items)
}

// Capacity returns the declared capacity.
func (s Sized[T]) Capacity() int {
	return s.shape.capacity
}

// At returns the element at index i. It panics if i is out of range,
// like a slice index.
func (s Sized[T]) At(i int) T {
	return s.items[i]
}

// Items returns a copy of the elements.
func (s Sized[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// All iterates over index/element pairs.
func (s Sized[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range s.items {
			if !yield(i, item) {
				return
			}
		}
	}
}
