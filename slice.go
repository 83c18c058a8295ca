package owned

import (
	"fmt"
	"reflect"
)

// Slice exclusively owns a contiguous run of objects and destroys it through
// a policy of type D exactly once.
//
// Slice is the array counterpart of Ptr. Its policy receives the whole run,
// so a run is never released through a single-object path. The nil slice is
// the empty handle; a non-nil slice of length zero is an owned, empty run.
type Slice[T any, D Deleter[[]T]] struct {
	_    noCopy
	data Pair[[]T, D]
}

// NewSlice takes ownership of s using the default policy. s may be nil.
func NewSlice[T any](s []T) Slice[T, DefaultDeleteSlice[T]] {
	return Slice[T, DefaultDeleteSlice[T]]{data: MakePair[[]T, DefaultDeleteSlice[T]](s)}
}

// NewSliceWithDeleter takes ownership of s using the policy d.
func NewSliceWithDeleter[T any, D Deleter[[]T]](s []T, d D) Slice[T, D] {
	return Slice[T, D]{data: NewPair(s, d)}
}

// TakeSlice moves the contents of other into a new Slice. other is left
// empty.
func TakeSlice[T any, D Deleter[[]T]](other *Slice[T, D]) Slice[T, D] {
	s := other.data.first
	other.data.first = nil
	return Slice[T, D]{data: NewPair(s, other.data.second)}
}

// ConvertSlice moves the contents of other into a new Slice whose policy is
// derived from other's policy by conv. other is left empty.
func ConvertSlice[T any, D Deleter[[]T], E Deleter[[]T]](other *Slice[T, D], conv func(D) E) Slice[T, E] {
	d := conv(other.data.second)
	s := other.data.first
	other.data.first = nil
	return Slice[T, E]{data: NewPair(s, d)}
}

// EraseSlice moves the contents of other into a Slice whose policy type is
// the Deleter interface itself. other is left empty.
func EraseSlice[T any, D Deleter[[]T]](other *Slice[T, D]) Slice[T, Deleter[[]T]] {
	return ConvertSlice(other, func(d D) Deleter[[]T] { return d })
}

// MoveFrom destroys the run held by s, then moves the contents of other into
// s and returns s. other is left empty. Moving a Slice into itself does
// nothing.
func (s *Slice[T, D]) MoveFrom(other *Slice[T, D]) *Slice[T, D] {
	if s == other {
		return s
	}
	if old := s.data.first; old != nil {
		s.data.first = nil
		s.data.second.Delete(old)
	}
	s.data.SwapFirst(&other.data)
	s.data.second = other.data.second
	return s
}

// Clear destroys the held run, if any, and leaves s empty.
func (s *Slice[T, D]) Clear() {
	s.Reset(nil)
}

// Close destroys the held run, if any, and leaves s empty. It always returns
// nil and may be called any number of times.
func (s *Slice[T, D]) Close() error {
	s.Reset(nil)
	return nil
}

// Release returns the held run and leaves s empty without running the
// policy.
func (s *Slice[T, D]) Release() []T {
	old := s.data.first
	s.data.first = nil
	return old
}

// Reset replaces the held run with run and then destroys the old run, if
// any.
func (s *Slice[T, D]) Reset(run []T) {
	old := s.data.first
	s.data.first = run
	if old != nil {
		s.data.second.Delete(old)
	}
}

// Swap exchanges the runs and policies of s and other.
func (s *Slice[T, D]) Swap(other *Slice[T, D]) {
	s.data.Swap(&other.data)
}

// Get returns the held run, which may be nil.
func (s *Slice[T, D]) Get() []T {
	return s.data.first
}

// Deleter returns the policy slot.
func (s *Slice[T, D]) Deleter() *D {
	return s.data.Second()
}

// Valid reports whether s holds a run.
func (s *Slice[T, D]) Valid() bool {
	return s.data.first != nil
}

// At returns the i-th element of the held run.
func (s *Slice[T, D]) At(i int) *T {
	return &s.data.first[i]
}

// Len returns the number of elements in the held run.
func (s *Slice[T, D]) Len() int {
	return len(s.data.first)
}

// String describes the owner and its address for logging.
func (s *Slice[T, D]) String() string {
	if s.data.first == nil {
		return fmt.Sprintf("owned.Slice[%s](nil)", reflect.TypeOf((*T)(nil)).Elem())
	}
	return fmt.Sprintf("owned.Slice[%s](%p, len=%d)", reflect.TypeOf((*T)(nil)).Elem(), s.data.first, len(s.data.first))
}
