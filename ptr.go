package owned

import (
	"fmt"
	"reflect"
)

// Ptr exclusively owns the object at a *T and destroys it through a policy
// of type D exactly once.
//
// A Ptr must not be copied; ownership moves with Take, Convert, Erase and
// MoveFrom, each of which leaves the source empty. Close runs the policy and
// is meant to be deferred right after construction:
//
//	p := owned.New(&Conn{})
//	defer p.Close()
//
// A Ptr is not safe for concurrent use.
type Ptr[T any, D Deleter[*T]] struct {
	_    noCopy
	data Pair[*T, D]
}

// New takes ownership of p using the default policy. p may be nil.
func New[T any](p *T) Ptr[T, DefaultDelete[T]] {
	return Ptr[T, DefaultDelete[T]]{data: MakePair[*T, DefaultDelete[T]](p)}
}

// NewWithDeleter takes ownership of p using the policy d.
func NewWithDeleter[T any, D Deleter[*T]](p *T, d D) Ptr[T, D] {
	return Ptr[T, D]{data: NewPair(p, d)}
}

// Take moves the contents of other into a new Ptr. other is left empty.
func Take[T any, D Deleter[*T]](other *Ptr[T, D]) Ptr[T, D] {
	p := other.data.first
	other.data.first = nil
	return Ptr[T, D]{data: NewPair(p, other.data.second)}
}

// Convert moves the contents of other into a new Ptr whose policy is
// derived from other's policy by conv. other is left empty.
func Convert[T any, D Deleter[*T], E Deleter[*T]](other *Ptr[T, D], conv func(D) E) Ptr[T, E] {
	d := conv(other.data.second)
	p := other.data.first
	other.data.first = nil
	return Ptr[T, E]{data: NewPair(p, d)}
}

// Erase moves the contents of other into a Ptr whose policy type is the
// Deleter interface itself. Owners with different policies become
// interchangeable this way. other is left empty.
func Erase[T any, D Deleter[*T]](other *Ptr[T, D]) Ptr[T, Deleter[*T]] {
	return Convert(other, func(d D) Deleter[*T] { return d })
}

// MoveFrom destroys the object held by p, then moves the contents of other
// into p and returns p. other is left empty. Moving a Ptr into itself does
// nothing.
func (p *Ptr[T, D]) MoveFrom(other *Ptr[T, D]) *Ptr[T, D] {
	if p == other {
		return p
	}
	if old := p.data.first; old != nil {
		p.data.first = nil
		p.data.second.Delete(old)
	}
	p.data.SwapFirst(&other.data)
	p.data.second = other.data.second
	return p
}

// Clear destroys the held object, if any, and leaves p empty.
func (p *Ptr[T, D]) Clear() {
	p.Reset(nil)
}

// Close destroys the held object, if any, and leaves p empty. It always
// returns nil and may be called any number of times.
func (p *Ptr[T, D]) Close() error {
	p.Reset(nil)
	return nil
}

// Release returns the held pointer and leaves p empty without running the
// policy. The caller becomes responsible for the object.
func (p *Ptr[T, D]) Release() *T {
	old := p.data.first
	p.data.first = nil
	return old
}

// Reset replaces the held pointer with ptr and then destroys the old object,
// if any. The policy already observes ptr through p.Get.
func (p *Ptr[T, D]) Reset(ptr *T) {
	old := p.data.first
	p.data.first = ptr
	if old != nil {
		p.data.second.Delete(old)
	}
}

// Swap exchanges the pointers and policies of p and other.
func (p *Ptr[T, D]) Swap(other *Ptr[T, D]) {
	p.data.Swap(&other.data)
}

// Get returns the held pointer, which may be nil.
func (p *Ptr[T, D]) Get() *T {
	return p.data.first
}

// Deleter returns the policy slot. Mutating it only makes sense for
// stateful policies.
func (p *Ptr[T, D]) Deleter() *D {
	return p.data.Second()
}

// Valid reports whether p holds an object.
func (p *Ptr[T, D]) Valid() bool {
	return p.data.first != nil
}

// Value returns the held object. p must not be empty.
func (p *Ptr[T, D]) Value() T {
	return *p.data.first
}

// String describes the owner and its address for logging.
func (p *Ptr[T, D]) String() string {
	if p.data.first == nil {
		return fmt.Sprintf("owned.Ptr[%s](nil)", reflect.TypeOf((*T)(nil)).Elem())
	}
	return fmt.Sprintf("owned.Ptr[%s](%p)", reflect.TypeOf((*T)(nil)).Elem(), p.data.first)
}
