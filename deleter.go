package owned

import (
	"fmt"
	"io"
	"reflect"

	"go.uber.org/zap"
)

// Deleter is the capability to destroy a resource identified by a handle of
// type H. Owners never pass a nil handle to Delete, and Delete is expected
// not to fail.
type Deleter[H any] interface {
	Delete(H)
}

// DefaultDelete is the default policy for a single object.
//
// If *T implements io.Closer the object is closed first. Otherwise, when T
// is itself a pointer or interface holding a non-nil io.Closer (an owned
// *os.File slot, say), that value is closed. The object is then overwritten
// with its zero value so stale aliases observe the released state.
// DefaultDelete is zero-sized.
type DefaultDelete[T any] struct{}

// Delete releases the object at p. A nil p is a no-op.
func (DefaultDelete[T]) Delete(p *T) {
	if p == nil {
		return
	}
	destroy(p)
}

// DefaultDeleteSlice is the default policy for a contiguous run of objects.
// Every element receives the DefaultDelete treatment, then the run is
// cleared. DefaultDeleteSlice is zero-sized.
type DefaultDeleteSlice[T any] struct{}

// Delete releases every element of s.
func (DefaultDeleteSlice[T]) Delete(s []T) {
	for i := range s {
		closeObject(&s[i])
	}
	clear(s)
}

// DeleterFunc adapts an ordinary function to the Deleter interface.
type DeleterFunc[H any] func(H)

// Delete calls f(h).
func (f DeleterFunc[H]) Delete(h H) {
	f(h)
}

// Noop is a policy that does nothing. It suits handles whose lifetime is
// managed elsewhere.
type Noop[H any] struct{}

// Delete does nothing.
func (Noop[H]) Delete(H) {}

func destroy[T any](p *T) {
	closeObject(p)
	var zero T
	*p = zero
}

// closeObject closes *p when *T is an io.Closer, or else when the value
// stored at p is a non-nil io.Closer (T is itself a pointer or interface).
func closeObject[T any](p *T) {
	c, ok := any(p).(io.Closer)
	if !ok {
		c, ok = any(*p).(io.Closer)
		if !ok || isNil(c) {
			return
		}
	}
	if err := c.Close(); err != nil {
		Logger().Warn("owned: close failed during delete",
			zap.String("type", fmt.Sprintf("%T", c)),
			zap.Error(err))
	}
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
