// Package owned implements exclusive-ownership handles for Go.
//
// # Overview
//
// A handle owns exactly one object (Ptr) or one contiguous run of objects
// (Slice) and releases it through a destruction policy exactly once. There
// is no sharing and no reference counting: ownership moves from one handle
// to another, and the source is left empty.
//
// Go has no destructors, so a handle is released by Close, usually
// deferred:
//
//	p := owned.New(&Session{})
//	defer p.Close()
//
//	q := owned.Take(&p) // p is now empty, q owns the session
//	defer q.Close()
//
// # Destruction Policies
//
// A policy is any value implementing Deleter for the handle type:
//
//	type Deleter[H any] interface {
//		Delete(H)
//	}
//
// DefaultDelete and DefaultDeleteSlice close objects implementing io.Closer
// and zero the released memory. DeleterFunc adapts a function, and Noop does
// nothing. The arena and mmap subpackages provide allocator-backed policies.
//
// Owners never call a policy with a nil handle, and the stored handle is
// updated before the policy runs, so a policy that inspects its owner sees
// the new state.
//
// # Memory Layout
//
// Handle and policy are kept in a Pair. A zero-sized policy costs no space:
//
//	unsafe.Sizeof(owned.Ptr[T, owned.DefaultDelete[T]]{}) == unsafe.Sizeof((*T)(nil))
//	unsafe.Sizeof(owned.Slice[T, owned.DefaultDeleteSlice[T]]{}) == unsafe.Sizeof([]T(nil))
//
// # Copying
//
// Handles must not be copied by value. Ptr and Slice embed a marker that go
// vet's copylocks check reports on copy. Use Take, Convert, Erase or MoveFrom
// to transfer ownership.
//
// # Thread Safety
//
// A single handle is not safe for concurrent use. Handles owning disjoint
// objects may be used from different goroutines freely.
package owned
