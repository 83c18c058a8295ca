package arena

import (
	"unsafe"

	"github.com/pavanmanishd/owned"
)

// Alloc returns a pointer to a zeroed T stored inside the arena.
// The returned pointer is valid as long as the arena hasn't been reset or
// released. The block is never handed back individually; use New for that.
func Alloc[T any](a *Arena) *T {
	size := sizeOf[T]()
	if size == 0 {
		return new(T)
	}
	b := a.AllocBytes(size)
	clear(b)
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// AllocSlice allocates a zeroed slice of n elements of type T inside the
// arena. Returns nil if n <= 0.
func AllocSlice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	size := sizeOf[T]()
	if size == 0 {
		return make([]T, n)
	}
	b := a.AllocBytes(size * n)
	clear(b)
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// New allocates a zeroed T inside the arena and returns its owner. Closing
// the owner scrubs the block and makes it available to later allocations of
// the same size.
//
// T must not contain Go pointers: chunk memory is not scanned by the garbage
// collector, so objects referenced only from the arena may be collected.
func New[T any](a *Arena) owned.Ptr[T, Free[T]] {
	f := Free[T]{a: a, epoch: a.epoch}
	size := sizeOf[T]()
	if size == 0 {
		a.panicIfReleased()
		return owned.NewWithDeleter(new(T), f)
	}
	return owned.NewWithDeleter((*T)(a.allocBlock(size)), f)
}

// NewSlice allocates a zeroed run of n elements of type T inside the arena
// and returns its owner. For n <= 0 the owner is empty. As with New, T must
// not contain Go pointers.
func NewSlice[T any](a *Arena, n int) owned.Slice[T, FreeSlice[T]] {
	f := FreeSlice[T]{a: a, epoch: a.epoch}
	size := sizeOf[T]()
	switch {
	case n <= 0:
		return owned.NewSliceWithDeleter[T](nil, f)
	case size == 0:
		a.panicIfReleased()
		return owned.NewSliceWithDeleter(make([]T, n), f)
	}
	p := a.allocBlock(size * n)
	return owned.NewSliceWithDeleter(unsafe.Slice((*T)(p), n), f)
}

// Free is the policy of owners returned by New. It hands the block back to
// the arena it came from. Free keeps the arena reachable for as long as an
// owner exists.
type Free[T any] struct {
	a     *Arena
	epoch uint64
}

// Delete returns the block at p to the arena.
func (f Free[T]) Delete(p *T) {
	size := sizeOf[T]()
	if size == 0 {
		return
	}
	f.a.freeBlock(unsafe.Pointer(p), size, f.epoch)
}

// FreeSlice is the policy of owners returned by NewSlice. It hands the whole
// run back to the arena as one block.
type FreeSlice[T any] struct {
	a     *Arena
	epoch uint64
}

// Delete returns the run s to the arena.
func (f FreeSlice[T]) Delete(s []T) {
	n := sizeOf[T]() * cap(s)
	if n == 0 {
		return
	}
	f.a.freeBlock(unsafe.Pointer(unsafe.SliceData(s)), n, f.epoch)
}

// sizeOf reports the size of one T.
func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
