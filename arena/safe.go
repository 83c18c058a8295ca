package arena

import (
	"sync"

	"github.com/pavanmanishd/owned"
)

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// All operations are thread-safe but come with the overhead of mutex locking.
//
// Owners returned by SafeNew and SafeNewSlice lock the arena when they are
// closed, so owners sharing one SafeArena may be closed from different
// goroutines. Each owner itself is still single-goroutine.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewSafeArena(chunkSize int) *SafeArena {
	return &SafeArena{a: NewArena(chunkSize)}
}

// AllocBytes thread-safely allocates n bytes and returns a slice pointing to them.
// Returns nil if n <= 0.
func (s *SafeArena) AllocBytes(n int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocBytes(n)
}

// EnsureCapacity thread-safely ensures the current chunk has at least n free bytes.
func (s *SafeArena) EnsureCapacity(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.EnsureCapacity(n)
}

// Reset thread-safely resets allocation offsets to zero for arena reuse.
func (s *SafeArena) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Release thread-safely drops all chunks and makes the arena unusable.
func (s *SafeArena) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}

// SafeAlloc thread-safely returns a pointer to a zeroed T stored inside the arena.
func SafeAlloc[T any](s *SafeArena) *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Alloc[T](s.a)
}

// SafeAllocSlice thread-safely allocates a zeroed slice of n elements of type T.
func SafeAllocSlice[T any](s *SafeArena, n int) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocSlice[T](s.a, n)
}

// SafeNew thread-safely allocates a zeroed T and returns its owner.
func SafeNew[T any](s *SafeArena) owned.Ptr[T, SafeFree[T]] {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner := New[T](s.a)
	return owned.NewWithDeleter(owner.Release(), SafeFree[T]{s: s, epoch: s.a.epoch})
}

// SafeNewSlice thread-safely allocates a zeroed run of n elements and
// returns its owner.
func SafeNewSlice[T any](s *SafeArena, n int) owned.Slice[T, SafeFreeSlice[T]] {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner := NewSlice[T](s.a, n)
	return owned.NewSliceWithDeleter(owner.Release(), SafeFreeSlice[T]{s: s, epoch: s.a.epoch})
}

// SafeFree is the policy of owners returned by SafeNew.
type SafeFree[T any] struct {
	s     *SafeArena
	epoch uint64
}

// Delete thread-safely returns the block at p to the arena.
func (f SafeFree[T]) Delete(p *T) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	Free[T]{a: f.s.a, epoch: f.epoch}.Delete(p)
}

// SafeFreeSlice is the policy of owners returned by SafeNewSlice.
type SafeFreeSlice[T any] struct {
	s     *SafeArena
	epoch uint64
}

// Delete thread-safely returns the run s to the arena.
func (f SafeFreeSlice[T]) Delete(run []T) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	FreeSlice[T]{a: f.s.a, epoch: f.epoch}.Delete(run)
}
