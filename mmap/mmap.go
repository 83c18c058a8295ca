package mmap

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/pavanmanishd/owned"
	"go.uber.org/zap"
)

var (
	// ErrInvalidLength is returned when a mapping would be empty.
	ErrInvalidLength = errors.New("mmap: invalid length")
	// ErrUnsupported is returned on platforms without anonymous mappings.
	ErrUnsupported = errors.New("mmap: not supported on this platform")
)

// Advice hints the kernel about the expected access pattern.
type Advice int

const (
	// AdviceNormal applies no special treatment.
	AdviceNormal Advice = iota
	// AdviceSequential expects pages to be read in order.
	AdviceSequential
	// AdviceRandom expects pages to be read in random order.
	AdviceRandom
	// AdviceWillNeed expects pages to be read soon.
	AdviceWillNeed
)

// String returns the lower-case name of a.
func (a Advice) String() string {
	switch a {
	case AdviceNormal:
		return "normal"
	case AdviceSequential:
		return "sequential"
	case AdviceRandom:
		return "random"
	case AdviceWillNeed:
		return "willneed"
	default:
		return fmt.Sprintf("Advice(%d)", int(a))
	}
}

// Options configures a mapping.
type Options struct {
	// Advice is passed to madvise(2) after mapping. Advice failures are
	// ignored since the hint is not required for correctness.
	Advice Advice
}

// NewSlice maps n zeroed elements of T and returns their owner.
func NewSlice[T any](n int, opts Options) (owned.Slice[T, Unmap[T]], error) {
	size := int(unsafe.Sizeof(*new(T)))
	if n <= 0 || size == 0 {
		return owned.NewSliceWithDeleter[T](nil, Unmap[T]{}), fmt.Errorf("%w: %d elements of %d bytes", ErrInvalidLength, n, size)
	}
	b, err := mapAnon(n * size)
	if err != nil {
		return owned.NewSliceWithDeleter[T](nil, Unmap[T]{}), fmt.Errorf("mmap: map %d bytes: %w", n*size, err)
	}
	if opts.Advice != AdviceNormal {
		applyAdvice(b, opts.Advice)
	}
	s := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
	return owned.NewSliceWithDeleter(s, Unmap[T]{}), nil
}

// applyAdvice passes a to madvise(2). Failures are logged at debug level.
func applyAdvice(b []byte, a Advice) {
	if err := advise(b, a); err != nil {
		Logger().Debug("mmap: madvise failed",
			zap.Stringer("advice", a),
			zap.Int("bytes", len(b)),
			zap.Error(err))
	}
}

// Unmap is the policy of owners returned by NewSlice. It is zero-sized.
type Unmap[T any] struct{}

// Delete unmaps the run s. s must span a whole mapping made by NewSlice.
func (Unmap[T]) Delete(s []T) {
	n := cap(s) * int(unsafe.Sizeof(*new(T)))
	if n == 0 {
		return
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), n)
	if err := munmap(b); err != nil {
		Logger().Warn("mmap: unmap failed", zap.Int("bytes", n), zap.Error(err))
	}
}
