package arena

import (
	"unsafe"

	"go.uber.org/zap"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // allocation offset within buf
}

// Arena is a chunked bump allocator whose blocks can be handed back one at
// a time. Freed blocks are kept on per-size free lists and reused by later
// allocations of the same size class. Not goroutine-safe by default.
// Use SafeArena for concurrent access.
type Arena struct {
	chunks       []chunk
	chunkSize    int
	currentChunk *chunk

	free  map[uintptr][][]byte // size class -> freed blocks
	epoch uint64               // bumped by Reset and Release

	live       int
	freedBytes int
	reused     int
}

// NewArena creates a new Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{chunkSize: chunkSize, free: make(map[uintptr][][]byte)}
	a.grow(chunkSize)
	return a
}

// AllocBytes returns a []byte slice pointing into the arena's backing chunk.
// The memory is not zeroed and is not tracked as a live block.
// Returns nil if n <= 0.
func (a *Arena) AllocBytes(n int) []byte {
	if n <= 0 {
		return nil
	}

	// Fast path: use cached current chunk
	if c := a.currentChunk; c != nil {
		off := alignPtr(c.offset)
		if off+uintptr(n) <= uintptr(len(c.buf)) {
			c.offset = off + uintptr(n)
			return unsafe.Slice((*byte)(unsafe.Pointer(&c.buf[off])), n)
		}
	}

	return a.allocBytesSlow(n)
}

// allocBytesSlow handles allocation when fast path fails. Chunks after the
// current one were emptied by Reset and are used before growing.
func (a *Arena) allocBytesSlow(n int) []byte {
	a.panicIfReleased()
	if !a.advance(n) {
		a.grow(n)
	}

	c := a.currentChunk
	off := alignPtr(c.offset)
	c.offset = off + uintptr(n)
	return unsafe.Slice((*byte)(unsafe.Pointer(&c.buf[off])), n)
}

// allocBlock returns a pointer to n zeroed bytes, preferring a freed block
// of the same size class. The block counts as live until freeBlock.
func (a *Arena) allocBlock(n int) unsafe.Pointer {
	a.panicIfReleased()
	class := alignPtr(uintptr(n))
	var b []byte
	if l := a.free[class]; len(l) > 0 {
		b = l[len(l)-1]
		a.free[class] = l[:len(l)-1]
		a.reused++
	} else {
		b = a.AllocBytes(int(class))
	}
	clear(b)
	a.live++
	return unsafe.Pointer(unsafe.SliceData(b))
}

// freeBlock scrubs the n-byte block at p and puts it on its free list.
// Blocks handed out before the last Reset or Release are ignored: their
// memory has already been reclaimed.
func (a *Arena) freeBlock(p unsafe.Pointer, n int, epoch uint64) {
	if epoch != a.epoch {
		return
	}
	class := alignPtr(uintptr(n))
	b := unsafe.Slice((*byte)(p), class)
	if !a.owns(b) {
		panic("arena: foreign block")
	}
	clear(b)
	a.free[class] = append(a.free[class], b)
	a.live--
	a.freedBytes += int(class)
}

// owns reports whether b lies inside one of the arena's chunks.
func (a *Arena) owns(b []byte) bool {
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	for i := range a.chunks {
		buf := a.chunks[i].buf
		base := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
		if p >= base && p+uintptr(len(b)) <= base+uintptr(len(buf)) {
			return true
		}
	}
	return false
}

// EnsureCapacity ensures the current chunk has at least n free bytes.
// If not, it moves to a later chunk with room or grows the arena.
func (a *Arena) EnsureCapacity(n int) {
	a.panicIfReleased()
	c := a.currentChunk
	if c == nil || uintptr(n)+alignPtr(c.offset) > uintptr(len(c.buf)) {
		if !a.advance(n) {
			a.grow(n)
		}
	}
}

// Reset resets allocation offsets to zero but keeps allocated chunks for reuse.
// Owners still holding blocks become inert: closing them later does nothing.
func (a *Arena) Reset() {
	a.panicIfReleased()
	if a.live > 0 {
		Logger().Warn("arena: reset with live owners", zap.Int("live", a.live))
	}
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	a.currentChunk = &a.chunks[0]
	a.forget()
}

// Release drops all chunks and makes the arena unusable.
// Any subsequent allocation will panic.
func (a *Arena) Release() {
	if a.live > 0 {
		Logger().Warn("arena: release with live owners", zap.Int("live", a.live))
	}
	a.chunks = nil
	a.currentChunk = nil
	a.forget()
}

// forget drops free lists and starts a new epoch.
func (a *Arena) forget() {
	clear(a.free)
	a.epoch++
	a.live = 0
}

// advance moves currentChunk to the first later chunk with room for n bytes.
func (a *Arena) advance(n int) bool {
	i := 0
	for i < len(a.chunks) && &a.chunks[i] != a.currentChunk {
		i++
	}
	for i++; i < len(a.chunks); i++ {
		c := &a.chunks[i]
		if alignPtr(c.offset)+uintptr(n) <= uintptr(len(c.buf)) {
			a.currentChunk = c
			return true
		}
	}
	return false
}

// grow appends a new chunk of at least min bytes.
func (a *Arena) grow(min int) {
	size := a.chunkSize
	if min > size {
		size = min
	}
	a.chunks = append(a.chunks, chunk{buf: make([]byte, size)})
	a.currentChunk = &a.chunks[len(a.chunks)-1]
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.chunks == nil {
		panic("arena: use after Release()")
	}
}

// alignPtr aligns the offset up to pointer size alignment.
func alignPtr(off uintptr) uintptr {
	const align = unsafe.Sizeof(uintptr(0))
	mask := align - 1
	return (off + mask) & ^mask
}
