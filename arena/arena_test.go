package arena

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewArena(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		expected  int
	}{
		{"default chunk size", 0, DefaultChunkSize},
		{"negative chunk size", -1, DefaultChunkSize},
		{"custom chunk size", 8192, 8192},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArena(tt.chunkSize)
			if a.chunkSize != tt.expected {
				t.Errorf("NewArena(%d) chunk size = %d, want %d", tt.chunkSize, a.chunkSize, tt.expected)
			}
			if len(a.chunks) != 1 {
				t.Errorf("NewArena(%d) chunks = %d, want 1", tt.chunkSize, len(a.chunks))
			}
		})
	}
}

func TestArenaAllocBytes(t *testing.T) {
	a := NewArena(1024)

	b1 := a.AllocBytes(100)
	if len(b1) != 100 {
		t.Errorf("AllocBytes(100) length = %d, want 100", len(b1))
	}

	if b := a.AllocBytes(0); b != nil {
		t.Errorf("AllocBytes(0) = %v, want nil", b)
	}
	if b := a.AllocBytes(-1); b != nil {
		t.Errorf("AllocBytes(-1) = %v, want nil", b)
	}

	// Larger than the chunk size forces growth
	b4 := a.AllocBytes(2000)
	if len(b4) != 2000 {
		t.Errorf("AllocBytes(2000) length = %d, want 2000", len(b4))
	}
	if a.NumChunks() != 2 {
		t.Errorf("NumChunks after large allocation = %d, want 2", a.NumChunks())
	}
}

func TestArenaEnsureCapacity(t *testing.T) {
	a := NewArena(1024)
	initialChunks := a.NumChunks()

	a.EnsureCapacity(100)
	if a.NumChunks() != initialChunks {
		t.Errorf("EnsureCapacity(100) changed chunk count")
	}

	a.EnsureCapacity(2000)
	if a.NumChunks() != initialChunks+1 {
		t.Errorf("EnsureCapacity(2000) chunks = %d, want %d", a.NumChunks(), initialChunks+1)
	}
}

func TestArenaReset(t *testing.T) {
	a := NewArena(1024)
	a.AllocBytes(100)
	a.AllocBytes(200)

	if a.SizeInUse() == 0 {
		t.Error("Expected non-zero size in use after allocations")
	}

	a.Reset()
	if a.SizeInUse() != 0 {
		t.Errorf("SizeInUse after Reset() = %d, want 0", a.SizeInUse())
	}
	if a.NumChunks() == 0 {
		t.Error("Expected chunks to remain after Reset()")
	}
}

func TestArenaResetReusesAllChunks(t *testing.T) {
	a := NewArena(1024)
	defer a.Release()

	for cycle := 0; cycle < 5; cycle++ {
		for i := 0; i < 4; i++ {
			New[[512]byte](a)
		}
		if a.NumChunks() != 2 {
			t.Errorf("cycle %d: NumChunks = %d, want 2", cycle, a.NumChunks())
		}
		if a.Capacity() != 2048 {
			t.Errorf("cycle %d: Capacity = %d, want 2048", cycle, a.Capacity())
		}
		a.Reset()
	}
}

func TestArenaResetSkipsSmallChunks(t *testing.T) {
	a := NewArena(1024)
	defer a.Release()

	a.AllocBytes(1000)
	a.AllocBytes(1000) // second 1024 chunk
	a.AllocBytes(4000) // oversized third chunk
	a.Reset()

	// The 4000-byte request skips the 1024-byte chunk for the large one
	for cycle := 0; cycle < 3; cycle++ {
		a.AllocBytes(1000)
		a.AllocBytes(4000)
		if a.NumChunks() != 3 {
			t.Errorf("cycle %d: NumChunks = %d, want 3", cycle, a.NumChunks())
		}
		a.Reset()
	}
}

func TestEnsureCapacityUsesResetChunk(t *testing.T) {
	a := NewArena(1024)
	a.AllocBytes(1000)
	a.AllocBytes(1000)
	a.Reset()

	a.AllocBytes(1000)
	a.EnsureCapacity(512)
	if a.NumChunks() != 2 {
		t.Errorf("NumChunks = %d, want 2", a.NumChunks())
	}
	if len(a.AllocBytes(512)) != 512 || a.NumChunks() != 2 {
		t.Errorf("AllocBytes after EnsureCapacity grew the arena: NumChunks = %d", a.NumChunks())
	}
}

func TestArenaRelease(t *testing.T) {
	a := NewArena(1024)
	a.AllocBytes(100)
	a.Release()

	if a.chunks != nil {
		t.Error("Expected chunks to be nil after Release()")
	}
	assert.PanicsWithValue(t, "arena: use after Release()", func() { a.AllocBytes(100) })
	assert.PanicsWithValue(t, "arena: use after Release()", func() { a.Reset() })
	assert.PanicsWithValue(t, "arena: use after Release()", func() { New[int](a) })
}

func TestArenaResetWithLiveOwnersLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	a := NewArena(1024)
	p := New[int64](a)
	q := New[int64](a)
	require.NoError(t, q.Close())

	a.Reset()
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "arena: reset with live owners", entry.Message)
	assert.Equal(t, int64(1), entry.ContextMap()["live"])

	// The stale owner is inert after Reset
	require.NoError(t, p.Close())
	assert.Equal(t, 0, a.LiveBlocks())
	assert.Equal(t, 0, a.FreeListBytes())

	a.Release()
	assert.Equal(t, 1, logs.Len(), "release without live owners is silent")
}

func TestArenaReleaseWithLiveOwnersLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	a := NewArena(1024)
	s := NewSlice[int32](a, 10)
	a.Release()

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "arena: release with live owners", logs.All()[0].Message)
	assert.NotPanics(t, func() { _ = s.Close() })
}

func TestFreeForeignBlockPanics(t *testing.T) {
	a := NewArena(1024)
	defer a.Release()
	p := New[int64](a)

	// Swapping in memory the arena never handed out frees the arena block
	// fine, but handing the outsider back panics.
	var outside int64
	p.Reset(&outside)
	assert.Equal(t, 0, a.LiveBlocks())
	assert.PanicsWithValue(t, "arena: foreign block", func() { _ = p.Close() })
}

func TestAlignPtr(t *testing.T) {
	ptrSize := unsafe.Sizeof(uintptr(0))

	tests := []struct {
		input    uintptr
		expected uintptr
	}{
		{0, 0},
		{1, ptrSize},
		{ptrSize, ptrSize},
		{ptrSize + 1, ptrSize * 2},
	}

	for _, tt := range tests {
		if result := alignPtr(tt.input); result != tt.expected {
			t.Errorf("alignPtr(%d) = %d, want %d", tt.input, result, tt.expected)
		}
	}
}

func BenchmarkArenaAllocBytes(b *testing.B) {
	a := NewArena(1024 * 1024)
	sizes := []int{8, 64, 256, 1024}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("size-%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				a.AllocBytes(size)
				if i%1000 == 999 {
					a.Reset()
				}
			}
		})
	}
}
