package arena

import (
	"sync"
	"testing"

	"github.com/pavanmanishd/owned"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestNewSafeArena(t *testing.T) {
	s := NewSafeArena(1024)
	if s == nil {
		t.Fatal("NewSafeArena returned nil")
	}
	if s.a == nil {
		t.Fatal("SafeArena.a is nil")
	}
}

func TestSafeArenaAllocBytes(t *testing.T) {
	s := NewSafeArena(1024)

	if b := s.AllocBytes(100); len(b) != 100 {
		t.Errorf("AllocBytes(100) length = %d, want 100", len(b))
	}
	if s.AllocBytes(0) != nil {
		t.Error("AllocBytes(0) should return nil")
	}
	if s.AllocBytes(-1) != nil {
		t.Error("AllocBytes(-1) should return nil")
	}
}

func TestSafeArenaOperations(t *testing.T) {
	s := NewSafeArena(1024)

	s.EnsureCapacity(4096)
	if n := s.Metrics().NumChunks; n != 2 {
		t.Errorf("NumChunks after EnsureCapacity = %d, want 2", n)
	}

	if p := SafeAlloc[int](s); p == nil || *p != 0 {
		t.Error("SafeAlloc returned nil or non-zero memory")
	}
	if sl := SafeAllocSlice[int](s, 10); len(sl) != 10 {
		t.Errorf("SafeAllocSlice length = %d, want 10", len(sl))
	}

	s.Reset()
	if s.SizeInUse() != 0 {
		t.Errorf("SizeInUse after Reset = %d, want 0", s.SizeInUse())
	}

	s.Release()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on use after Release()")
		}
	}()
	s.AllocBytes(1)
}

func TestSafeNewSlice(t *testing.T) {
	s := NewSafeArena(1024)
	defer s.Release()

	run := SafeNewSlice[uint16](s, 8)
	require.Equal(t, 8, run.Len())
	*run.At(7) = 0xbeef
	require.NoError(t, run.Close())

	again := SafeNewSlice[uint16](s, 8)
	defer again.Close()
	assert.Equal(t, uint16(0), *again.At(7))
	assert.Equal(t, 1, s.Metrics().ReusedBlocks)
}

func TestSafeOwnersClosedConcurrently(t *testing.T) {
	s := NewSafeArena(4096)
	defer s.Release()

	const workers = 16
	const perWorker = 50

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				p := SafeNew[testStruct](s)
				p.Get().a = int64(w*perWorker + i)
				if err := p.Close(); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	m := s.Metrics()
	assert.Equal(t, 0, m.LiveBlocks)
	assert.Equal(t, workers*perWorker*16, m.FreedBytes)
	assert.LessOrEqual(t, m.SizeInUse, workers*16, "freed blocks are recycled")
}

func TestSafeOwnersHandedAcrossGoroutines(t *testing.T) {
	s := NewSafeArena(1024)
	defer s.Release()

	ch := make(chan *owned.Ptr[int64, SafeFree[int64]])
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for p := range ch {
			assert.NoError(t, p.Close())
		}
	}()

	for i := 0; i < 100; i++ {
		p := SafeNew[int64](s)
		*p.Get() = int64(i)
		ch <- &p
	}
	close(ch)
	wg.Wait()
	assert.Equal(t, 0, s.LiveBlocks())
}
