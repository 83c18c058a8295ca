// Package mmap hands out anonymous memory mappings as owned runs.
//
// NewSlice maps n elements of T outside the Go heap and returns an
// owned.Slice whose policy, Unmap, releases the mapping with munmap(2)
// when the owner is closed:
//
//	s, err := mmap.NewSlice[float32](1<<20, mmap.Options{Advice: mmap.AdviceSequential})
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
// The garbage collector does not scan mapped memory, so T must not contain
// Go pointers. Unmap failures are logged, never returned.
//
// On platforms without mmap, NewSlice returns ErrUnsupported.
package mmap
