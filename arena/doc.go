// Package arena implements a chunked bump allocator whose blocks are handed
// out as exclusive owners.
//
// # Overview
//
// The arena allocates memory in large chunks and hands out portions of those
// chunks on demand. New and NewSlice wrap each block in an owned.Ptr or
// owned.Slice whose destruction policy gives the block back: the memory is
// scrubbed and put on a free list for the next allocation of the same size.
//
//	a := arena.NewArena(0) // Use default chunk size
//	defer a.Release()
//
//	p := arena.New[Header](a)
//	defer p.Close() // block goes back to the arena
//
//	rows := arena.NewSlice[Row](a, 128)
//	defer rows.Close()
//
// Alloc and AllocSlice hand out unowned memory that is reclaimed only in
// bulk, by Reset or Release.
//
// # Policies
//
// Free and FreeSlice are stateful policies: they carry the arena and the
// epoch the block was allocated in, so an owner is larger than a bare
// pointer. Reset and Release start a new epoch; owners from an earlier epoch
// become inert and closing them does nothing. Resetting an arena with live
// owners is logged as a warning.
//
// # Thread Safety
//
// Arena is not thread-safe. SafeArena guards every operation with a mutex,
// and its owners (SafeNew, SafeNewSlice) take the same mutex when closed.
//
// # Memory Layout
//
// Chunks default to 64KB. Blocks are aligned to the pointer size and rounded
// up to a multiple of it; that rounded size is the block's free-list class.
// Chunk memory is not scanned by the garbage collector, so values stored in
// the arena must not hold the only reference to heap objects.
package arena
