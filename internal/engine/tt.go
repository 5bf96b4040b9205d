package engine

import (
	"sync/atomic"
	"unsafe"

	"github.com/vchizhov/corvid/internal/board"
)

// ttEntry is one transposition table slot. Layout mirrors the
// teacher's lock-striped entry (a CAS gate instead of a mutex, so probing
// under lazy-SMP never blocks), generalized from the teacher's date-based
// aging to the explicit generation tag the spec calls for.
type ttEntry struct {
	gate       int32
	key32      uint32
	move       board.Move
	score      int16
	staticEval int16
	depth      uint8
	bound      Bound
	generation uint8
}

// TranspositionTable is a fixed-size, direct-mapped, single-entry-per-bucket
// hash table shared by every search worker.
type TranspositionTable struct {
	megabytes  int
	entries    []ttEntry
	mask       uint64
	generation uint8
}

// NewTranspositionTable allocates a table sized to the largest power of two
// not exceeding megabytes*1MiB/sizeof(ttEntry).
func NewTranspositionTable(megabytes int) *TranspositionTable {
	if megabytes < 1 {
		megabytes = 1
	}
	size := roundDownPowerOfTwo(1024 * 1024 * megabytes / int(unsafe.Sizeof(ttEntry{})))
	if size < 1 {
		size = 1
	}
	return &TranspositionTable{
		megabytes: megabytes,
		entries:   make([]ttEntry, size),
		mask:      uint64(size - 1),
	}
}

func roundDownPowerOfTwo(n int) int {
	x := 1
	for x<<1 <= n {
		x <<= 1
	}
	return x
}

// Megabytes reports the size the table was constructed with, so the engine
// can detect a `setoption Hash` change and rebuild.
func (tt *TranspositionTable) Megabytes() int { return tt.megabytes }

// NewSearch bumps the generation tag, wrapping at 256, marking every
// existing entry as eligible for unconditional replacement.
func (tt *TranspositionTable) NewSearch() {
	tt.generation = uint8((int(tt.generation) + 1) % generationCap)
}

// Clear zeroes every slot and resets the generation to 0.
func (tt *TranspositionTable) Clear() {
	tt.generation = 0
	for i := range tt.entries {
		tt.entries[i] = ttEntry{}
	}
}

// Probe returns the slot for hash if its stored key matches.
func (tt *TranspositionTable) Probe(hash uint64) (depth int, score int, bound Bound, move board.Move, staticEval int, ok bool) {
	e := &tt.entries[hash&tt.mask]
	if !atomic.CompareAndSwapInt32(&e.gate, 0, 1) {
		return
	}
	if e.key32 == uint32(hash>>32) && e.bound != BoundNone {
		depth = int(e.depth)
		score = int(e.score)
		bound = e.bound
		move = e.move
		staticEval = int(e.staticEval)
		ok = true
	}
	atomic.StoreInt32(&e.gate, 0)
	return
}

// Store writes a search result, already mate-adjusted by the caller, applying
// the replacement rule: overwrite on empty slot, generation mismatch, depth
// at least as deep as what is already stored, or an exact-bound result for
// the same position. A same-position store without a move keeps the stored move.
func (tt *TranspositionTable) Store(hash uint64, depth, score int, bound Bound, move board.Move, staticEval int) {
	e := &tt.entries[hash&tt.mask]
	if !atomic.CompareAndSwapInt32(&e.gate, 0, 1) {
		return
	}
	sameKey := e.key32 == uint32(hash>>32)
	replace := e.bound == BoundNone ||
		e.generation != tt.generation ||
		depth >= int(e.depth) ||
		(sameKey && bound == BoundExact)
	if replace {
		e.key32 = uint32(hash >> 32)
		e.score = int16(score)
		e.staticEval = int16(staticEval)
		e.depth = uint8(depth)
		e.bound = bound
		e.generation = tt.generation
		if move != board.NoMove || !sameKey {
			e.move = move
		}
	}
	atomic.StoreInt32(&e.gate, 0)
}

// Hashfull samples up to the first 1000 slots and reports the permille that
// are occupied, whatever their generation.
func (tt *TranspositionTable) Hashfull() int {
	n := len(tt.entries)
	if n > 1000 {
		n = 1000
	}
	used := 0
	for i := 0; i < n; i++ {
		if tt.entries[i].bound != BoundNone {
			used++
		}
	}
	return used * 1000 / n
}

// Prefetch is a software prefetch hint; Go exposes no portable intrinsic for
// it, so this touches the cache line via a normal read, which is the closest
// a pure-Go implementation can come.
func (tt *TranspositionTable) Prefetch(hash uint64) {
	_ = tt.entries[hash&tt.mask]
}
