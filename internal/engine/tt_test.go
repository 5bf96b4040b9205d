package engine

import (
	"testing"

	"github.com/vchizhov/corvid/internal/board"
)

func TestTranspositionTableStoreProbeRoundTrip(t *testing.T) {
	var tt = NewTranspositionTable(1)
	var hash uint64 = 0xdeadbeefcafef00d
	var move = board.Move(0x1234)
	tt.Store(hash, 6, 55, BoundExact, move, 40)

	depth, score, bound, got, staticEval, ok := tt.Probe(hash)
	if !ok {
		t.Fatal("expected probe hit after store")
	}
	if depth != 6 || score != 55 || bound != BoundExact || got != move || staticEval != 40 {
		t.Errorf("probe mismatch: depth=%d score=%d bound=%v move=%v staticEval=%d",
			depth, score, bound, got, staticEval)
	}
}

func TestTranspositionTableMissOnDifferentKey(t *testing.T) {
	var tt = NewTranspositionTable(1)
	tt.Store(1, 4, 10, BoundExact, board.Move(1), 0)
	if _, _, _, _, _, ok := tt.Probe(2); ok {
		t.Error("probe with an unstored key should miss")
	}
}

func TestTranspositionTableReplacesShallowerEntry(t *testing.T) {
	var tt = NewTranspositionTable(1)
	var hash uint64 = 7
	tt.Store(hash, 2, 10, BoundUpper, board.Move(1), 0)
	tt.Store(hash, 8, 20, BoundExact, board.Move(2), 0)

	depth, score, bound, move, _, ok := tt.Probe(hash)
	if !ok || depth != 8 || score != 20 || bound != BoundExact || move != board.Move(2) {
		t.Errorf("deeper store should replace shallower entry, got depth=%d score=%d bound=%v move=%v",
			depth, score, bound, move)
	}
}

func TestTranspositionTableNewSearchWrapsGeneration(t *testing.T) {
	var tt = NewTranspositionTable(1)
	for i := 0; i < generationCap+1; i++ {
		tt.NewSearch()
	}
	if int(tt.generation) >= generationCap {
		t.Errorf("generation %d did not wrap within cap %d", tt.generation, generationCap)
	}
}

func TestHashfullEmptyTable(t *testing.T) {
	var tt = NewTranspositionTable(1)
	if tt.Hashfull() != 0 {
		t.Errorf("Hashfull() on empty table = %d, want 0", tt.Hashfull())
	}
}
