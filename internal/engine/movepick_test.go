package engine

import (
	"testing"

	"github.com/vchizhov/corvid/internal/board"
)

func TestMvvLvaFavorsBiggerVictimOverCheaperAttacker(t *testing.T) {
	var queenTakenByPawn = mvvlva(board.Queen, board.Pawn)
	var pawnTakenByQueen = mvvlva(board.Pawn, board.Queen)
	if queenTakenByPawn <= pawnTakenByQueen {
		t.Errorf("pxq (%d) should score above qxp (%d)", queenTakenByPawn, pawnTakenByQueen)
	}
}

func TestMvvLvaPrefersCheaperAttackerSameVictim(t *testing.T) {
	var takenByPawn = mvvlva(board.Rook, board.Pawn)
	var takenByQueen = mvvlva(board.Rook, board.Queen)
	if takenByPawn <= takenByQueen {
		t.Errorf("rook captured by pawn (%d) should score above rook captured by queen (%d)", takenByPawn, takenByQueen)
	}
}

func TestOrderMovesPutsHashMoveFirst(t *testing.T) {
	var b = board.New("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var moves = b.LegalMoves()
	if len(moves) == 0 {
		t.Fatal("expected legal moves")
	}
	var hashMove = moves[len(moves)-1]
	var kh killers
	var hist historyTable
	var ordered = orderMoves(b, moves, hashMove, &kh, 0, &hist, true)
	if ordered[0].move != hashMove {
		t.Errorf("hash move %v should be ordered first, got %v", hashMove, ordered[0].move)
	}
}

func TestInsertionSortDescIsSorted(t *testing.T) {
	var moves = []scoredMove{{score: 1}, {score: 9}, {score: 5}, {score: 5}, {score: -2}}
	insertionSortDesc(moves)
	for i := 1; i < len(moves); i++ {
		if moves[i-1].score < moves[i].score {
			t.Errorf("moves not sorted descending at index %d: %+v", i, moves)
		}
	}
}
