package tablebase

import (
	"testing"

	"github.com/vchizhov/corvid/internal/board"
)

func TestUnavailableReportsNotAvailable(t *testing.T) {
	var tb Unavailable
	if tb.Available() {
		t.Error("Unavailable tablebase must report Available() == false")
	}
	if tb.MaxPieces() != 0 {
		t.Error("Unavailable tablebase must report zero supported pieces")
	}
}

func TestScoreFromWDLOrdering(t *testing.T) {
	var ply = 4
	if ScoreFromWDL(Win, ply) <= ScoreFromWDL(CursedWin, ply) {
		t.Error("a clean win must score above a cursed win")
	}
	if ScoreFromWDL(CursedWin, ply) <= ScoreFromWDL(Draw, ply) {
		t.Error("a cursed win must still score above a draw")
	}
	if ScoreFromWDL(Draw, ply) <= ScoreFromWDL(BlessedLoss, ply) {
		t.Error("a draw must score above a blessed loss")
	}
	if ScoreFromWDL(BlessedLoss, ply) <= ScoreFromWDL(Loss, ply) {
		t.Error("a blessed loss must still score above an outright loss")
	}
}

func TestPieceCount(t *testing.T) {
	var b = board.New("")
	if got := PieceCount(b); got != 32 {
		t.Errorf("PieceCount(startpos) = %d, want 32", got)
	}
	var kk = board.New("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if got := PieceCount(kk); got != 2 {
		t.Errorf("PieceCount(bare kings) = %d, want 2", got)
	}
}
