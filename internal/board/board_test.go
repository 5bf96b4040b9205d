package board

import "testing"

func TestMakeUnmakeRestoresHash(t *testing.T) {
	var fens = []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		var b = New(fen)
		var before = b.Hash()
		for _, m := range b.LegalMoves() {
			b.MakeMove(m)
			b.UnmakeMove()
			if b.Hash() != before {
				t.Errorf("%s: make/unmake %v changed hash %d -> %d", fen, m, before, b.Hash())
			}
		}
	}
}

func TestMakeUnmakeNestedRestoresHash(t *testing.T) {
	var b = New("")
	var before = b.Hash()
	var depth = 3
	var walk func(d int)
	walk = func(d int) {
		if d == 0 {
			return
		}
		for _, m := range b.LegalMoves() {
			b.MakeMove(m)
			walk(d - 1)
			b.UnmakeMove()
		}
	}
	walk(depth)
	if b.Hash() != before {
		t.Errorf("nested make/unmake changed hash %d -> %d", before, b.Hash())
	}
}

func TestMakeNullMoveRestoresState(t *testing.T) {
	var b = New("")
	var before = b.Hash()
	var sideBefore = b.SideToMove()
	b.MakeNullMove()
	if b.SideToMove() == sideBefore {
		t.Error("null move did not flip side to move")
	}
	b.UnmakeMove()
	if b.Hash() != before {
		t.Errorf("null move/unmake changed hash %d -> %d", before, b.Hash())
	}
	if b.SideToMove() != sideBefore {
		t.Error("null move/unmake did not restore side to move")
	}
}

func TestCapturesSubsetOfLegalMoves(t *testing.T) {
	var b = New("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var legal = map[Move]bool{}
	for _, m := range b.LegalMoves() {
		legal[m] = true
	}
	for _, m := range b.Captures() {
		if !legal[m] {
			t.Errorf("capture %v not present in legal move list", m)
		}
		if !b.IsCapture(m) {
			t.Errorf("move %v returned by Captures but IsCapture is false", m)
		}
	}
}

func TestCastlingRightsBits(t *testing.T) {
	var b = New("")
	if b.CastlingRights() != 0x0F {
		t.Errorf("initial position should have all four castling bits set, got %#x", b.CastlingRights())
	}
}
