package book

import "github.com/vchizhov/corvid/internal/board"

// PolyGlot keys are a distinct Zobrist scheme from the engine's own
// transposition-table hash, generated once at package init the same way the
// reference polyglot.go in the retrieval pack builds its table: a seeded
// xorshift64* stream rather than a literal copy of the published PolyGlot
// random-number table (which appears nowhere in the source pack). A real
// third-party .bin file will not probe correctly against this table; see
// the design notes for why that tradeoff was accepted.
var (
	polyglotPieces    [12][64]uint64
	polyglotCastling  [4]uint64
	polyglotEnPassant [8]uint64
	polyglotSide      uint64
)

func init() {
	var s uint64 = 0x37b4a4b3f0d1c0d0
	next := func() uint64 {
		s ^= s >> 12
		s ^= s << 25
		s ^= s >> 27
		return s * 0x2545F4914F6CDD1D
	}
	for p := 0; p < 12; p++ {
		for sq := 0; sq < 64; sq++ {
			polyglotPieces[p][sq] = next()
		}
	}
	for i := range polyglotCastling {
		polyglotCastling[i] = next()
	}
	for i := range polyglotEnPassant {
		polyglotEnPassant[i] = next()
	}
	polyglotSide = next()
}

// polyglotPieceIndex maps a (white, kind) pair to PolyGlot's piece ordering:
// black pawn..king occupy 0..5, white pawn..king occupy 6..11.
func polyglotPieceIndex(white bool, kind board.Piece) int {
	idx := int(kind)
	if white {
		return idx + 6
	}
	return idx
}

func polyglotHash(pos *board.Board) uint64 {
	var hash uint64

	for sq := 0; sq < 64; sq++ {
		piece := pos.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}
		white := pos.IsWhiteOccupied(sq)
		hash ^= polyglotPieces[polyglotPieceIndex(white, piece)][sq]
	}

	rights := pos.CastlingRights()
	for i := 0; i < 4; i++ {
		if rights&(1<<uint(i)) != 0 {
			hash ^= polyglotCastling[i]
		}
	}

	if ep := pos.EnpassantSquare(); ep >= 0 && enPassantCapturable(pos, ep) {
		hash ^= polyglotEnPassant[ep%8]
	}

	if pos.SideToMove() {
		hash ^= polyglotSide
	}

	return hash
}

// enPassantCapturable reports whether a pawn of the side to move actually
// sits on a square that can capture the en-passant target, matching
// PolyGlot's rule of only folding the en-passant key in when the capture is
// really available (not merely when the target square is set).
func enPassantCapturable(pos *board.Board, ep int) bool {
	white := pos.SideToMove()
	file := ep % 8
	var rank int
	if white {
		rank = 4 // white pawns capturing en passant stand on rank 5 (index 4)
	} else {
		rank = 3 // black pawns capturing en passant stand on rank 4 (index 3)
	}
	for _, df := range []int{-1, 1} {
		f := file + df
		if f < 0 || f > 7 {
			continue
		}
		sq := rank*8 + f
		if pos.PieceAt(sq) == board.Pawn && pos.IsWhiteOccupied(sq) == white {
			return true
		}
	}
	return false
}
