// Package board adapts github.com/dylhunn/dragontoothmg's bitboard position
// representation to the contract the search package depends on: reversible
// make/unmake, repetition and fifty-move bookkeeping, and the handful of
// queries (king square, non-pawn material, piece-at) dragontoothmg does not
// expose directly.
package board

import (
	"strings"

	dragon "github.com/dylhunn/dragontoothmg"
)

// Move is the engine's opaque move representation. It is dragontoothmg's
// own Move type re-exported so callers never import dragontoothmg directly.
type Move = dragon.Move

// NoMove is the sentinel for "no move": the zero value, serialized in UCI as "0000".
const NoMove Move = 0

// Piece enumerates piece kinds in dragontoothmg's numbering (0=Pawn..5=King).
type Piece int

const (
	Pawn Piece = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPiece Piece = -1
)

// Board wraps a dragontoothmg.Board with the extra bookkeeping the search
// needs: a stack of prior hashes for repetition detection and a growing
// undo log, since dragontoothmg's own Apply returns a closure rather than a
// value we can store alongside our own per-ply state.
type Board struct {
	inner   dragon.Board
	history []uint64 // one zobrist hash per ply played since the root position was set
	undoLog []func()
}

// New builds a Board from a FEN string. An empty/"startpos" fen loads the
// initial position.
const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func New(fen string) *Board {
	var b Board
	if fen == "" || fen == "startpos" {
		b.inner = dragon.ParseFen(startFEN)
	} else {
		b.inner = dragon.ParseFen(fen)
	}
	b.history = make([]uint64, 0, 64)
	b.history = append(b.history, b.inner.Hash())
	return &b
}

// ApplyUCIMoves plays a sequence of long-algebraic ("e2e4", "e7e8q") moves
// against the board, stopping and reporting an error at the first illegal
// token so the caller can leave the board at the last valid state.
func (b *Board) ApplyUCIMoves(moves []string) error {
	for _, mv := range moves {
		m, err := b.parseUCIMove(mv)
		if err != nil {
			return err
		}
		b.MakeMove(m)
	}
	return nil
}

func (b *Board) parseUCIMove(s string) (Move, error) {
	for _, m := range b.inner.GenerateLegalMoves() {
		if strings.EqualFold(m.String(), s) {
			return m, nil
		}
	}
	return NoMove, errIllegalMove(s)
}

type errIllegalMove string

func (e errIllegalMove) Error() string { return "illegal move in position command: " + string(e) }

// MakeMove plays a move, pushing its undo onto the internal log. The move
// must be one generated by LegalMoves for this exact position.
func (b *Board) MakeMove(m Move) {
	undo := b.inner.Apply(m)
	b.undoLog = append(b.undoLog, undo)
	b.history = append(b.history, b.inner.Hash())
}

// UnmakeMove reverts the most recent MakeMove/MakeNullMove.
func (b *Board) UnmakeMove() {
	n := len(b.undoLog)
	b.undoLog[n-1]()
	b.undoLog = b.undoLog[:n-1]
	b.history = b.history[:len(b.history)-1]
}

// MakeNullMove passes the turn without moving a piece. dragontoothmg has no
// native null move, so it is synthesized by flipping Wtomove, clearing the
// en-passant square and advancing the halfmove clock (castling rights are
// left alone), matching how the teacher's common.MakeNullMove behaves.
func (b *Board) MakeNullMove() {
	prevEp := b.inner.Enpassant
	prevHalf := b.inner.Halfmoveclock
	b.inner.Wtomove = !b.inner.Wtomove
	b.inner.Enpassant = 0
	b.inner.Halfmoveclock++
	undo := func() {
		b.inner.Wtomove = !b.inner.Wtomove
		b.inner.Enpassant = prevEp
		b.inner.Halfmoveclock = prevHalf
	}
	b.undoLog = append(b.undoLog, undo)
	b.history = append(b.history, b.inner.Hash())
}

// LegalMoves returns every legal move in the current position.
func (b *Board) LegalMoves() []Move {
	return b.inner.GenerateLegalMoves()
}

// Captures returns the subset of legal moves that capture a piece (including
// en passant) plus every promotion, capturing or not, used by quiescence
// search. dragontoothmg does not special-case capture generation so this
// filters the legal move list by to-square occupancy.
func (b *Board) Captures() []Move {
	var occ = b.inner.White.All | b.inner.Black.All
	var all = b.inner.GenerateLegalMoves()
	var out = all[:0:0]
	for _, m := range all {
		if m.Promote() != 0 {
			out = append(out, m)
			continue
		}
		if (uint64(1)<<m.To())&occ != 0 {
			out = append(out, m)
			continue
		}
		if b.inner.Enpassant != 0 && m.To() == b.inner.Enpassant && b.pieceAtSquare(int(m.From())) == Pawn {
			out = append(out, m)
		}
	}
	return out
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool {
	return b.inner.OurKingInCheck()
}

// IsCapture reports whether a move captures a piece (including en passant).
func (b *Board) IsCapture(m Move) bool {
	if m.Promote() != 0 {
		return b.squareOccupied(int(m.To()))
	}
	if b.squareOccupied(int(m.To())) {
		return true
	}
	return b.inner.Enpassant != 0 && m.To() == b.inner.Enpassant && b.pieceAtSquare(int(m.From())) == Pawn
}

func (b *Board) squareOccupied(sq int) bool {
	occ := b.inner.White.All | b.inner.Black.All
	return occ&(uint64(1)<<uint(sq)) != 0
}

// Hash returns the Zobrist hash of the current position.
func (b *Board) Hash() uint64 {
	return b.inner.Hash()
}

// SideToMove reports true for White.
func (b *Board) SideToMove() bool {
	return b.inner.Wtomove
}

// PieceAt returns the piece kind occupying sq, or NoPiece.
func (b *Board) PieceAt(sq int) Piece {
	return b.pieceAtSquare(sq)
}

// IsWhiteOccupied reports whether sq is occupied by a white piece. Behavior
// is undefined for an empty square; callers must check PieceAt first.
func (b *Board) IsWhiteOccupied(sq int) bool {
	mask := uint64(1) << uint(sq)
	return b.inner.White.All&mask != 0
}

func (b *Board) pieceAtSquare(sq int) Piece {
	mask := uint64(1) << uint(sq)
	var bb *dragon.Bitboards
	if b.inner.White.All&mask != 0 {
		bb = &b.inner.White
	} else if b.inner.Black.All&mask != 0 {
		bb = &b.inner.Black
	} else {
		return NoPiece
	}
	switch {
	case bb.Pawns&mask != 0:
		return Pawn
	case bb.Knights&mask != 0:
		return Knight
	case bb.Bishops&mask != 0:
		return Bishop
	case bb.Rooks&mask != 0:
		return Rook
	case bb.Queens&mask != 0:
		return Queen
	case bb.Kings&mask != 0:
		return King
	}
	return NoPiece
}

// KingSquare returns the square of the king belonging to white (or black).
func (b *Board) KingSquare(white bool) int {
	var bb uint64
	if white {
		bb = b.inner.White.Kings
	} else {
		bb = b.inner.Black.Kings
	}
	return firstOne(bb)
}

func firstOne(bb uint64) int {
	for sq := 0; sq < 64; sq++ {
		if bb&(uint64(1)<<uint(sq)) != 0 {
			return sq
		}
	}
	return -1
}

// HasNonPawnMaterial reports whether side has any piece other than pawns and
// king, used to gate null-move pruning (zugzwang-prone endgames are skipped).
func (b *Board) HasNonPawnMaterial(white bool) bool {
	var bb *dragon.Bitboards
	if white {
		bb = &b.inner.White
	} else {
		bb = &b.inner.Black
	}
	return (bb.Knights | bb.Bishops | bb.Rooks | bb.Queens) != 0
}

// IsRepetition reports whether the current hash has occurred earlier since
// the last irreversible move (capture, pawn move, castling, or loss of
// castling/en-passant rights flushes dragontoothmg's own fifty-move clock,
// which this mirrors via Halfmoveclock).
func (b *Board) IsRepetition() bool {
	n := len(b.history)
	if n < 5 {
		return false
	}
	current := b.history[n-1]
	half := int(b.inner.Halfmoveclock)
	start := n - 1 - half
	if start < 0 {
		start = 0
	}
	for i := n - 3; i >= start; i -= 2 {
		if b.history[i] == current {
			return true
		}
	}
	return false
}

// IsHalfmoveDraw reports the fifty-move rule (100 half-moves without a
// capture or pawn push).
func (b *Board) IsHalfmoveDraw() bool {
	return b.inner.Halfmoveclock >= 100
}

// EnpassantSquare returns the current en-passant target square, or -1.
func (b *Board) EnpassantSquare() int {
	if b.inner.Enpassant == 0 {
		return -1
	}
	return int(b.inner.Enpassant)
}

// CastlingRights returns the four castling-right bits in PolyGlot order:
// bit0 white kingside, bit1 white queenside, bit2 black kingside, bit3 black queenside.
func (b *Board) CastlingRights() uint8 {
	var r uint8
	cr := b.inner.Castlerights
	if cr&dragon.WhiteCanCastleKingside != 0 {
		r |= 1
	}
	if cr&dragon.WhiteCanCastleQueenside != 0 {
		r |= 2
	}
	if cr&dragon.BlackCanCastleKingside != 0 {
		r |= 4
	}
	if cr&dragon.BlackCanCastleQueenside != 0 {
		r |= 8
	}
	return r
}

// ToFEN renders the current position as a FEN string.
func (b *Board) ToFEN() string {
	return b.inner.ToFen()
}
