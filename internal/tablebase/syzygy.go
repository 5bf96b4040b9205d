// Package tablebase defines the Syzygy endgame-tablebase probing contract
// the search consults before falling back to its own evaluation. No Syzygy
// decoder exists anywhere in the retrieval pack (the one probing interface
// found there, hailam-chessplay's tablebase.go, ships only a no-op
// placeholder itself), so this package follows that same shape: an
// interface plus an Unavailable implementation, leaving room for a real
// decoder to be dropped in later without touching callers.
package tablebase

import "github.com/vchizhov/corvid/internal/board"

// WDL is a tablebase win/draw/loss verdict, including the 50-move-rule
// "cursed"/"blessed" cases a real Syzygy probe distinguishes.
type WDL int

const (
	Loss        WDL = -2
	BlessedLoss WDL = -1
	Draw        WDL = 0
	CursedWin   WDL = 1
	Win         WDL = 2
)

// ProbeResult is the outcome of probing a single position's WDL table.
type ProbeResult struct {
	Found bool
	WDL   WDL
}

// RootResult is the outcome of probing every root move via the DTZ tables,
// used to pick a tablebase-preserving move rather than just a WDL class.
type RootResult struct {
	Found bool
	Move  board.Move
	WDL   WDL
	DTZ   int
}

// Tablebase is the contract the oracle package probes before search.
type Tablebase interface {
	ProbeWDL(pos *board.Board) ProbeResult
	ProbeRoot(pos *board.Board) RootResult
	MaxPieces() int
	Available() bool
}

// Unavailable is the zero-cost Tablebase used whenever no Syzygy path is
// configured, or the configured path failed to load.
type Unavailable struct{}

func (Unavailable) ProbeWDL(pos *board.Board) ProbeResult   { return ProbeResult{} }
func (Unavailable) ProbeRoot(pos *board.Board) RootResult   { return RootResult{} }
func (Unavailable) MaxPieces() int                          { return 0 }
func (Unavailable) Available() bool                         { return false }

// ScoreFromWDL converts a WDL verdict into a search score centered on the
// usual mate distance scale, so the oracle can feed a tablebase hit straight
// into the same alpha-beta window the rest of the search uses.
func ScoreFromWDL(wdl WDL, ply int) int {
	const mateValue = 30000
	switch wdl {
	case Win:
		return mateValue - 100 - ply
	case CursedWin:
		return mateValue - 200 - ply
	case Draw:
		return 0
	case BlessedLoss:
		return -mateValue + 200 + ply
	case Loss:
		return -mateValue + 100 + ply
	default:
		return 0
	}
}

// PieceCount reports the total number of pieces on the board, used to gate
// a tablebase probe against MaxPieces before attempting one.
func PieceCount(pos *board.Board) int {
	n := 0
	for sq := 0; sq < 64; sq++ {
		if pos.PieceAt(sq) != board.NoPiece {
			n++
		}
	}
	return n
}
