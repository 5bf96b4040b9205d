package engine

import "github.com/vchizhov/corvid/internal/board"

const (
	MateValue    = 30000
	MaxPly       = 128
	MaxDepth     = 64
	valueInf     = MateValue + 1
	valueWin     = MateValue - 2*MaxPly
	valueLoss    = -valueWin
	pawnValue    = 100
	totalPhase   = 24
	generationCap = 256
)

// Bound tags the meaning of a stored TT score relative to the window it was
// produced in.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

// PVLine is a fixed-capacity, bottom-up-assembled principal variation.
type PVLine struct {
	moves [MaxDepth]board.Move
	size  int
}

func (pv *PVLine) clear() { pv.size = 0 }

// assign makes this line `m` followed by child's line.
func (pv *PVLine) assign(m board.Move, child *PVLine) {
	pv.moves[0] = m
	pv.size = 1
	if child.size > 0 {
		n := copy(pv.moves[1:], child.moves[:child.size])
		pv.size += n
	}
}

// Moves returns a freshly allocated slice copy of the line.
func (pv *PVLine) Moves() []board.Move {
	out := make([]board.Move, pv.size)
	copy(out, pv.moves[:pv.size])
	return out
}

// UCIScore is either a centipawn score or a mate-in-N score, never both.
type UCIScore struct {
	Centipawns int
	Mate       int // plies/2 rounded, signed; 0 means "not a mate score"
}

func scoreToUCI(v int) UCIScore {
	switch {
	case v >= valueWin:
		return UCIScore{Mate: (MateValue - v + 1) / 2}
	case v <= valueLoss:
		return UCIScore{Mate: (-MateValue - v) / 2}
	default:
		return UCIScore{Centipawns: v}
	}
}

func winIn(ply int) int  { return MateValue - ply }
func lossIn(ply int) int { return -MateValue + ply }

// valueToTT/valueFromTT perform the distance-from-root normalization
// required so a mate score stored at one ply reads correctly from another.
func valueToTT(v, ply int) int {
	switch {
	case v >= valueWin:
		return v + ply
	case v <= valueLoss:
		return v - ply
	default:
		return v
	}
}

func valueFromTT(v, ply int) int {
	switch {
	case v >= valueWin:
		return v - ply
	case v <= valueLoss:
		return v + ply
	default:
		return v
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Limits captures the `go` command's search budget in its raw UCI form; the
// time manager turns it into a single hard deadline.
type Limits struct {
	WhiteTime, BlackTime           int // milliseconds remaining
	WhiteIncrement, BlackIncrement int
	MovesToGo                      int
	Depth                          int
	Nodes                          int
	MoveTime                       int // milliseconds, overrides clock math
	Infinite                       bool
}

// Info is a snapshot of search progress, emitted after each completed
// iteration and as the final result.
type Info struct {
	Depth    int
	SelDepth int
	Score    UCIScore
	Nodes    int64
	Elapsed  int64 // milliseconds
	PV       []board.Move
}
