package engine

import "github.com/vchizhov/corvid/internal/board"

// phaseWeight gives each piece kind's contribution to the game-phase
// counter the tapered evaluator interpolates on, per the spec's table
// (pawn 0, knight 1, bishop 1, rook 2, queen 4).
var phaseWeight = [6]int{
	board.Pawn: 0, board.Knight: 1, board.Bishop: 1,
	board.Rook: 2, board.Queen: 4, board.King: 0,
}

// pst holds middlegame and endgame piece-square tables, indexed [piece][square]
// in White's own orientation (a1=0 .. h8=63); Black's contribution mirrors
// the square vertically before lookup.
type pst struct {
	mg, eg [6][64]int
}

// Evaluator produces a static, side-to-move-relative score. It is a pure
// function of the position: no incremental state, matching IEvaluator in
// the teacher rather than its IUpdatableEvaluator variant, since dragontoothmg
// already keeps the hash and piece bitboards incrementally.
type Evaluator struct {
	tables pst
}

// NewEvaluator builds the default tapered evaluator with its piece-square tables.
func NewEvaluator() *Evaluator {
	e := &Evaluator{}
	e.tables.init()
	return e
}

// Evaluate scores pos from the perspective of the side to move.
func (e *Evaluator) Evaluate(pos *board.Board) int {
	var mg, eg, phase int

	for sq := 0; sq < 64; sq++ {
		p := pos.PieceAt(sq)
		if p == board.NoPiece {
			continue
		}
		white := isWhitePiece(pos, sq)
		sign := 1
		pstSq := sq
		if !white {
			sign = -1
			pstSq = sq ^ 56
		}
		mg += sign * (pieceValue[p] + e.tables.mg[p][pstSq])
		eg += sign * (pieceValue[p] + e.tables.eg[p][pstSq])
		phase += phaseWeight[p]
	}

	mg += pawnStructureScore(pos, true, mgPhase) - pawnStructureScore(pos, false, mgPhase)
	eg += pawnStructureScore(pos, true, egPhase) - pawnStructureScore(pos, false, egPhase)
	mg += kingSafetyScore(pos, true) - kingSafetyScore(pos, false)
	mg += mobilityScore(pos, true) - mobilityScore(pos, false)
	eg += mobilityScore(pos, true) - mobilityScore(pos, false)

	if phase > totalPhase {
		phase = totalPhase
	}
	result := (mg*phase + eg*(totalPhase-phase)) / totalPhase

	if !pos.SideToMove() {
		result = -result
	}
	return result
}

// isWhitePiece distinguishes the color of the piece occupying sq. board.Board
// exposes PieceAt (kind only), so color is recovered with a direct probe of
// White's occupancy bitboard via IsWhiteOccupied.
func isWhitePiece(pos *board.Board, sq int) bool {
	return pos.IsWhiteOccupied(sq)
}

const (
	mgPhase = iota
	egPhase
)

func pawnStructureScore(pos *board.Board, white bool, phase int) int {
	files := pawnFiles(pos, white)
	enemyFiles := pawnFiles(pos, !white)
	score := 0
	for f := 0; f < 8; f++ {
		count := files[f]
		if count == 0 {
			continue
		}
		if count >= 2 {
			score -= 20 * (count - 1)
		}
		isolated := true
		if f > 0 && files[f-1] > 0 {
			isolated = false
		}
		if f < 7 && files[f+1] > 0 {
			isolated = false
		}
		if isolated {
			score -= 15
		}
	}
	// Passed pawns: no enemy pawn on same or adjacent file ahead of the
	// most advanced friendly pawn on that file.
	ranks := pawnMostAdvancedRank(pos, white)
	for f := 0; f < 8; f++ {
		if files[f] == 0 {
			continue
		}
		r := ranks[f]
		if hasEnemyPawnAhead(enemyFiles, pos, white, f, r) {
			continue
		}
		advance := r
		if !white {
			advance = 7 - r
		}
		score += 10 + advance*advance
	}
	return score
}

func pawnFiles(pos *board.Board, white bool) [8]int {
	var files [8]int
	for sq := 0; sq < 64; sq++ {
		if pos.PieceAt(sq) != board.Pawn || pos.IsWhiteOccupied(sq) != white {
			continue
		}
		files[sq%8]++
	}
	return files
}

func pawnMostAdvancedRank(pos *board.Board, white bool) [8]int {
	var ranks [8]int
	for f := range ranks {
		if white {
			ranks[f] = -1
		} else {
			ranks[f] = 8
		}
	}
	for sq := 0; sq < 64; sq++ {
		if pos.PieceAt(sq) != board.Pawn || pos.IsWhiteOccupied(sq) != white {
			continue
		}
		f, r := sq%8, sq/8
		if white && r > ranks[f] {
			ranks[f] = r
		}
		if !white && r < ranks[f] {
			ranks[f] = r
		}
	}
	return ranks
}

func hasEnemyPawnAhead(enemyFiles [8]int, pos *board.Board, white bool, file, rank int) bool {
	for _, f := range []int{file - 1, file, file + 1} {
		if f < 0 || f > 7 || enemyFiles[f] == 0 {
			continue
		}
		for sq := 0; sq < 64; sq++ {
			if pos.PieceAt(sq) != board.Pawn || pos.IsWhiteOccupied(sq) == white || sq%8 != f {
				continue
			}
			r := sq / 8
			if white && r > rank {
				return true
			}
			if !white && r < rank {
				return true
			}
		}
	}
	return false
}

func kingSafetyScore(pos *board.Board, white bool) int {
	ksq := pos.KingSquare(white)
	if ksq < 0 {
		return 0
	}
	score := 0
	backRank := 0
	if !white {
		backRank = 7
	}
	if ksq/8 == backRank {
		score += 10
	}
	kf, kr := ksq%8, ksq/8
	for df := -1; df <= 1; df++ {
		for dr := -1; dr <= 1; dr++ {
			if df == 0 && dr == 0 {
				continue
			}
			f, r := kf+df, kr+dr
			if f < 0 || f > 7 || r < 0 || r > 7 {
				continue
			}
			sq := r*8 + f
			if pos.PieceAt(sq) == board.Pawn && pos.IsWhiteOccupied(sq) == white {
				score += 5
			}
		}
	}
	return score
}

// mobilityWeight matches the spec's per-piece mobility multipliers
// (N x2, B x3, R x2, Q x1).
var mobilityWeight = [6]int{board.Knight: 2, board.Bishop: 3, board.Rook: 2, board.Queen: 1}

// mobilityScore counts, for each minor/major piece of the given side, legal
// destination squares and weights them. Computing the non-side-to-move's
// mobility requires a null move so the generator runs from its perspective;
// this is pure (made and unmade within the call) so Evaluate stays side-effect free.
func mobilityScore(pos *board.Board, white bool) int {
	if pos.SideToMove() != white {
		pos.MakeNullMove()
		defer pos.UnmakeMove()
	}
	score := 0
	for _, m := range pos.LegalMoves() {
		p := pos.PieceAt(int(m.From()))
		score += mobilityWeight[p]
	}
	return score
}
