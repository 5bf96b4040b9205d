package engine

import "github.com/vchizhov/corvid/internal/board"

const (
	scoreHashMove   = 1000000
	scoreCapture    = 10000
	scoreKiller     = 9000
)

// mvvlvaRowBase and mvvlva(victim, attacker) implement the spec's 6x6 matrix: row base
// grows with victim value (pawn 10 .. queen 50, king 0 since it is never a
// legal capture target), column refines by how cheap the attacker is.
var mvvlvaRowBase = [6]int{
	board.Pawn: 10, board.Knight: 20, board.Bishop: 30,
	board.Rook: 40, board.Queen: 50, board.King: 0,
}

func mvvlva(victim, attacker board.Piece) int {
	return mvvlvaRowBase[victim] + (5 - int(attacker))
}

// scoredMove pairs a move with its ordering key for a single insertion sort
// pass, mirroring the teacher's OrderedMove/sortMoves pattern.
type scoredMove struct {
	move  board.Move
	score int32
}

// orderMoves assigns ordering scores to every move in moves and returns
// them sorted highest-first. pos is queried only for capture/piece lookups;
// it is not mutated.
func orderMoves(pos *board.Board, moves []board.Move, hashMove board.Move, kh *killers, ply int, hist *historyTable, white bool) []scoredMove {
	out := make([]scoredMove, len(moves))
	for i, m := range moves {
		out[i] = scoredMove{move: m, score: int32(scoreMove(pos, m, hashMove, kh, ply, hist, white))}
	}
	insertionSortDesc(out)
	return out
}

func scoreMove(pos *board.Board, m board.Move, hashMove board.Move, kh *killers, ply int, hist *historyTable, white bool) int {
	switch {
	case m == hashMove:
		return scoreHashMove
	case pos.IsCapture(m):
		victim := captureVictim(pos, m)
		attacker := pos.PieceAt(int(m.From()))
		return scoreCapture + mvvlva(victim, attacker)
	case kh.isKiller(ply, m):
		return scoreKiller
	default:
		return hist.read(white, m)
	}
}

func captureVictim(pos *board.Board, m board.Move) board.Piece {
	p := pos.PieceAt(int(m.To()))
	if p == board.NoPiece {
		// en passant: the captured pawn is not on the destination square
		return board.Pawn
	}
	return p
}

func insertionSortDesc(moves []scoredMove) {
	for i := 1; i < len(moves); i++ {
		j, v := i, moves[i]
		for ; j > 0 && moves[j-1].score < v.score; j-- {
			moves[j] = moves[j-1]
		}
		moves[j] = v
	}
}

// quiescenceMoves returns only captures (and, when in check, every evasion),
// scored by MVV-LVA and sorted, matching the spec's quiescence move set.
func quiescenceMoves(pos *board.Board) []scoredMove {
	var moves []board.Move
	if pos.InCheck() {
		moves = pos.LegalMoves()
	} else {
		moves = pos.Captures()
	}
	out := make([]scoredMove, len(moves))
	for i, m := range moves {
		var score int32
		if pos.IsCapture(m) {
			victim := captureVictim(pos, m)
			attacker := pos.PieceAt(int(m.From()))
			score = int32(scoreCapture + mvvlva(victim, attacker))
		}
		out[i] = scoredMove{move: m, score: score}
	}
	insertionSortDesc(out)
	return out
}

// pieceValue is used by quiescence delta pruning and by the evaluator's
// material term; indexed by board.Piece.
var pieceValue = [6]int{
	board.Pawn: 100, board.Knight: 320, board.Bishop: 330,
	board.Rook: 500, board.Queen: 900, board.King: 20000,
}
