package engine

import (
	"errors"

	"github.com/vchizhov/corvid/internal/board"
)

// errSearchStopped unwinds the recursive search when the control deadline or
// stop flag fires, mirroring the teacher's panic/recover sentinel
// (errSearchTimeout in pkg/engine/search.go) rather than threading an error
// return through every alphaBeta frame.
var errSearchStopped = errors.New("search stopped")

// searchWorker is one lazy-SMP participant: its own board, move/PV stack,
// and ordering memory, sharing only the transposition table and the
// search-wide stop control with its siblings.
type searchWorker struct {
	pos       *board.Board
	eval      *Evaluator
	tt        *TranspositionTable
	history   historyTable
	killers   killers
	control   *SearchControl
	nodes     int64
	pvStack   [MaxPly]PVLine
	evalStack [MaxPly]int
	seldepth  int
}

func newSearchWorker(pos *board.Board, tt *TranspositionTable, eval *Evaluator, control *SearchControl) *searchWorker {
	return &searchWorker{pos: pos, eval: eval, tt: tt, control: control}
}

func (w *searchWorker) clearMemory() {
	w.history.clear()
	w.killers.clear()
}

// searchRoot runs a full iteration at depth, returning the score and filling
// pvStack[0] with the principal variation. moves is the root move list,
// already reordered so the previous iteration's best move is tried first.
func (w *searchWorker) searchRoot(moves []board.Move, depth, prevScore int) (score int, bestMove board.Move) {
	alpha, beta := -valueInf, valueInf
	if depth >= 5 && prevScore > valueLoss && prevScore < valueWin {
		const window = 25
		alpha = maxInt(-valueInf, prevScore-window)
		beta = minInt(valueInf, prevScore+window)
	}
	for {
		score, bestMove = w.searchRootWindow(moves, depth, alpha, beta)
		if score > alpha && score < beta {
			return
		}
		if score <= alpha {
			alpha = -valueInf
		}
		if score >= beta {
			beta = valueInf
		}
	}
}

func (w *searchWorker) searchRootWindow(moves []board.Move, depth, alpha, beta int) (int, board.Move) {
	const ply = 0
	w.pvStack[ply].clear()
	hashMove := board.NoMove
	if len(moves) > 0 {
		hashMove = moves[0]
	}
	ordered := orderMoves(w.pos, moves, hashMove, &w.killers, ply, &w.history, w.pos.SideToMove())

	var best = -valueInf
	var bestMove board.Move
	first := true
	for _, sm := range ordered {
		m := sm.move
		w.pos.MakeMove(m)

		var score int
		if first {
			score = -w.alphaBeta(-beta, -alpha, depth-1, ply+1)
		} else {
			score = -w.alphaBeta(-alpha-1, -alpha, depth-1, ply+1)
			if score > alpha && score < beta {
				score = -w.alphaBeta(-beta, -alpha, depth-1, ply+1)
			}
		}
		w.pos.UnmakeMove()

		if score > best {
			best = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			w.pvStack[ply].assign(m, &w.pvStack[ply+1])
			if alpha >= beta {
				break
			}
		}
		first = false
	}
	return best, bestMove
}

// alphaBeta is fail-soft negamax with PVS, LMR, null-move pruning, and
// quiescence at the horizon, following the node flow in order.
func (w *searchWorker) alphaBeta(alpha, beta, depth, ply int) int {
	w.incNode()
	if ply > w.seldepth {
		w.seldepth = ply
	}

	pvNode := beta-alpha > 1

	// Mate-distance pruning.
	alpha = maxInt(alpha, -MateValue+ply)
	beta = minInt(beta, MateValue-ply-1)
	if alpha >= beta {
		return alpha
	}

	if ply > 0 {
		if w.pos.IsRepetition() || w.pos.IsHalfmoveDraw() {
			return 0
		}
	}

	if depth <= 0 {
		return w.quiescence(alpha, beta, ply)
	}

	w.pvStack[ply].clear()

	isCheck := w.pos.InCheck()
	hash := w.pos.Hash()

	ttDepth, ttScore, ttBound, ttMove, ttStaticEval, ttHit := w.tt.Probe(hash)
	if ttHit {
		ttScore = valueFromTT(ttScore, ply)
		if ttDepth >= depth && !pvNode {
			switch {
			case ttBound == BoundExact:
				return ttScore
			case ttBound == BoundLower && ttScore >= beta:
				return ttScore
			case ttBound == BoundUpper && ttScore <= alpha:
				return ttScore
			}
		}
	}

	var staticEval int
	if ttHit {
		staticEval = ttStaticEval
	} else {
		staticEval = w.eval.Evaluate(w.pos)
	}
	w.evalStack[ply] = staticEval

	// Null-move pruning.
	if !pvNode && !isCheck && depth >= 3 && ply > 0 &&
		w.pos.HasNonPawnMaterial(w.pos.SideToMove()) {
		r := 3 + depth/6
		w.pos.MakeNullMove()
		score := -w.alphaBeta(-beta, -beta+1, depth-r-1, ply+1)
		w.pos.UnmakeMove()
		if score >= beta {
			return score
		}
	}

	moves := w.pos.LegalMoves()
	if len(moves) == 0 {
		if isCheck {
			return -MateValue + ply
		}
		return 0
	}

	hashMove := board.NoMove
	if ttHit {
		hashMove = ttMove
	}
	ordered := orderMoves(w.pos, moves, hashMove, &w.killers, ply, &w.history, w.pos.SideToMove())

	oldAlpha := alpha
	best := -valueInf
	var bestMove board.Move

	for idx, sm := range ordered {
		m := sm.move
		quiet := !w.pos.IsCapture(m)

		w.pos.MakeMove(m)
		givesCheck := w.pos.InCheck()

		extension := 0
		if givesCheck {
			extension = 1
		}
		if m.Promote() != 0 {
			extension = 1
		}
		newDepth := depth - 1 + extension

		var score int
		if idx >= 4 && depth >= 3 && quiet && !isCheck && !givesCheck {
			reduction := lmrReduction(pvNode, depth, idx)
			score = -w.alphaBeta(-alpha-1, -alpha, newDepth-reduction, ply+1)
			if score > alpha {
				score = -w.alphaBeta(-alpha-1, -alpha, newDepth, ply+1)
				if score > alpha && pvNode {
					score = -w.alphaBeta(-beta, -alpha, newDepth, ply+1)
				}
			}
		} else if idx == 0 {
			score = -w.alphaBeta(-beta, -alpha, newDepth, ply+1)
		} else {
			score = -w.alphaBeta(-alpha-1, -alpha, newDepth, ply+1)
			if score > alpha && score < beta {
				score = -w.alphaBeta(-beta, -alpha, newDepth, ply+1)
			}
		}
		w.pos.UnmakeMove()

		if score > best {
			best = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			w.pvStack[ply].assign(m, &w.pvStack[ply+1])
			if alpha >= beta {
				if quiet {
					w.killers.update(ply, m)
					w.history.update(w.pos.SideToMove(), m, depth)
				}
				break
			}
		}
	}

	bound := BoundUpper
	if best > oldAlpha {
		bound = BoundExact
	}
	if best >= beta {
		bound = BoundLower
	}
	w.tt.Store(hash, depth, valueToTT(best, ply), bound, bestMove, staticEval)

	return best
}

// lmrReduction implements the spec's two reduction formulas, selected on
// whether the current node is part of the principal variation.
func lmrReduction(pvNode bool, depth, idx int) int {
	var r int
	if pvNode {
		r = depth/6 + idx/8 - 1
	} else {
		r = depth/4 + idx/6
	}
	if r < 0 {
		r = 0
	}
	return r
}

// quiescence searches only noisy moves (and check evasions) beyond the
// horizon, using delta pruning and a fail-hard beta cutoff.
func (w *searchWorker) quiescence(alpha, beta, ply int) int {
	w.incNode()
	if ply > w.seldepth {
		w.seldepth = ply
	}
	w.pvStack[ply].clear()

	if ply >= MaxPly-1 {
		return w.eval.Evaluate(w.pos)
	}

	isCheck := w.pos.InCheck()
	standPat := w.eval.Evaluate(w.pos)
	if !isCheck {
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	for _, sm := range quiescenceMoves(w.pos) {
		m := sm.move
		if !isCheck {
			victim := captureVictim(w.pos, m)
			if standPat+pieceValue[victim]+200 < alpha {
				continue
			}
		}
		w.pos.MakeMove(m)
		score := -w.quiescence(-beta, -alpha, ply+1)
		w.pos.UnmakeMove()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
			w.pvStack[ply].assign(m, &w.pvStack[ply+1])
		}
	}

	return alpha
}

func (w *searchWorker) incNode() {
	w.nodes++
	if w.nodes&255 == 0 && w.control.shouldStop() {
		panic(errSearchStopped)
	}
}
