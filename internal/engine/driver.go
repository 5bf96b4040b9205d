package engine

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vchizhov/corvid/internal/board"
	"github.com/vchizhov/corvid/internal/oracle"
)

// Engine owns the transposition table and a persistent pool of search
// workers (history/killers survive across `go` commands within a game, the
// board does not) behind the single public entry point the UCI layer calls.
// Generalizes the teacher's single-owner Engine into the lazy-SMP worker
// pool the spec's concurrency model leaves room for.
type Engine struct {
	Hash    int
	Threads int

	tt      *TranspositionTable
	eval    *Evaluator
	workers []*searchWorker
	Oracle  *oracle.Oracle

	mu sync.Mutex
}

// NewEngine constructs an engine with the teacher's defaults (16MB hash,
// single thread) pending the first Prepare/setoption.
func NewEngine() *Engine {
	return &Engine{
		Hash:    16,
		Threads: 1,
		eval:    NewEvaluator(),
		Oracle:  oracle.New(),
	}
}

// Prepare rebuilds the transposition table and worker pool if the Hash or
// Threads options changed since the last call, matching the teacher's
// Engine.Prepare. Must not be called while a search is in flight (the UCI
// layer enforces this by refusing setoption/isready during `go`).
func (e *Engine) Prepare() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tt == nil || e.tt.Megabytes() != e.Hash {
		e.tt = NewTranspositionTable(e.Hash)
	}
	if len(e.workers) != e.Threads {
		e.workers = make([]*searchWorker, e.Threads)
		for i := range e.workers {
			e.workers[i] = &searchWorker{eval: e.eval, tt: e.tt}
		}
	}
	for _, w := range e.workers {
		w.tt = e.tt
	}
}

// Clear resets the transposition table and every worker's history/killers,
// matching `ucinewgame`.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tt != nil {
		e.tt.Clear()
	}
	for _, w := range e.workers {
		w.clearMemory()
	}
}

// Position is the root the driver searches from: a base FEN plus the moves
// played since, re-applied fresh for every worker so lazy-SMP threads never
// share board state.
type Position struct {
	FEN   string
	Moves []string
}

func (p Position) newBoard() (*board.Board, error) {
	b := board.New(p.FEN)
	if err := b.ApplyUCIMoves(p.Moves); err != nil {
		return nil, err
	}
	return b, nil
}

// Search runs iterative deepening to the limits given, reporting progress
// after every iteration that improves on the previous one, and returns the
// final Info once the deadline, depth cap, or ctx cancellation stops it.
func (e *Engine) Search(ctx context.Context, pos Position, limits Limits, progress func(Info)) Info {
	start := time.Now()
	e.Prepare()
	e.mu.Lock()
	e.tt.NewSearch()
	workers := e.workers
	e.mu.Unlock()

	rootBoard, err := pos.newBoard()
	if err != nil {
		return Info{}
	}
	control := newSearchControl(start, limits, rootBoard.SideToMove())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		control.Stop()
	}()

	rootMoves := rootBoard.LegalMoves()
	if len(rootMoves) == 0 {
		return Info{}
	}

	if answer := e.Oracle.Consult(ctx, rootBoard); answer.HasBook {
		return Info{PV: []board.Move{answer.BookMove}}
	}

	var result mainLine
	result.moves = []board.Move{rootMoves[0]}

	g, gctx := errgroup.WithContext(ctx)
	_ = gctx
	tasks := make(chan int)
	results := make(chan mainLine)

	for _, w := range workers {
		w := w
		b, err := pos.newBoard()
		if err != nil {
			continue
		}
		w.pos = b
		w.control = control
		w.nodes = 0
		g.Go(func() error {
			runWorkerDepths(w, rootMoves, tasks, results)
			return nil
		})
	}

	go func() {
		g.Wait()
		close(results)
	}()

	var depthCounts [MaxDepth + 1]int
	nextDepth := 1
	tasksOpen := true
	for {
		if tasksOpen {
			limitDepth := limits.Depth
			if control.depthExceeded(nextDepth, limitDepth) || nextDepth > MaxDepth || control.shouldStop() {
				close(tasks)
				tasksOpen = false
				tasks = nil
			}
		}
		select {
		case r, ok := <-results:
			if !ok {
				return finalInfo(result, start, progress)
			}
			if r.depth > result.depth {
				result = r
				control.onNodes(result.nodes)
				if mateFoundWithinHorizon(result) {
					control.Stop()
				}
				if progress != nil {
					progress(toInfo(result, start))
				}
			}
		case tasks <- nextDepth:
			depthCounts[nextDepth]++
			nextDepth++
			if len(workers) > 1 && depthCounts[nextDepth-1] >= (e.Threads+1)/2 && nextDepth <= MaxDepth {
				nextDepth++ // let some threads search ahead, as in the teacher's lazySmp
			}
		}
	}
}

// mainLine is the best completed iteration so far: depth, score, full PV,
// and the node count of the worker that completed it during this search
// (counts are kept per worker and are not summed across workers).
type mainLine struct {
	depth int
	score int
	moves []board.Move
	nodes int64
}

func mateFoundWithinHorizon(m mainLine) bool {
	return m.score >= winIn(m.depth-2) || m.score <= lossIn(m.depth-2)
}

func runWorkerDepths(w *searchWorker, rootMoves []board.Move, tasks <-chan int, results chan<- mainLine) {
	defer func() {
		if r := recover(); r != nil {
			if r == errSearchStopped {
				return
			}
			panic(r)
		}
	}()
	moves := append([]board.Move(nil), rootMoves...)
	prevScore := 0
	for depth := range tasks {
		score, best := w.searchRoot(moves, depth, prevScore)
		prevScore = score
		moveToFront(moves, best)
		results <- mainLine{
			depth: depth,
			score: score,
			moves: w.pvStack[0].Moves(),
			nodes: w.nodes,
		}
	}
}

func moveToFront(moves []board.Move, m board.Move) {
	for i, cur := range moves {
		if cur == m {
			copy(moves[1:i+1], moves[:i])
			moves[0] = m
			return
		}
	}
}

func finalInfo(m mainLine, start time.Time, progress func(Info)) Info {
	info := toInfo(m, start)
	return info
}

func toInfo(m mainLine, start time.Time) Info {
	pv := m.moves
	if len(pv) == 0 {
		pv = []board.Move{}
	}
	return Info{
		Depth:   m.depth,
		Score:   scoreToUCI(m.score),
		Nodes:   m.nodes,
		Elapsed: time.Since(start).Milliseconds(),
		PV:      pv,
	}
}
