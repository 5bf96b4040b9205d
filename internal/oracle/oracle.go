// Package oracle consults the opening book and tablebase ahead of a search,
// the two knowledge sources the driver can answer from without running
// alpha-beta at all.
package oracle

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vchizhov/corvid/internal/board"
	"github.com/vchizhov/corvid/internal/book"
	"github.com/vchizhov/corvid/internal/tablebase"
)

// Oracle bundles the book and tablebase lookups the driver checks before
// falling through to search. Either field may be left at its zero/nil value
// ("no book" or tablebase.Unavailable{}).
type Oracle struct {
	Book      *book.Book
	Tablebase tablebase.Tablebase
	OwnBook   bool
}

// New returns an Oracle with tablebase probing disabled and no book loaded.
func New() *Oracle {
	return &Oracle{Tablebase: tablebase.Unavailable{}, OwnBook: true}
}

// Answer is what the oracle found, if anything, for a position.
type Answer struct {
	BookMove  board.Move
	HasBook   bool
	TB        tablebase.ProbeResult
	TBApplies bool
}

// Consult probes the book and tablebase concurrently via errgroup, since
// neither depends on the other and a tablebase probe can be comparatively
// slow disk I/O. Returns promptly with whatever each source can answer;
// book/tablebase absence is never an error, only a negative Answer field.
func (o *Oracle) Consult(ctx context.Context, pos *board.Board) Answer {
	var answer Answer
	if o == nil {
		return answer
	}

	g, _ := errgroup.WithContext(ctx)

	if o.OwnBook && o.Book != nil {
		g.Go(func() error {
			if m, ok := o.Book.Probe(pos); ok {
				answer.BookMove = m
				answer.HasBook = true
			}
			return nil
		})
	}

	if o.Tablebase != nil && o.Tablebase.Available() &&
		tablebase.PieceCount(pos) <= o.Tablebase.MaxPieces() {
		g.Go(func() error {
			result := o.Tablebase.ProbeWDL(pos)
			if result.Found {
				answer.TB = result
				answer.TBApplies = true
			}
			return nil
		})
	}

	_ = g.Wait()
	return answer
}
