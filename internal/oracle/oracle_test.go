package oracle

import (
	"context"
	"testing"

	"github.com/vchizhov/corvid/internal/board"
	"github.com/vchizhov/corvid/internal/tablebase"
)

func TestConsultNilOracleIsSafe(t *testing.T) {
	var o *Oracle
	var b = board.New("")
	var answer = o.Consult(context.Background(), b)
	if answer.HasBook || answer.TBApplies {
		t.Error("a nil oracle must answer with nothing found")
	}
}

func TestConsultNoSourcesConfigured(t *testing.T) {
	var o = New()
	var b = board.New("")
	var answer = o.Consult(context.Background(), b)
	if answer.HasBook {
		t.Error("no book loaded, should never report HasBook")
	}
	if answer.TBApplies {
		t.Error("tablebase.Unavailable should never report TBApplies")
	}
}

func TestConsultSkipsTablebaseWhenTooManyPieces(t *testing.T) {
	var o = New()
	o.Tablebase = alwaysAvailable{max: 5}
	var b = board.New("") // 32 pieces, exceeds the table's 5-piece limit
	var answer = o.Consult(context.Background(), b)
	if answer.TBApplies {
		t.Error("a position above MaxPieces must not be probed")
	}
}

type alwaysAvailable struct{ max int }

func (a alwaysAvailable) ProbeWDL(pos *board.Board) tablebase.ProbeResult {
	return tablebase.ProbeResult{Found: true, WDL: tablebase.Draw}
}
func (a alwaysAvailable) ProbeRoot(pos *board.Board) tablebase.RootResult {
	return tablebase.RootResult{}
}
func (a alwaysAvailable) MaxPieces() int   { return a.max }
func (a alwaysAvailable) Available() bool { return true }
