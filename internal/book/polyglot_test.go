package book

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/vchizhov/corvid/internal/board"
)

func writeBookFile(t *testing.T, entries []entry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.bin")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	for _, e := range entries {
		var rec [entrySize]byte
		binary.BigEndian.PutUint64(rec[0:8], e.key)
		binary.BigEndian.PutUint16(rec[8:10], e.move)
		binary.BigEndian.PutUint16(rec[10:12], e.weight)
		if _, err := f.Write(rec[:]); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func TestLoadProbeRoundTrip(t *testing.T) {
	var startpos = board.New("")
	var key = polyglotHash(startpos)
	var moves = startpos.LegalMoves()
	if len(moves) == 0 {
		t.Fatal("expected legal moves from the starting position")
	}
	var want = moves[0]
	var from = uint16(want.From())
	var to = uint16(want.To())
	var polyMove = (from << 6) | to

	path := writeBookFile(t, []entry{{key: key, move: polyMove, weight: 10}})
	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := b.Probe(startpos)
	if !ok {
		t.Fatal("expected a book hit for the starting position")
	}
	if got != want {
		t.Errorf("Probe returned %v, want %v", got, want)
	}
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error loading a file that is not a multiple of the record size")
	}
}

func TestProbeMissOnUnknownPosition(t *testing.T) {
	path := writeBookFile(t, []entry{{key: 0xAAAA, move: 0, weight: 1}})
	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Probe(board.New("")); ok {
		t.Error("expected no hit for a key that is not in the book")
	}
}

func TestPolyglotHashDeterministic(t *testing.T) {
	var b = board.New("")
	var h1 = polyglotHash(b)
	var h2 = polyglotHash(b)
	if h1 != h2 {
		t.Errorf("polyglotHash is not deterministic: %d != %d", h1, h2)
	}
}

func TestPolyglotHashChangesAfterMove(t *testing.T) {
	var b = board.New("")
	var before = polyglotHash(b)
	var moves = b.LegalMoves()
	if len(moves) == 0 {
		t.Fatal("expected legal moves from the starting position")
	}
	b.MakeMove(moves[0])
	if polyglotHash(b) == before {
		t.Error("polyglotHash should change after a move")
	}
}

func TestPolyglotCastlingFixupKingsideWhite(t *testing.T) {
	from, to := polyglotCastlingFixup(4, 7)
	if from != 4 || to != 6 {
		t.Errorf("white kingside castling fixup = (%d,%d), want (4,6)", from, to)
	}
}

func TestPolyglotCastlingFixupQueensideBlack(t *testing.T) {
	from, to := polyglotCastlingFixup(60, 56)
	if from != 60 || to != 58 {
		t.Errorf("black queenside castling fixup = (%d,%d), want (60,58)", from, to)
	}
}

func TestPolyglotCastlingFixupLeavesNormalMoves(t *testing.T) {
	from, to := polyglotCastlingFixup(12, 28)
	if from != 12 || to != 28 {
		t.Errorf("non-castling move should pass through unchanged, got (%d,%d)", from, to)
	}
}

func TestSquareName(t *testing.T) {
	var tests = []struct {
		sq   int
		name string
	}{
		{sq: 0, name: "a1"},
		{sq: 7, name: "h1"},
		{sq: 56, name: "a8"},
		{sq: 63, name: "h8"},
	}
	for _, test := range tests {
		if got := squareName(test.sq); got != test.name {
			t.Errorf("squareName(%d) = %q, want %q", test.sq, got, test.name)
		}
	}
}
