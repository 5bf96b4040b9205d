// Package book reads PolyGlot-format opening books (.bin files: sorted
// 16-byte big-endian records of position key, move, weight, and learn data)
// and selects a weighted-random reply for a known position.
package book

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/vchizhov/corvid/internal/board"
)

// entry is one on-disk PolyGlot record, decoded into host order.
type entry struct {
	key    uint64
	move   uint16
	weight uint16
}

const entrySize = 16

// Book is an in-memory, key-sorted PolyGlot book ready for probing.
type Book struct {
	entries []entry
	rand    *rand.Rand
}

// Load reads an entire PolyGlot .bin file into memory. Entries are expected
// to already be key-sorted on disk, as every published book is, but the
// loader sorts again so a hand-edited or concatenated file still probes
// correctly.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size()%entrySize != 0 {
		return nil, errors.New("book: file size is not a multiple of the 16-byte record size")
	}

	count := int(info.Size() / entrySize)
	buf := make([]byte, info.Size())
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, err
	}

	entries := make([]entry, count)
	for i := 0; i < count; i++ {
		rec := buf[i*entrySize : (i+1)*entrySize]
		entries[i] = entry{
			key:    binary.BigEndian.Uint64(rec[0:8]),
			move:   binary.BigEndian.Uint16(rec[8:10]),
			weight: binary.BigEndian.Uint16(rec[10:12]),
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	return &Book{entries: entries, rand: rand.New(rand.NewSource(1))}, nil
}

// Probe returns a legal move for pos chosen by weighted random selection
// among every book entry matching the position's PolyGlot key, or
// (board.NoMove, false) if the position is not in the book, its entries
// carry zero total weight, or the one entry drawn does not translate into a
// currently-legal move (no other candidate is tried).
func (b *Book) Probe(pos *board.Board) (board.Move, bool) {
	key := polyglotHash(pos)
	lo, hi := b.findRange(key)
	if lo == hi {
		return board.NoMove, false
	}

	total := 0
	for _, e := range b.entries[lo:hi] {
		total += int(e.weight)
	}
	if total == 0 {
		return board.NoMove, false
	}

	legal := pos.LegalMoves()
	pick := b.rand.Intn(total)
	running := 0
	for _, e := range b.entries[lo:hi] {
		running += int(e.weight)
		if pick >= running {
			continue
		}
		if m, ok := matchLegalMove(e.move, legal); ok {
			return m, true
		}
		return board.NoMove, false
	}
	return board.NoMove, false
}

func (b *Book) findRange(key uint64) (lo, hi int) {
	lo = sort.Search(len(b.entries), func(i int) bool { return b.entries[i].key >= key })
	hi = lo
	for hi < len(b.entries) && b.entries[hi].key == key {
		hi++
	}
	return
}

// matchLegalMove decodes a PolyGlot move (from/to/promotion packed into 16
// bits, with PolyGlot's castling convention of encoding king-takes-own-rook)
// into its long-algebraic string and looks it up in the legal move list by
// that string, the same way position-command move parsing does, since the
// engine's own Move bit layout need not agree with PolyGlot's.
func matchLegalMove(pm uint16, legal []board.Move) (board.Move, bool) {
	from := int((pm >> 6) & 0x3f)
	to := int(pm & 0x3f)
	promo := (pm >> 12) & 0x7
	from, to = polyglotCastlingFixup(from, to)

	want := squareName(from) + squareName(to)
	switch promo {
	case 1:
		want += "n"
	case 2:
		want += "b"
	case 3:
		want += "r"
	case 4:
		want += "q"
	}

	for _, m := range legal {
		if strings.EqualFold(m.String(), want) {
			return m, true
		}
	}
	return board.NoMove, false
}

func squareName(sq int) string {
	file := sq % 8
	rank := sq / 8
	return fmt.Sprintf("%c%c", 'a'+file, '1'+rank)
}

// polyglotCastlingFixup rewrites the four standard PolyGlot castling
// encodings (king-takes-rook: e1h1/e1a1/e8h8/e8a8) into the king's actual
// destination square (e1g1/e1c1/e8g8/e8c8), which is all engines that encode
// castling as a normal king move (as this one does) expect to see.
func polyglotCastlingFixup(from, to int) (int, int) {
	switch {
	case from == 4 && to == 7:
		return 4, 6
	case from == 4 && to == 0:
		return 4, 2
	case from == 60 && to == 63:
		return 60, 62
	case from == 60 && to == 56:
		return 60, 58
	}
	return from, to
}

