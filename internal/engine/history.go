package engine

import "github.com/vchizhov/corvid/internal/board"

const historyOverflow = 10000

// historyTable is the per-search quiet-move ordering memory, indexed by
// (side to move, from, to). Grounded on the teacher's mainHistory array but
// using the spec's depth-squared bonus and saturating halve instead of the
// teacher's exponential moving average.
type historyTable struct {
	counters [2][64][64]int
}

func (h *historyTable) read(white bool, m board.Move) int {
	return h.counters[sideIndex(white)][m.From()][m.To()]
}

func (h *historyTable) update(white bool, m board.Move, depth int) {
	bonus := depth * depth
	c := &h.counters[sideIndex(white)][m.From()][m.To()]
	*c += bonus
	if *c > historyOverflow {
		h.halve()
	}
}

func (h *historyTable) halve() {
	for s := range h.counters {
		for f := range h.counters[s] {
			for t := range h.counters[s][f] {
				h.counters[s][f][t] /= 2
			}
		}
	}
}

func (h *historyTable) clear() {
	h.counters = [2][64][64]int{}
}

func sideIndex(white bool) int {
	if white {
		return 0
	}
	return 1
}

// killers holds, per search ply, the pair of quiet moves that most recently
// caused a beta cutoff there.
type killers struct {
	slots [MaxPly][2]board.Move
}

func (k *killers) update(ply int, m board.Move) {
	if k.slots[ply][0] == m {
		return
	}
	k.slots[ply][1] = k.slots[ply][0]
	k.slots[ply][0] = m
}

func (k *killers) isKiller(ply int, m board.Move) bool {
	return m == k.slots[ply][0] || m == k.slots[ply][1]
}

func (k *killers) clear() {
	k.slots = [MaxPly][2]board.Move{}
}
