package engine

import "testing"

func TestScoreToUCI(t *testing.T) {
	var tests = []struct {
		value int
		mate  int
		cp    int
	}{
		{value: 0, cp: 0},
		{value: 123, cp: 123},
		{value: -123, cp: -123},
		{value: MateValue - 1, mate: 1},
		{value: MateValue - 3, mate: 2},
		{value: -MateValue + 2, mate: -1},
	}
	for _, test := range tests {
		var got = scoreToUCI(test.value)
		if got.Mate != test.mate || (test.mate == 0 && got.Centipawns != test.cp) {
			t.Errorf("scoreToUCI(%d) = %+v, want mate=%d cp=%d", test.value, got, test.mate, test.cp)
		}
	}
}

func TestValueToFromTTRoundTrip(t *testing.T) {
	var values = []int{0, 50, -50, winIn(3), lossIn(5), valueWin, valueLoss}
	for _, v := range values {
		for ply := 0; ply < 5; ply++ {
			var stored = valueToTT(v, ply)
			var restored = valueFromTT(stored, ply)
			if restored != v {
				t.Errorf("valueFromTT(valueToTT(%d, %d), %d) = %d, want %d", v, ply, ply, restored, v)
			}
		}
	}
}

func TestMateDistancePruningBounds(t *testing.T) {
	if winIn(0) != MateValue {
		t.Errorf("winIn(0) = %d, want %d", winIn(0), MateValue)
	}
	if lossIn(0) != -MateValue {
		t.Errorf("lossIn(0) = %d, want %d", lossIn(0), -MateValue)
	}
	if winIn(1) >= winIn(0) {
		t.Error("a mate one ply further away must score lower than an immediate mate")
	}
}
