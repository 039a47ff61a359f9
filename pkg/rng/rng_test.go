package rng

import (
	"math"
	"testing"
)

func TestFloat64Reference(t *testing.T) {
	tests := []struct {
		seed int64
		want []float64
	}{
		{3, []float64{0.7202267837710679, 0.03866216051392257, 0.4561921926215291, 0.07492800964973867}},
		{0, []float64{0.26642920868471265, 0.0003297457005828619, 0.2232720274478197, 0.1462021479383111}},
		{42, []float64{0.6011037519201636, 0.44829055899754167, 0.8524657934904099, 0.6697340414393693}},
	}

	for _, tt := range tests {
		s := New(tt.seed)
		for i, want := range tt.want {
			if got := s.Float64(); got != want {
				t.Errorf("seed %d value %d = %v, want %v", tt.seed, i, got, want)
			}
		}
	}
}

func TestFloat64Range(t *testing.T) {
	s := New(7)
	for i := 0; i < 10000; i++ {
		v := s.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v outside [0, 1)", v)
		}
	}
}

func TestDeterminism(t *testing.T) {
	a, b := New(99), New(99)
	for i := 0; i < 1000; i++ {
		if x, y := a.Uint32(), b.Uint32(); x != y {
			t.Fatalf("step %d: %d != %d", i, x, y)
		}
	}
}

func TestRangeIntReference(t *testing.T) {
	s := New(3)
	want := []int{7, 0, 5, 1, 8, 5, 5, 2, 3, 6}
	for i, w := range want {
		if got := s.RangeInt(0, 10); got != w {
			t.Errorf("RangeInt #%d = %d, want %d", i, got, w)
		}
	}
}

func TestRangeIntBounds(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
	}{
		{"unit", 0, 1},
		{"block sizes", 3, 20},
		{"degenerate", 4, 4},
		{"negative", -5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(11)
			for i := 0; i < 5000; i++ {
				v := s.RangeInt(tt.min, tt.max)
				if v < tt.min || v > tt.max {
					t.Fatalf("RangeInt(%d, %d) = %d", tt.min, tt.max, v)
				}
			}
		})
	}
}

func TestRangeIntEndpointBias(t *testing.T) {
	s := New(5)
	counts := make([]int, 3)
	const n = 60000
	for i := 0; i < n; i++ {
		counts[s.RangeInt(0, 2)]++
	}
	// Endpoints get 1/4 each, the middle 1/2.
	if mid := float64(counts[1]) / n; math.Abs(mid-0.5) > 0.02 {
		t.Errorf("middle share = %.3f, want ~0.5", mid)
	}
	for _, i := range []int{0, 2} {
		if share := float64(counts[i]) / n; math.Abs(share-0.25) > 0.02 {
			t.Errorf("endpoint %d share = %.3f, want ~0.25", i, share)
		}
	}
}

func TestRangeIntConsumesOneValue(t *testing.T) {
	a, b := New(8), New(8)
	a.RangeInt(2, 2)
	b.Float64()
	if a.Uint32() != b.Uint32() {
		t.Error("RangeInt with equal bounds should consume exactly one value")
	}
}

func TestShuffle(t *testing.T) {
	const n = 50
	perm := func(seed int64) []int {
		xs := make([]int, n)
		for i := range xs {
			xs[i] = i
		}
		New(seed).Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
		return xs
	}

	p := perm(1)
	seen := make(map[int]bool, n)
	for _, v := range p {
		if v < 0 || v >= n || seen[v] {
			t.Fatalf("Shuffle produced invalid permutation: %v", p)
		}
		seen[v] = true
	}

	q := perm(1)
	for i := range p {
		if p[i] != q[i] {
			t.Fatal("Shuffle should be deterministic for a seed")
		}
	}

	moved := 0
	for i, v := range p {
		if i != v {
			moved++
		}
	}
	if moved == 0 {
		t.Error("Shuffle left every element in place")
	}
}

func TestShuffleSmall(t *testing.T) {
	calls := 0
	New(1).Shuffle(1, func(i, j int) { calls++ })
	New(1).Shuffle(0, func(i, j int) { calls++ })
	if calls != 0 {
		t.Errorf("Shuffle of <2 elements called swap %d times", calls)
	}
}

func TestDerive(t *testing.T) {
	if Derive(3, "palette") != Derive(3, "palette") {
		t.Error("Derive should be deterministic")
	}
	if Derive(3, "palette") == Derive(3, "frames") {
		t.Error("different streams should derive different seeds")
	}
	if Derive(3, "palette") == Derive(4, "palette") {
		t.Error("different seeds should derive different seeds")
	}
}
