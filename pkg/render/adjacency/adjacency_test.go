package adjacency

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/blockfill/pkg/grid"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

// threeBlocks is a 4x2 grid: a 2x2 block on the left, two 2x1 blocks
// stacked on the right.
func threeBlocks() *tiling.Tiling {
	return &tiling.Tiling{
		Config: tiling.Config{Width: 4, Height: 2, MinBlock: 1, MaxBlock: 2, Strategy: tiling.StrategyGrowth},
		Reason: tiling.ReasonExhausted,
		Steps:  3,
		Rects: []grid.Rect{
			{ID: 0, X: 0, Y: 0, W: 2, H: 2},
			{ID: 1, X: 2, Y: 0, W: 2, H: 1},
			{ID: 2, X: 2, Y: 1, W: 2, H: 1},
		},
	}
}

func TestBuild(t *testing.T) {
	g, err := Build(threeBlocks())
	if err != nil {
		t.Fatal(err)
	}

	want := []Edge{
		{From: 0, To: 1, Shared: 1},
		{From: 0, To: 2, Shared: 1},
		{From: 1, To: 2, Shared: 2},
	}
	if diff := cmp.Diff(want, g.Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 2, 2}, g.Degrees()); diff != "" {
		t.Errorf("degrees mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1}, g.Neighbors(2)); diff != "" {
		t.Errorf("neighbors mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildCornerContact(t *testing.T) {
	tl := &tiling.Tiling{
		Config: tiling.Config{Width: 2, Height: 2, MinBlock: 1, MaxBlock: 1},
		Rects: []grid.Rect{
			{ID: 0, X: 0, Y: 0, W: 1, H: 1},
			{ID: 1, X: 1, Y: 1, W: 1, H: 1},
		},
	}
	g, err := Build(tl)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Edges) != 0 {
		t.Errorf("corner contact produced edges: %v", g.Edges)
	}
}

func TestBuildRejectsOverlap(t *testing.T) {
	tl := threeBlocks()
	tl.Rects[2].Y = 0
	if _, err := Build(tl); err == nil {
		t.Error("expected error for overlapping rects")
	}
}

func TestBuildGenerated(t *testing.T) {
	s, err := tiling.NewSession(tiling.Config{Width: 20, Height: 10, MinBlock: 2, MaxBlock: 5, MaxSteps: 1000, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	tl := s.Drain()
	g, err := Build(tl)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range g.Edges {
		if !g.Nodes[e.From].Touches(g.Nodes[e.To]) {
			t.Errorf("edge %d-%d joins blocks that do not touch", e.From, e.To)
		}
	}
	for id, d := range g.Degrees() {
		if len(g.Nodes) > 1 && d == 0 {
			t.Errorf("block %d has no neighbours in a full tiling", id)
		}
	}
}

func TestToDOT(t *testing.T) {
	g, err := Build(threeBlocks())
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(g, Options{})
	for _, want := range []string{"graph G {", "layout=neato", `0 [pos="36.0,36.0!"]`, "0 -- 1;", "1 -- 2;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "fillcolor=\"#") {
		t.Error("colours emitted without Options.Colors")
	}

	dot = ToDOT(g, Options{Colors: true, Weighted: true})
	if !strings.Contains(dot, "1 -- 2 [penwidth=2];") {
		t.Errorf("weighted edge missing:\n%s", dot)
	}
	if !strings.Contains(dot, "fillcolor=\"#") {
		t.Error("Options.Colors did not colour nodes")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox =\n%s\nwant\n%s", out, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}
