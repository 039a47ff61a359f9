// Package tiling partitions a grid into non-overlapping rectangles.
//
// A [Session] owns a [grid.Grid], a deterministic [rng.Source] and one
// [Planner]. Each call to [Session.Next] asks the planner for a starting
// point, plans a rectangle there, commits it to the grid and reports it to
// listeners. Sessions are pulled, never pushed: the caller decides when the
// next rectangle is produced, so a renderer can draw between steps or a
// websocket handler can pace them.
//
// # Strategies
//
// [StrategyGrowth] picks unassigned cells in a shuffled order and grows the
// largest free box around each one, then places a randomly sized block in
// the middle of that box. When a session using it reaches
// [ReasonExhausted], every cell of the grid is assigned.
//
// [StrategyTopLeft] keeps a frontier of rectangle corners and always grows
// from the left-most, then top-most, corner. It is simpler but produces a
// visible left-to-right gradient with large block sizes, and can leave
// cells unreachable by any corner.
//
// # Usage
//
//	s, err := tiling.NewSession(tiling.Config{
//	    Width: 100, Height: 50,
//	    MinBlock: 3, MaxBlock: 20,
//	    MaxSteps: 100000, Seed: 3,
//	})
//	if err != nil {
//	    return err
//	}
//	for r := range s.All() {
//	    draw(r)
//	}
//	fmt.Println(s.Reason())
//
// Minimum block size is best effort: when the free space around a point is
// smaller than MinBlock, the block is clamped to the space available.
package tiling
