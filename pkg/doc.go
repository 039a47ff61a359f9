// Package pkg provides the core libraries for blockfill procedural tiling.
//
// # Overview
//
// Blockfill fills a width×height grid with non-overlapping axis-aligned
// rectangles, one per step, using a seeded random stream so that every run
// is reproducible. The pkg directory is organized as:
//
//  1. [rng], [grid], [tiling] - the generator: random stream, occupancy
//     grid, planners and the step-wise session
//  2. [render] - palette, SVG styles, output sinks and adjacency diagrams
//  3. [stats] - block size statistics and histograms
//  4. [cache], [store] - tiling/artifact cache and the run store
//  5. [pipeline] - orchestration (generate → render) with caching
//  6. [errors], [observability], [buildinfo] - shared infrastructure
//
// # Architecture
//
//	tiling.Config
//	     ↓
//	tiling.Session (Next / All / Drain, listeners)
//	     ↓
//	tiling.Tiling (config, steps, reason, rectangles)
//	     ↓
//	render/sink, render/adjacency, stats
//	     ↓
//	SVG/PNG/GIF/JSON/DOT output
//
// # Quick Start
//
//	sess, err := tiling.NewSession(tiling.Config{
//	    Width: 100, Height: 50, MinBlock: 3, MaxBlock: 20,
//	    MaxSteps: 100000, Seed: 3,
//	})
//	if err != nil {
//	    return err
//	}
//	t := sess.Drain()
//	svg := sink.RenderSVG(t, sink.WithCellSize(10))
//
// The CLI and HTTP server go through [pipeline.Runner], which adds caching
// and observability hooks around the same two steps.
//
// [rng]: github.com/matzehuels/blockfill/pkg/rng
// [grid]: github.com/matzehuels/blockfill/pkg/grid
// [tiling]: github.com/matzehuels/blockfill/pkg/tiling
// [render]: github.com/matzehuels/blockfill/pkg/render
// [stats]: github.com/matzehuels/blockfill/pkg/stats
// [cache]: github.com/matzehuels/blockfill/pkg/cache
// [store]: github.com/matzehuels/blockfill/pkg/store
// [pipeline]: github.com/matzehuels/blockfill/pkg/pipeline
// [pipeline.Runner]: github.com/matzehuels/blockfill/pkg/pipeline.Runner
// [errors]: github.com/matzehuels/blockfill/pkg/errors
// [observability]: github.com/matzehuels/blockfill/pkg/observability
// [buildinfo]: github.com/matzehuels/blockfill/pkg/buildinfo
package pkg
