// Package pkg provides the core libraries for chordview.
//
// # Overview
//
// chordview turns six-string guitar chord fingerings into fretboard
// diagrams. The pkg directory is organized into four main areas:
//
//  1. [chord] - Domain types (fingerings, notation parsing, chord libraries)
//  2. [render] - Layout and output (primitives, fretboard engine, sinks)
//  3. [pipeline] - Orchestration (resolve → layout → render, with caching)
//  4. [cache], [errors], [observability], [fonts] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through chordview:
//
//	Chord name or fret notation
//	         ↓
//	    [chord] / [chord/library] (resolve and validate the fingering)
//	         ↓
//	    [render/fretboard/layout] (geometry, barre, drawing primitives)
//	         ↓
//	    [render/fretboard/sink] (SVG, PNG, PDF, JSON)
//
// # Quick Start
//
// Lay out a chord and write it as SVG:
//
//	import (
//	    "github.com/matzehuels/chordview/pkg/chord"
//	    "github.com/matzehuels/chordview/pkg/render/fretboard/layout"
//	    "github.com/matzehuels/chordview/pkg/render/fretboard/sink"
//	)
//
//	c := chord.MustParse("x32010", "032010")
//	d, _ := layout.New(nil).Compute(c, nil, 400, 500)
//	svg := sink.RenderSVG(d)
//
// Or let the pipeline resolve names and cache artifacts:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, _ := runner.Execute(ctx, pipeline.Options{Name: "Am", Formats: []string{"svg", "png"}})
//
// # Main Packages
//
// ## Domain
//
// [chord] - The Chord type: six frets (-1 muted, 0 open) plus optional
// finger numbers, with compact ("x32010") and separated ("8-10-10-9-8-8")
// notation.
//
// [chord/library] - Named chord collections. An embedded default library,
// TOML and YAML loaders, and mutable stores backed by memory, JSON files or
// MongoDB.
//
// ## Rendering
//
// [render/primitive] - Shape-level drawing instructions (circles, lines,
// rectangles, text, images, paths) independent of any output format.
//
// [render/fretboard/layout] - The layout engine. Computes the visible fret
// window, the grid geometry and the ordered primitives of one diagram.
//
// [render/fretboard/barre] - Barre detection on the lowest pressed fret.
//
// [render/fretboard/styles] - Visual parameters, TOML themes and the
// open/muted string indicator images.
//
// [render/fretboard/sink] - Output formats. SVG and JSON are written
// directly, PNG is rasterized with gg, PDF goes through rsvg-convert.
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline (resolve → layout → render) used by both
// the CLI and the HTTP server. Ensures consistent behavior across entry
// points.
//
// [cache] - Artifact cache with file, Redis and no-op implementations and
// the key derivation shared by all callers.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hook registry for layout, render, cache and HTTP events.
//
// [fonts] - Text measurement for layout and font faces for PNG output.
//
// [buildinfo] - Version information injected at build time.
//
// [chord]: github.com/matzehuels/chordview/pkg/chord
// [chord/library]: github.com/matzehuels/chordview/pkg/chord/library
// [render]: github.com/matzehuels/chordview/pkg/render
// [render/primitive]: github.com/matzehuels/chordview/pkg/render/primitive
// [render/fretboard/layout]: github.com/matzehuels/chordview/pkg/render/fretboard/layout
// [render/fretboard/barre]: github.com/matzehuels/chordview/pkg/render/fretboard/barre
// [render/fretboard/styles]: github.com/matzehuels/chordview/pkg/render/fretboard/styles
// [render/fretboard/sink]: github.com/matzehuels/chordview/pkg/render/fretboard/sink
// [pipeline]: github.com/matzehuels/chordview/pkg/pipeline
// [cache]: github.com/matzehuels/chordview/pkg/cache
// [errors]: github.com/matzehuels/chordview/pkg/errors
// [observability]: github.com/matzehuels/chordview/pkg/observability
// [fonts]: github.com/matzehuels/chordview/pkg/fonts
// [buildinfo]: github.com/matzehuels/chordview/pkg/buildinfo
package pkg
