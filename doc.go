// Package textrun segments styled text into font runs and shapes them.
//
// # Overview
//
// A Builder accumulates text pushed with a requested style. Build splits
// it into FontRuns: spans of one bidi level, one script, one style and one
// font, chosen per codepoint from a fallback list by the font matcher.
// Runs are returned in visual order within each bidi run. Layout.Shape then
// turns every run into glyphs, optionally with outlines, synthesizing bold
// or oblique variants when the chosen font lacks the requested style.
//
// # Quick Start
//
//	regular, _ := font.FromBytes(goregular.TTF, 0)
//	defer regular.Close()
//
//	b := textrun.NewBuilder([]*font.Font{regular})
//	b.Push("Hello, ", font.DefaultStyle())
//	b.Push("world", font.Bold())
//	layout := b.Build()
//
//	for _, run := range layout.Shape(textrun.ShapeParams{EmboldenStrength: 0.02}) {
//		fmt.Println(run.FontRunIndex, len(run.Glyphs))
//	}
//
// # Architecture
//
// The module is organized into:
//   - textrun: Builder, Layout, segmentation and the shaping dispatcher
//   - font: font handles, styles, loading and the matcher
//   - bidi: bidi levels and script runs
//   - shape: HarfBuzz shaping and outline extraction
//   - path: the verb/point outline model
//
// All positions and outlines are in font design units.
package textrun
