// Package distort implements the pixel-transform layers used to degrade
// document scans: rule-driven printers (lines, elliptical blobs, sinusoidal
// bands), a box blur, and the ordered [Stack] that applies them.
//
// # Rules
//
// A [Rule] is a pure predicate over a tiled coordinate plus one uniform draw
// from a [Source]. Rules never look at pixel values; they only decide whether
// the printer's fixed delta applies at a coordinate:
//
//   - [Lines]: coordinate in [Start, End] and draw in [0,100) below density
//   - [Blob]: strictly inside the ellipse and draw in [0,100] at most density
//   - [Sin]: under |sin((x-shift)/period)|·amplitude above Start, draw in [0,100) below density
//
// The geometric test runs first; the draw is only taken when it passes.
//
// # Printers
//
// A [Printer] owns one rule, tiles coordinates by (RadiusX, RadiusY), honours
// the (XLim, YLim) bounds and saturate-adds its delta to every selected pixel.
// Tiling printers may memoize decisions per tiled coordinate, which makes a
// random pattern repeat exactly across tiles and across images.
//
// # Stacks
//
// A [Stack] applies its modifiers in insertion order, each seeing the output
// of the previous one. Stacks own their modifiers and must not be copied.
package distort
