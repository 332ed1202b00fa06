// Package render draws noise configurations as pipeline diagrams.
//
// [ToDOT] lays out every named stack of a parsed configuration as its own
// Graphviz cluster, with the layers chained from an input node to an output
// node in application order. Blur layers are drawn dashed to set them apart
// from the pixel printers.
//
//	tbl, _ := config.ParseFile("noise.cfg", config.Options{})
//	svg, err := render.RenderSVG(ctx, render.ToDOT(tbl, render.Options{}))
//
// [RenderSVG] renders DOT in process using
// [github.com/goccy/go-graphviz]; no Graphviz installation is required.
package render
