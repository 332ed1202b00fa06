package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/qrnoize/pkg/config"
	"github.com/matzehuels/qrnoize/pkg/distort"
	"github.com/matzehuels/qrnoize/pkg/errors"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed labels layers with their directive text instead of a summary.
	Detailed bool
}

// ToDOT converts a configuration table to Graphviz DOT format. Each block
// becomes one cluster; repeated names yield separate clusters.
func ToDOT(t *config.Table, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph stacks {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  nodesep=0.3;\n")

	for i, b := range t.Blocks {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph \"cluster_%d\" {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", blockLabel(b))

		ids := []string{nodeID(i, "in")}
		fmt.Fprintf(&buf, "    %q [label=\"input\", shape=oval];\n", ids[0])
		for j, l := range b.Layers {
			id := nodeID(i, strconv.Itoa(j))
			fmt.Fprintf(&buf, "    %q [%s];\n", id, strings.Join(fmtAttrs(l, opts.Detailed), ", "))
			ids = append(ids, id)
		}
		out := nodeID(i, "out")
		fmt.Fprintf(&buf, "    %q [label=\"output\", shape=oval];\n", out)
		ids = append(ids, out)

		for k := 1; k < len(ids); k++ {
			fmt.Fprintf(&buf, "    %q -> %q;\n", ids[k-1], ids[k])
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(block int, part string) string {
	return fmt.Sprintf("s%d_%s", block, part)
}

func blockLabel(b config.Block) string {
	name := b.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("%s (%d)", name, len(b.Layers))
}

func fmtAttrs(l config.LayerSpec, detailed bool) []string {
	label := l.String()
	if detailed && l.Text != "" {
		label = l.Text
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if l.Kind == distort.KindBlur {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the diagram scales from
// its origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
