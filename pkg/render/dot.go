// Package render turns positioned process graphs into inspection artifacts.
//
// The interactive rendering surface lives outside this repository; what this
// package provides is the debug/export path: Graphviz DOT text and static
// SVG for looking at a layout without the frontend. Node labels have already
// been sanitized by pkg/graph, but they are still quoted defensively here so
// a label can never escape its DOT string literal.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/procmap/procmap/pkg/layout"
)

// Options configures DOT generation.
type Options struct {
	// ShowRanks includes the computed rank in each node label.
	ShowRanks bool
}

// ToDOT converts a positioned graph to Graphviz DOT format.
// The computed coordinates are attached as pos attributes so external
// tooling can reproduce the engine's layout; Graphviz's own layout is only
// used as a fallback when rendering without -Kneato.
func ToDOT(p layout.Positioned, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph process {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range p.Nodes {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		if opts.ShowRanks {
			label = fmt.Sprintf("%s\nrank: %d", label, n.Rank)
		}
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%.1f,%.1f\"];\n", n.ID, label, n.X, n.Y)
	}

	buf.WriteString("\n")
	for _, e := range p.Edges {
		if e.Kind != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.Source, e.Target, e.Kind)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the viewBox starts at
// the origin, which keeps embedding predictable across Graphviz versions.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
