// Package dot renders a metro network as a Graphviz diagram for visual
// inspection of the parsed model. This is a debugging aid; the real map is
// drawn by the downstream renderer from solved coordinates.
package dot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/alexandergillon/metromap/pkg/network"
)

// Options configures network diagram rendering.
type Options struct {
	// Colors maps metro line names to edge colors. Lines without an entry
	// render black.
	Colors map[string]string

	// Detailed includes stable identifiers and authored coordinates in
	// node labels. When false, only the display name is shown.
	Detailed bool
}

// ToDOT converts a network to Graphviz DOT format, one cluster per metro
// line. Output order follows line declaration order and station insertion
// order, so it is deterministic.
func ToDOT(net *network.Network, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph metromap {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10];\n")
	buf.WriteString("\n")

	for i, line := range net.Lines() {
		color := opts.Colors[line.Name()]
		if color == "" {
			color = "black"
		}

		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", line.Name())
		buf.WriteString("    style=invis;\n")
		for _, s := range line.Stations() {
			fmt.Fprintf(&buf, "    %q [label=%q];\n", s.ID, fmtLabel(s, opts.Detailed))
		}
		for _, e := range line.Edges() {
			fmt.Fprintf(&buf, "    %q -- %q [color=%q, penwidth=2];\n", e.From.ID, e.To.ID, color)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(s *network.Station, detailed bool) string {
	if !detailed {
		return s.Name
	}
	return fmt.Sprintf("%s\n%s\n(%d, %d)", s.Name, s.ID, s.OriginalX, s.OriginalY)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
