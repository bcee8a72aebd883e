package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/layout"
)

// ToDOT converts a layout to Graphviz DOT. Each layer becomes a rank=same
// subgraph headed by a "Layer <i>" node; invisible edges keep the layers
// stacked and the cells in column order.
func ToDOT(l *layout.Layout) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layout {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  newrank=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for row := range l.Rows {
		head := layerNode(row)
		fmt.Fprintf(&buf, "\n  subgraph %q {\n", fmt.Sprintf("layer_%d", row))
		buf.WriteString("    rank=same;\n")
		fmt.Fprintf(&buf, "    %q [label=%q, shape=plaintext, style=\"\"];\n", head, fmt.Sprintf("Layer %d", row))

		chain := []string{head}
		for _, c := range l.Layer(row) {
			attrs := []string{fmt.Sprintf("label=%q", fmtLabel(c))}
			if color, ok := kindColors[c.Kind]; ok {
				attrs = append(attrs, fmt.Sprintf("fillcolor=%q", color))
			}
			fmt.Fprintf(&buf, "    %q [%s];\n", c.ID, strings.Join(attrs, ", "))
			chain = append(chain, c.ID)
		}
		buf.WriteString("  }\n")
		if len(chain) > 1 {
			fmt.Fprintf(&buf, "  %s [style=invis];\n", quoteChain(chain))
		}
	}

	if l.Rows > 1 {
		heads := make([]string, l.Rows)
		for row := range heads {
			heads[row] = layerNode(row)
		}
		fmt.Fprintf(&buf, "\n  %s [style=invis];\n", quoteChain(heads))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func layerNode(row int) string { return fmt.Sprintf("__layer_%d", row) }

func fmtLabel(c layout.Cell) string {
	return fmt.Sprintf("%s\n%s\narea %.2f", c.ID, c.Label, c.Area)
}

func quoteChain(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = strconv.Quote(id)
	}
	return strings.Join(quoted, " -> ")
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz root element so the drawing scales
// from the origin with pixel width and height matching the view box.
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
