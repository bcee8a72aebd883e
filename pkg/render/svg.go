package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/shapestack/pkg/geom"
	"github.com/matzehuels/shapestack/pkg/layout"
	"github.com/matzehuels/shapestack/pkg/shape"
)

const (
	defaultScale = 20.0
	margin       = 16.0
	headerHeight = 22.0
	layerGap     = 12.0
)

var kindColors = map[shape.Kind]string{
	shape.KindCircle:    "#7fb3d5",
	shape.KindRectangle: "#f7c873",
	shape.KindTriangle:  "#82c99a",
	shape.KindPolygon:   "#d98ec4",
}

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale  float64
	frames bool
	labels bool
}

// WithScale sets the number of pixels per layout unit.
func WithScale(px float64) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.scale = px
		}
	}
}

// WithFrames toggles the dashed frame rectangle drawn around every cell.
func WithFrames(on bool) SVGOption { return func(r *svgRenderer) { r.frames = on } }

// WithLabels toggles the id label drawn at every frame center.
func WithLabels(on bool) SVGOption { return func(r *svgRenderer) { r.labels = on } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{scale: defaultScale, frames: true, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws l as one horizontal band per layer, top to bottom. Every
// band shares the layout bounds, so a shape appears at the same x position
// in whichever layer it was placed.
func RenderSVG(l *layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	b := l.Bounds
	bandH := headerHeight + b.Height*r.scale
	width := b.Width*r.scale + 2*margin
	height := 2*margin + float64(l.Rows)*bandH + float64(max(0, l.Rows-1))*layerGap

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	buf.WriteString("  <style>.layer-title { font: 13px sans-serif; fill: #555; } .label { font: 11px monospace; fill: #222; }</style>\n")

	for row := range l.Rows {
		top := margin + float64(row)*(bandH+layerGap)
		fmt.Fprintf(&buf, `  <g class="layer" id="layer-%d">`+"\n", row)
		fmt.Fprintf(&buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#fafafa" stroke="#ddd"/>`+"\n",
			margin, top, width-2*margin, bandH)
		fmt.Fprintf(&buf, `    <text class="layer-title" x="%.2f" y="%.2f">Layer %d</text>`+"\n",
			margin+4, top+15, row)

		project := func(p geom.Point) (float64, float64) {
			return margin + (p.X-b.MinX())*r.scale, top + headerHeight + (b.MaxY()-p.Y)*r.scale
		}
		for _, c := range l.Layer(row) {
			r.renderCell(&buf, c, project)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderCell(buf *bytes.Buffer, c layout.Cell, project func(geom.Point) (float64, float64)) {
	fmt.Fprintf(buf, `    <g class="cell" id="cell-%s">`+"\n", escapeXML(c.ID))
	for _, p := range c.Parts {
		fill := kindColors[p.Kind]
		switch {
		case p.Radius > 0:
			x, y := project(p.Center)
			fmt.Fprintf(buf, `      <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="#333"/>`+"\n",
				x, y, p.Radius*r.scale, fill)
		case len(p.Outline) > 0:
			pts := make([]string, len(p.Outline))
			for i, v := range p.Outline {
				x, y := project(v)
				pts[i] = fmt.Sprintf("%.2f,%.2f", x, y)
			}
			fmt.Fprintf(buf, `      <polygon points="%s" fill="%s" stroke="#333"/>`+"\n",
				strings.Join(pts, " "), fill)
		}
	}
	if r.frames {
		x, y := project(geom.Point{X: c.Frame.MinX(), Y: c.Frame.MaxY()})
		fmt.Fprintf(buf, `      <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#999" stroke-dasharray="4 3"/>`+"\n",
			x, y, c.Frame.Width*r.scale, c.Frame.Height*r.scale)
	}
	if r.labels {
		x, y := project(c.Frame.Center)
		fmt.Fprintf(buf, `      <text class="label" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			x, y, escapeXML(c.ID))
	}
	buf.WriteString("    </g>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
