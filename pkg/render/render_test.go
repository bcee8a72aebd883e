package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/shapestack/pkg/geom"
	"github.com/matzehuels/shapestack/pkg/layout"
	"github.com/matzehuels/shapestack/pkg/shape"
)

// sample is a 2x2 layout: a rectangle and a triangle in layer 0, a circle in
// layer 1.
func sample() *layout.Layout {
	return &layout.Layout{
		ID:      "sample",
		Rows:    2,
		Columns: 2,
		Cells: []layout.Cell{
			{
				Row: 0, Column: 0, ID: "base", Kind: shape.KindRectangle, Label: "Rectangle", Area: 8,
				Frame: geom.Rect{Width: 4, Height: 2},
				Parts: []layout.Part{{Kind: shape.KindRectangle, Outline: []geom.Point{
					{X: -2, Y: -1}, {X: 2, Y: -1}, {X: 2, Y: 1}, {X: -2, Y: 1},
				}}},
			},
			{
				Row: 0, Column: 1, ID: "tri", Kind: shape.KindTriangle, Label: "Triangle", Area: 1,
				Frame: geom.Rect{Width: 1, Height: 2, Center: geom.Point{X: 3.5, Y: 1}},
				Parts: []layout.Part{{Kind: shape.KindTriangle, Outline: []geom.Point{
					{X: 3}, {X: 4, Y: 1}, {X: 3, Y: 2},
				}}},
			},
			{
				Row: 1, Column: 0, ID: "dot<1>", Kind: shape.KindCircle, Label: "Circle", Area: 3.14,
				Frame: geom.Rect{Width: 2, Height: 2, Center: geom.Point{X: 0.5}},
				Parts: []layout.Part{{Kind: shape.KindCircle, Center: geom.Point{X: 0.5}, Radius: 1}},
			},
		},
		Bounds: geom.Rect{Width: 6, Height: 3, Center: geom.Point{X: 1, Y: 0.5}},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(sample()))

	checks := []struct {
		name, substr string
		count        int
	}{
		{"layers", `class="layer"`, 2},
		{"cells", `class="cell"`, 3},
		{"polygons", "<polygon", 2},
		{"circles", "<circle", 1},
		{"frames", "stroke-dasharray", 3},
		{"labels", `class="label"`, 3},
	}
	for _, c := range checks {
		if got := strings.Count(svg, c.substr); got != c.count {
			t.Errorf("%s: count(%q) = %d, want %d", c.name, c.substr, got, c.count)
		}
	}
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("RenderSVG() is not a complete svg document")
	}
	if !strings.Contains(svg, "dot&lt;1&gt;") {
		t.Errorf("RenderSVG() did not escape the cell id")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(sample(), WithFrames(false), WithLabels(false), WithScale(10)))
	if strings.Contains(svg, "stroke-dasharray") {
		t.Errorf("WithFrames(false) still draws frames")
	}
	if strings.Contains(svg, `class="label"`) {
		t.Errorf("WithLabels(false) still draws labels")
	}
	// 6 units * 10 px + 2 margins
	if !strings.Contains(svg, `width="92"`) {
		t.Errorf("WithScale(10) width missing in %q", svg[:120])
	}
}

func TestRenderSVGProjectsYUp(t *testing.T) {
	svg := string(RenderSVG(sample(), WithScale(10), WithFrames(false), WithLabels(false)))
	// bounds y in [-1, 2]; the circle center (0.5, 0) sits 2 units below the top
	// of layer 1, which starts at 16 + (22+30) + 12 = 80.
	want := `cx="41.00" cy="122.00" r="10.00"`
	if !strings.Contains(svg, want) {
		t.Errorf("RenderSVG() missing %q", want)
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample())

	if !strings.HasPrefix(dot, "digraph layout {") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if got := strings.Count(dot, "rank=same"); got != 2 {
		t.Errorf("ToDOT() has %d rank=same subgraphs, want 2", got)
	}
	for _, want := range []string{
		`"__layer_0" -> "base" -> "tri" [style=invis]`,
		`"__layer_1" -> "dot<1>" [style=invis]`,
		`"__layer_0" -> "__layer_1" [style=invis]`,
		`label="Layer 1"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q", want)
		}
	}
}

func TestToDOTEmptyLayer(t *testing.T) {
	l := &layout.Layout{Rows: 1, Columns: 1}
	dot := ToDOT(l)
	if strings.Contains(dot, "->") {
		t.Errorf("ToDOT() of an empty layout has edges:\n%s", dot)
	}
}

func TestFmtLabel(t *testing.T) {
	c := layout.Cell{ID: "base", Label: "Rectangle", Area: 8}
	if got, want := fmtLabel(c), "base\nRectangle\narea 8.00"; got != want {
		t.Errorf("fmtLabel() = %q, want %q", got, want)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %q, want %q", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Errorf("normalizeViewBox() changed an svg without a view box")
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderText(&buf, sample()); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	want := "Layer 0 : Rectangle Triangle \nLayer 1 : Circle \n"
	if got := buf.String(); got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}
}

func TestRenderTextStopsAtGap(t *testing.T) {
	l := &layout.Layout{Rows: 1, Columns: 3, Cells: []layout.Cell{
		{Row: 0, Column: 0, Label: "Circle"},
		{Row: 0, Column: 2, Label: "Polygon"},
	}}
	var buf bytes.Buffer
	_ = RenderText(&buf, l)
	if got, want := buf.String(), "Layer 0 : Circle \n"; got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}
}
