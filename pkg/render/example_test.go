package render_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/shapestack/pkg/composite"
	"github.com/matzehuels/shapestack/pkg/geom"
	"github.com/matzehuels/shapestack/pkg/layout"
	"github.com/matzehuels/shapestack/pkg/matrix"
	"github.com/matzehuels/shapestack/pkg/render"
	"github.com/matzehuels/shapestack/pkg/shape"
)

func packed() *layout.Layout {
	r, _ := shape.NewRectangle(geom.Point{}, 4, 2)
	c, _ := shape.NewCircle(geom.Point{X: 0.5}, 1)
	group, _ := composite.Of(r, c)
	m, _ := matrix.FromComposite(group)
	l, _ := layout.Build(m, nil)
	return l
}

func ExampleRenderText() {
	var b strings.Builder
	_ = render.RenderText(&b, packed())
	for _, line := range strings.Split(strings.TrimSpace(b.String()), "\n") {
		fmt.Println(strings.TrimSpace(line))
	}
	// Output:
	// Layer 0 : Rectangle
	// Layer 1 : Circle
}

func ExampleRenderSVG() {
	svg := string(render.RenderSVG(packed(), render.WithLabels(false)))
	fmt.Println(strings.Count(svg, `class="layer"`), strings.Count(svg, "<circle"))
	// Output:
	// 2 1
}
