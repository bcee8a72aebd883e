package matrix_test

import (
	"fmt"

	"github.com/matzehuels/shapestack/pkg/composite"
	"github.com/matzehuels/shapestack/pkg/geom"
	"github.com/matzehuels/shapestack/pkg/matrix"
	"github.com/matzehuels/shapestack/pkg/shape"
)

func ExampleFromComposite() {
	r, _ := shape.NewRectangle(geom.Point{}, 4, 2)
	tri, _ := shape.NewTriangle(geom.Point{X: 3}, geom.Point{X: 4, Y: 1}, geom.Point{X: 3, Y: 2})
	c, _ := shape.NewCircle(geom.Point{X: 0.5}, 1)
	group, _ := composite.Of(r, tri, c)

	m, err := matrix.FromComposite(group)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%d layers x %d columns\n", m.Rows(), m.Columns())
	for i, layer := range m.Layers() {
		fmt.Printf("layer %d:", i)
		for j := range layer.Len() {
			if s, _ := layer.At(j); s != nil {
				fmt.Printf(" %s", s)
			}
		}
		fmt.Println()
	}
	// Output:
	// 2 layers x 2 columns
	// layer 0: Rectangle Triangle
	// layer 1: Circle
}
