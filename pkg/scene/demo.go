package scene

import "github.com/matzehuels/shapestack/pkg/geom"

// DemoDocument returns the built-in demonstration scene: one shape of each
// concrete kind, each put through scale, move and rotate, then the whole
// group transformed the same way and the rectangle moved off to the side.
func DemoDocument() *Document {
	doc := &Document{
		Name: "demo",
		Shapes: []ShapeSpec{
			{Kind: "rectangle", Center: geom.Point{X: 100, Y: 110}, Width: 2, Height: 5},
			{Kind: "circle", Center: geom.Point{X: 1, Y: 1}, Radius: 1},
			{Kind: "triangle", Points: []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 0}}},
			{Kind: "polygon", Points: []geom.Point{{X: -1, Y: 1}, {X: 2, Y: 5}, {X: 5, Y: 4}, {X: 4, Y: 2}}},
		},
	}
	for _, id := range []string{"rectangle-1", "circle-1", "triangle-1", "polygon-1", ""} {
		doc.Steps = append(doc.Steps, transformSteps(id)...)
	}
	doc.Steps = append(doc.Steps, Step{Op: OpMoveTo, Target: "rectangle-1", To: &geom.Point{X: 100, Y: 100}})
	return doc
}

// transformSteps is the per-shape sequence of the demonstration.
func transformSteps(target string) []Step {
	return []Step{
		{Op: OpScale, Target: target, Factor: 2},
		{Op: OpMoveTo, Target: target, To: &geom.Point{X: 1, Y: 2}},
		{Op: OpMoveBy, Target: target, DX: 1, DY: 2},
		{Op: OpRotate, Target: target, Angle: 90},
	}
}

// Demo builds [DemoDocument]. Its steps have not been applied yet.
func Demo() (*Scene, error) {
	return Build(DemoDocument())
}
