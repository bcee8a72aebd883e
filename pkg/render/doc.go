// Package render draws matrix layouts.
//
// Every renderer works on a [layout.Layout] snapshot rather than on live
// shapes:
//
//   - [RenderSVG] draws each layer as a band with the shapes at their own
//     coordinates, optionally with dashed frame rectangles and id labels
//   - [ToDOT] describes the layers as Graphviz ranks; [RenderDOTSVG] lays
//     that out with the embedded Graphviz
//   - [RenderText] prints the "Layer <i> : ..." listing
//
// [ToPDF] and [ToPNG] convert any SVG produced here using the external
// rsvg-convert tool.
//
//	l, _ := layout.Build(m, sc.ID)
//	svg := render.RenderSVG(l, render.WithScale(30))
//	png, err := render.ToPNG(svg, 2.0)
package render
