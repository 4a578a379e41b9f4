package scene

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

// EncodeSVG writes s as a standalone SVG document. The scene is validated
// first so a document never references a marker it does not define.
func EncodeSVG(w io.Writer, s *Scene) error {
	if err := s.Validate(); err != nil {
		return err
	}
	canvas := svg.New(w)
	canvas.Startview(s.Width, s.Height, 0, 0, s.Width, s.Height)
	if s.Title != "" {
		canvas.Title(s.Title)
	}
	if len(s.Markers) > 0 {
		canvas.Def()
		for _, m := range s.Markers {
			canvas.Marker(m.ID, m.RefX, m.RefY, m.W, m.H, `orient="auto"`)
			xs, ys := split(m.Points)
			canvas.Polygon(xs, ys, attr("fill", m.Fill))
			canvas.MarkerEnd()
		}
		canvas.DefEnd()
	}
	encodeNodes(canvas, s.Nodes)
	canvas.End()
	return nil
}

// SVG returns the encoded document for s.
func SVG(s *Scene) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeSVG(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeNodes(canvas *svg.SVG, nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case Group:
			var attrs []string
			if n.ID != "" {
				attrs = append(attrs, attr("id", n.ID))
			}
			if n.Offset != (Point{}) {
				attrs = append(attrs, attr("transform", fmt.Sprintf("translate(%d, %d)", n.Offset.X, n.Offset.Y)))
			}
			if n.Opacity > 0 {
				attrs = append(attrs, attr("opacity", formatFloat(n.Opacity)))
			}
			canvas.Group(attrs...)
			encodeNodes(canvas, n.Children)
			canvas.Gend()
		case Rect:
			if n.Radius > 0 {
				canvas.Roundrect(n.At.X, n.At.Y, n.W, n.H, n.Radius, n.Radius, shapeAttrs(n.Style)...)
			} else {
				canvas.Rect(n.At.X, n.At.Y, n.W, n.H, shapeAttrs(n.Style)...)
			}
		case Text:
			canvas.Text(n.At.X, n.At.Y, n.Content, textAttrs(n.Style)...)
		case Line:
			attrs := strokeAttrs(n.Style)
			if n.MarkerStart != "" {
				attrs = append(attrs, attr("marker-start", markerURL(n.MarkerStart)))
			}
			if n.MarkerEnd != "" {
				attrs = append(attrs, attr("marker-end", markerURL(n.MarkerEnd)))
			}
			canvas.Line(n.From.X, n.From.Y, n.To.X, n.To.Y, attrs...)
		case Polyline:
			xs, ys := split(n.Points)
			attrs := append(strokeAttrs(n.Style), attr("fill", "none"))
			if n.MarkerEnd != "" {
				attrs = append(attrs, attr("marker-end", markerURL(n.MarkerEnd)))
			}
			canvas.Polyline(xs, ys, attrs...)
		case Polygon:
			xs, ys := split(n.Points)
			canvas.Polygon(xs, ys, shapeAttrs(n.Style)...)
		case Circle:
			canvas.Circle(n.Center.X, n.Center.Y, n.R, shapeAttrs(n.Style)...)
		}
	}
}

func shapeAttrs(s Style) []string {
	fill := s.Fill
	if fill == "" {
		fill = "none"
	}
	out := []string{attr("fill", fill)}
	if s.FillOpacity > 0 {
		out = append(out, attr("fill-opacity", formatFloat(s.FillOpacity)))
	}
	return append(out, strokeAttrs(s)...)
}

func strokeAttrs(s Style) []string {
	if s.Stroke == "" {
		return nil
	}
	out := []string{attr("stroke", s.Stroke)}
	if s.StrokeWidth > 0 {
		out = append(out, attr("stroke-width", formatFloat(s.StrokeWidth)))
	}
	if s.Dash != "" {
		out = append(out, attr("stroke-dasharray", s.Dash))
	}
	return out
}

func textAttrs(t TextStyle) []string {
	out := []string{
		attr("font-size", strconv.Itoa(t.Size.Pixels())),
		attr("font-family", "sans-serif"),
	}
	if t.Anchor != AnchorStart {
		out = append(out, attr("text-anchor", t.Anchor.String()))
	}
	if t.Bold {
		out = append(out, attr("font-weight", "bold"))
	}
	if t.Italic {
		out = append(out, attr("font-style", "italic"))
	}
	if t.Fill != "" {
		out = append(out, attr("fill", t.Fill))
	}
	return out
}

func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

func markerURL(id string) string { return "url(#" + id + ")" }

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func split(points []Point) (xs, ys []int) {
	xs = make([]int, len(points))
	ys = make([]int, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}
