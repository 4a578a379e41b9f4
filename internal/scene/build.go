package scene

// Arrowhead returns a forward-pointing triangular marker of the given size.
func Arrowhead(id, fill string, size int) Marker {
	half := size * 3 / 8
	return Marker{
		ID:     id,
		W:      size,
		H:      size,
		RefX:   size - 1,
		RefY:   half,
		Points: []Point{{0, 0}, {size, half}, {0, 2 * half}},
		Fill:   fill,
	}
}

// ReverseArrowhead is Arrowhead pointing back along the line, for use as a
// start marker on bidirectional connectors.
func ReverseArrowhead(id, fill string, size int) Marker {
	half := size * 3 / 8
	return Marker{
		ID:     id,
		W:      size,
		H:      size,
		RefX:   1,
		RefY:   half,
		Points: []Point{{size, 0}, {0, half}, {size, 2 * half}},
		Fill:   fill,
	}
}

// Box is a rounded rectangle with centered text lines. The first line is bold.
// Line i is placed at y + top + i*step.
type Box struct {
	At     Point
	W, H   int
	Radius int
	Style  Style
	Lines  []BoxLine
	Top    int // baseline offset of the first line; 0 picks H/3
	Step   int // distance between baselines; 0 picks 18
}

// BoxLine is one text line inside a Box.
type BoxLine struct {
	Text   string
	Size   TextSize
	Fill   string
	Bold   bool
	Italic bool
}

// Nodes expands the box into a rect followed by its text runs.
func (b Box) Nodes() []Node {
	out := []Node{Rect{At: b.At, W: b.W, H: b.H, Radius: b.Radius, Style: b.Style}}
	top, step := b.Top, b.Step
	if top == 0 {
		top = b.H / 3
	}
	if step == 0 {
		step = 18
	}
	cx := b.At.X + b.W/2
	for i, l := range b.Lines {
		out = append(out, Text{
			At:      Pt(cx, b.At.Y+top+i*step),
			Content: l.Text,
			Style: TextStyle{
				Size:   l.Size,
				Bold:   l.Bold,
				Italic: l.Italic,
				Anchor: AnchorMiddle,
				Fill:   l.Fill,
			},
		})
	}
	return out
}

// Label is a middle-anchored text run.
func Label(x, y int, content string, size TextSize, fill string) Text {
	return Text{At: Pt(x, y), Content: content, Style: TextStyle{Size: size, Anchor: AnchorMiddle, Fill: fill}}
}

// Caption is a start-anchored text run.
func Caption(x, y int, content string, size TextSize, fill string) Text {
	return Text{At: Pt(x, y), Content: content, Style: TextStyle{Size: size, Fill: fill}}
}

// Bold returns t with a bold weight.
func (t Text) Bold() Text {
	t.Style.Bold = true
	return t
}

// Italic returns t in italics.
func (t Text) Italic() Text {
	t.Style.Italic = true
	return t
}

// Arrow is a solid connector from a to b ending in marker.
func Arrow(a, b Point, stroke string, width float64, marker string) Line {
	return Line{From: a, To: b, Style: Style{Stroke: stroke, StrokeWidth: width}, MarkerEnd: marker}
}

// Diamond returns a decision diamond centred on c.
func Diamond(c Point, rx, ry int, style Style) Polygon {
	return Polygon{
		Points: []Point{{c.X, c.Y - ry}, {c.X + rx, c.Y}, {c.X, c.Y + ry}, {c.X - rx, c.Y}},
		Style:  style,
	}
}
