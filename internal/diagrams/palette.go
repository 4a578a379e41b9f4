package diagrams

import "dtmas/internal/scene"

// Tone is the stroke/fill/text triple for one kind of component.
type Tone struct {
	Stroke string
	Fill   string
	Text   string
}

var (
	manager   = Tone{Stroke: "#3b82f6", Fill: "#dbeafe", Text: "#1e40af"}
	vehicle   = Tone{Stroke: "#10b981", Fill: "#dcfce7", Text: "#065f46"}
	twin      = Tone{Stroke: "#f97316", Fill: "#fed7aa", Text: "#9a3412"}
	simulator = Tone{Stroke: "#6366f1", Fill: "#e0e7ff", Text: "#3730a3"}
	routing   = Tone{Stroke: "#eab308", Fill: "#fef3c7", Text: "#713f12"}
	dataflow  = Tone{Stroke: "#ca8a04", Fill: "#fffbeb", Text: "#92400e"}
)

const (
	colorInk    = "#1f2937"
	colorMuted  = "#64748b"
	colorBorder = "#cbd5e1"
	colorPanel  = "#f8fafc"
	colorTCP    = "#a855f7"
	colorUAgent = "#10b981"
	colorMQTT   = "#f97316"
	colorCall   = "#eab308"
)

func (t Tone) style(width float64) scene.Style {
	return scene.Style{Fill: t.Fill, Stroke: t.Stroke, StrokeWidth: width}
}

// box builds a rounded component box whose first line is a bold title in the
// tone's text color and whose remaining lines are small muted captions.
func (t Tone) box(x, y, w, h int, title string, lines ...string) []scene.Node {
	b := scene.Box{
		At:     scene.Pt(x, y),
		W:      w,
		H:      h,
		Radius: 8,
		Style:  t.style(2),
		Top:    25,
		Step:   18,
		Lines:  []scene.BoxLine{{Text: title, Fill: t.Text, Bold: true}},
	}
	if n := len(lines); n > 0 && 25+n*18 > h-10 {
		b.Step = (h - 35) / n
	}
	for _, l := range lines {
		b.Lines = append(b.Lines, scene.BoxLine{Text: l, Size: scene.SizeXS, Fill: colorMuted})
	}
	return b.Nodes()
}

// step is a small square-cornered process box used inside sequence diagrams.
func (t Tone) step(x, y, w, h int, lines ...string) []scene.Node {
	b := scene.Box{
		At:    scene.Pt(x, y),
		W:     w,
		H:     h,
		Style: t.style(1.5),
		Top:   h/2 - (len(lines)-1)*7 + 4,
		Step:  14,
	}
	for _, l := range lines {
		b.Lines = append(b.Lines, scene.BoxLine{Text: l, Size: scene.SizeXS, Fill: t.Text, Bold: true})
	}
	return b.Nodes()
}

func title(x, y int, s string) scene.Text {
	return scene.Label(x, y, s, scene.SizeXL, colorInk).Bold()
}

func group(id string, nodes ...[]scene.Node) scene.Group {
	g := scene.Group{ID: id}
	for _, n := range nodes {
		g.Children = append(g.Children, n...)
	}
	return g
}

func nodes(ns ...scene.Node) []scene.Node { return ns }
