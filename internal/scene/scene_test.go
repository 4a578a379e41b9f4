package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScene() *Scene {
	s := New("Test", 100, 100)
	s.Define(Arrowhead("arrow", "#000", 10))
	s.Add(
		Rect{At: Pt(0, 0), W: 20, H: 20, Style: Style{Stroke: "#3b82f6", StrokeWidth: 2}},
		Arrow(Pt(10, 20), Pt(50, 20), "#10b981", 2, "arrow"),
		Group{ID: "layer", Offset: Pt(5, 5), Opacity: 0.5, Children: []Node{
			Group{Offset: Pt(1, 2), Children: []Node{Label(60, 80, "hi", SizeBase, "#111")}},
		}},
	)
	return s
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, testScene().Validate())
}

func TestValidate_UnknownMarker(t *testing.T) {
	s := New("x", 10, 10).Add(Line{From: Pt(0, 0), To: Pt(5, 5), MarkerEnd: "missing"})
	err := s.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMarker))
	assert.Contains(t, err.Error(), "missing")
}

func TestValidate_UnknownMarkerInsideGroup(t *testing.T) {
	s := New("x", 10, 10).Add(Group{Children: []Node{
		Polyline{Points: []Point{{0, 0}, {1, 1}}, MarkerEnd: "nope"},
	}})
	assert.ErrorIs(t, s.Validate(), ErrUnknownMarker)
}

func TestValidate_DuplicateMarker(t *testing.T) {
	s := New("x", 10, 10).Define(Arrowhead("a", "#000", 8), ReverseArrowhead("a", "#000", 8))
	assert.ErrorIs(t, s.Validate(), ErrDuplicateMarker)
}

func TestValidate_EmptyViewBox(t *testing.T) {
	assert.ErrorIs(t, New("x", 0, 10).Validate(), ErrEmptyViewBox)
}

func TestWalk_FoldsGroupOffsetAndOpacity(t *testing.T) {
	var got []Point
	var opacities []float64
	testScene().Walk(func(n Node, off Point, opacity float64) {
		got = append(got, off)
		opacities = append(opacities, opacity)
	})
	require.Len(t, got, 3)
	assert.Equal(t, Pt(0, 0), got[0])
	assert.Equal(t, Pt(6, 7), got[2])
	assert.Equal(t, []float64{1, 1, 0.5}, opacities)
}

func TestTexts(t *testing.T) {
	assert.Equal(t, []string{"hi"}, testScene().Texts())
}

func TestBox_Nodes(t *testing.T) {
	b := Box{
		At: Pt(10, 10), W: 100, H: 60, Radius: 8,
		Lines: []BoxLine{{Text: "Manager", Bold: true}, {Text: "Port: 8000", Size: SizeXS}},
		Top:   20, Step: 15,
	}
	nodes := b.Nodes()
	require.Len(t, nodes, 3)
	r, ok := nodes[0].(Rect)
	require.True(t, ok)
	assert.Equal(t, 8, r.Radius)
	second := nodes[2].(Text)
	assert.Equal(t, Pt(60, 45), second.At)
	assert.Equal(t, AnchorMiddle, second.Style.Anchor)
	assert.True(t, nodes[1].(Text).Style.Bold)
}

func TestEncodeSVG(t *testing.T) {
	out, err := SVG(testScene())
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, `viewBox="0 0 100 100"`)
	assert.Contains(t, doc, "<title>Test</title>")
	assert.Contains(t, doc, `<marker id="arrow"`)
	assert.Contains(t, doc, `marker-end="url(#arrow)"`)
	assert.Contains(t, doc, `transform="translate(5, 5)"`)
	assert.Contains(t, doc, `opacity="0.5"`)
	assert.Contains(t, doc, `text-anchor="middle"`)
	assert.Contains(t, doc, ">hi</text>")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(doc), "</svg>"))
}

func TestEncodeSVG_EscapesText(t *testing.T) {
	s := New("x", 10, 10).Add(Caption(0, 5, "a<b & c", SizeXS, "#000"))
	out, err := SVG(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), "a&lt;b &amp; c")
}

func TestEncodeSVG_RejectsInvalidScene(t *testing.T) {
	s := New("x", 10, 10).Add(Line{MarkerEnd: "ghost"})
	_, err := SVG(s)
	assert.ErrorIs(t, err, ErrUnknownMarker)
}

func TestRasterize_Dimensions(t *testing.T) {
	c := Rasterize(New("x", 1000, 700), 100)
	assert.Equal(t, 100, c.Cols)
	assert.Equal(t, 35, c.Rows)
}

func TestRasterize_Shapes(t *testing.T) {
	c := Rasterize(testScene(), 100)
	require.Equal(t, 50, c.Rows)

	assert.Equal(t, '┌', c.At(0, 0))
	assert.Equal(t, '┘', c.At(20, 10))
	assert.Equal(t, '─', c.At(10, 0))
	assert.Equal(t, '│', c.At(0, 5))

	assert.Equal(t, '─', c.At(30, 10))
	assert.Equal(t, '▶', c.At(50, 10))
}

func TestRasterize_TextAnchors(t *testing.T) {
	s := New("x", 100, 100).Add(
		Label(60, 80, "hi", SizeBase, ""),
		Caption(0, 95, "日本", SizeXS, ""),
	)
	c := Rasterize(s, 100)
	assert.Equal(t, 'h', c.At(59, 38))
	assert.Equal(t, 'i', c.At(60, 38))
	assert.Equal(t, '日', c.At(0, 46))

	lines := strings.Split(c.String(), "\n")
	require.Len(t, lines, 50)
	assert.Equal(t, "日本", lines[46])
}

func TestRasterize_ReverseMarker(t *testing.T) {
	s := New("x", 100, 100).Define(Arrowhead("f", "#000", 8), ReverseArrowhead("r", "#000", 8))
	s.Add(Line{From: Pt(50, 10), To: Pt(50, 90), MarkerStart: "r", MarkerEnd: "f"})
	c := Rasterize(s, 100)
	assert.Equal(t, '▲', c.At(50, 5))
	assert.Equal(t, '▼', c.At(50, 45))
	assert.Equal(t, '│', c.At(50, 20))
}

func TestRasterize_DashedLineSkipsCells(t *testing.T) {
	s := New("x", 100, 100).Add(Line{From: Pt(0, 50), To: Pt(10, 50), Style: Style{Stroke: "#000", Dash: "4,4"}})
	c := Rasterize(s, 100)
	assert.Equal(t, '─', c.At(0, 25))
	assert.Equal(t, ' ', c.At(1, 25))
	assert.Equal(t, '─', c.At(2, 25))
}

func TestCanvas_RenderIsStable(t *testing.T) {
	s := testScene()
	assert.Equal(t, Rasterize(s, 80).Render(true), Rasterize(s, 80).Render(true))
}
