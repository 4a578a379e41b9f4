// Package scene describes static vector diagrams as a small drawing tree.
//
// A Scene is self-contained: every marker a connector references is defined
// inside the same scene, and nothing in it depends on application state.
// Hosts consume scenes through EncodeSVG (browsers, files) or Rasterize
// (terminals).
package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyViewBox is returned for a scene whose width or height is not positive.
	ErrEmptyViewBox = errors.New("scene: view box must be positive")
	// ErrUnknownMarker is returned when a connector references a marker the
	// scene does not define.
	ErrUnknownMarker = errors.New("scene: unknown marker")
	// ErrDuplicateMarker is returned when two markers share an id.
	ErrDuplicateMarker = errors.New("scene: duplicate marker")
)

// Point is a position in view box units.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Style holds the stroke and fill attributes shared by shapes.
type Style struct {
	Fill        string  // CSS color; "" means no fill
	FillOpacity float64 // 0 means opaque
	Stroke      string  // CSS color; "" means no stroke
	StrokeWidth float64
	Dash        string // SVG dash array, e.g. "5,5"
}

// Dashed reports whether the stroke has a dash pattern.
func (s Style) Dashed() bool { return s.Dash != "" }

// TextSize mirrors the size classes the diagrams were authored with.
type TextSize int

const (
	SizeBase TextSize = iota
	SizeXS
	SizeSM
	SizeLG
	SizeXL
)

// Pixels returns the font size used when encoding to SVG.
func (s TextSize) Pixels() int {
	switch s {
	case SizeXS:
		return 12
	case SizeSM:
		return 14
	case SizeLG:
		return 18
	case SizeXL:
		return 20
	default:
		return 16
	}
}

// Anchor is the horizontal alignment of a text run relative to its position.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

func (a Anchor) String() string {
	switch a {
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

// TextStyle controls how a Text node is drawn.
type TextStyle struct {
	Size   TextSize
	Bold   bool
	Italic bool
	Anchor Anchor
	Fill   string
}

// Node is one element of the drawing tree.
type Node interface {
	node()
}

// Rect is an axis-aligned rectangle, optionally rounded.
type Rect struct {
	At     Point
	W, H   int
	Radius int
	Style  Style
}

// Text is a single line of text.
type Text struct {
	At      Point
	Content string
	Style   TextStyle
}

// Line is a straight connector. MarkerStart and MarkerEnd name markers
// defined on the owning Scene.
type Line struct {
	From, To    Point
	Style       Style
	MarkerStart string
	MarkerEnd   string
}

// Polyline is an open path through Points, used for loop-back arrows.
type Polyline struct {
	Points    []Point
	Style     Style
	MarkerEnd string
}

// Polygon is a closed shape, used for decision diamonds.
type Polygon struct {
	Points []Point
	Style  Style
}

// Circle is used for graph nodes.
type Circle struct {
	Center Point
	R      int
	Style  Style
}

// Group is a layer of children drawn with a translation and opacity.
// Opacity 0 means fully opaque.
type Group struct {
	ID       string
	Offset   Point
	Opacity  float64
	Children []Node
}

func (Rect) node()     {}
func (Text) node()     {}
func (Line) node()     {}
func (Polyline) node() {}
func (Polygon) node()  {}
func (Circle) node()   {}
func (Group) node()    {}

// Marker is an arrowhead definition. Points are in marker units and RefX/RefY
// is the point placed on the line end.
type Marker struct {
	ID         string
	W, H       int
	RefX, RefY int
	Points     []Point
	Fill       string
}

// Scene is a complete, self-contained diagram.
type Scene struct {
	Title   string
	Width   int // view box width
	Height  int // view box height
	Markers []Marker
	Nodes   []Node
}

// New creates an empty scene with the given view box.
func New(title string, width, height int) *Scene {
	return &Scene{Title: title, Width: width, Height: height}
}

// Define adds marker definitions.
func (s *Scene) Define(markers ...Marker) *Scene {
	s.Markers = append(s.Markers, markers...)
	return s
}

// Add appends nodes in paint order.
func (s *Scene) Add(nodes ...Node) *Scene {
	s.Nodes = append(s.Nodes, nodes...)
	return s
}

// Marker returns the marker with the given id.
func (s *Scene) Marker(id string) (Marker, bool) {
	for _, m := range s.Markers {
		if m.ID == id {
			return m, true
		}
	}
	return Marker{}, false
}

// Validate checks that the scene has a usable view box and that every marker
// reference resolves inside the scene.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyViewBox, s.Width, s.Height)
	}
	seen := make(map[string]bool, len(s.Markers))
	for _, m := range s.Markers {
		if seen[m.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateMarker, m.ID)
		}
		seen[m.ID] = true
	}
	var err error
	s.Walk(func(n Node, _ Point, _ float64) {
		if err != nil {
			return
		}
		for _, ref := range markerRefs(n) {
			if ref != "" && !seen[ref] {
				err = fmt.Errorf("%w: %q", ErrUnknownMarker, ref)
				return
			}
		}
	})
	return err
}

func markerRefs(n Node) []string {
	switch n := n.(type) {
	case Line:
		return []string{n.MarkerStart, n.MarkerEnd}
	case Polyline:
		return []string{n.MarkerEnd}
	}
	return nil
}

// WalkFunc receives each leaf node with the accumulated group offset and the
// effective opacity (1 when no group sets one).
type WalkFunc func(n Node, offset Point, opacity float64)

// Walk visits leaf nodes depth-first in paint order. Groups are not passed to
// fn; their offset and opacity are folded into their children.
func (s *Scene) Walk(fn WalkFunc) {
	walk(s.Nodes, Point{}, 1, fn)
}

func walk(nodes []Node, offset Point, opacity float64, fn WalkFunc) {
	for _, n := range nodes {
		if g, ok := n.(Group); ok {
			op := opacity
			if g.Opacity > 0 {
				op *= g.Opacity
			}
			walk(g.Children, offset.Add(g.Offset), op, fn)
			continue
		}
		fn(n, offset, opacity)
	}
}

// Texts returns every text run in paint order. Handy for hosts that need a
// plain-text outline of a scene.
func (s *Scene) Texts() []string {
	var out []string
	s.Walk(func(n Node, _ Point, _ float64) {
		if t, ok := n.(Text); ok {
			out = append(out, t.Content)
		}
	})
	return out
}
