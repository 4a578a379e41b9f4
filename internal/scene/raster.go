package scene

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// continuation marks the second column of a wide rune.
const continuation = rune(-1)

// faint is the group opacity below which strokes are drawn dotted.
const faint = 0.75

type cell struct {
	r  rune
	fg string
}

// Canvas is a character-cell approximation of a Scene.
type Canvas struct {
	Cols, Rows int
	cells      [][]cell
	sx, sy     float64
}

// Rasterize paints s onto a grid cols wide. The row count follows the view
// box aspect ratio, assuming terminal cells are twice as tall as wide.
func Rasterize(s *Scene, cols int) *Canvas {
	if cols < 1 {
		cols = 1
	}
	rows := 1
	if s.Width > 0 {
		rows = int(math.Round(float64(cols) * float64(s.Height) / float64(s.Width) / 2))
	}
	rows = max(rows, 1)
	c := &Canvas{Cols: cols, Rows: rows, cells: make([][]cell, rows)}
	for i := range c.cells {
		c.cells[i] = make([]cell, cols)
		for j := range c.cells[i] {
			c.cells[i][j].r = ' '
		}
	}
	if s.Width > 0 && s.Height > 0 {
		c.sx = float64(cols) / float64(s.Width)
		c.sy = float64(rows) / float64(s.Height)
	}
	s.Walk(func(n Node, off Point, opacity float64) {
		c.paint(n, off, opacity < faint)
	})
	return c
}

func (c *Canvas) toCell(p Point) (int, int) {
	return int(math.Round(float64(p.X) * c.sx)), int(math.Round(float64(p.Y) * c.sy))
}

func (c *Canvas) set(x, y int, r rune, fg string) {
	if x < 0 || y < 0 || y >= c.Rows || x >= c.Cols {
		return
	}
	c.cells[y][x] = cell{r: r, fg: fg}
}

// At returns the rune painted at column x, row y.
func (c *Canvas) At(x, y int) rune {
	if x < 0 || y < 0 || y >= c.Rows || x >= c.Cols {
		return ' '
	}
	return c.cells[y][x].r
}

func (c *Canvas) paint(n Node, off Point, dim bool) {
	switch n := n.(type) {
	case Rect:
		c.rect(n, off, dim)
	case Line:
		c.line(n.From.Add(off), n.To.Add(off), n.Style, dim, n.MarkerStart != "", n.MarkerEnd != "")
	case Polyline:
		for i := 1; i < len(n.Points); i++ {
			last := i == len(n.Points)-1
			c.line(n.Points[i-1].Add(off), n.Points[i].Add(off), n.Style, dim, false, last && n.MarkerEnd != "")
		}
	case Polygon:
		for i := range n.Points {
			a, b := n.Points[i], n.Points[(i+1)%len(n.Points)]
			c.line(a.Add(off), b.Add(off), n.Style, dim, false, false)
		}
	case Circle:
		c.circle(n, off)
	case Text:
		c.text(n, off)
	}
}

func (c *Canvas) rect(r Rect, off Point, dim bool) {
	if r.Style.Stroke == "" {
		return
	}
	x0, y0 := c.toCell(r.At.Add(off))
	x1, y1 := c.toCell(r.At.Add(off).Add(Pt(r.W, r.H)))
	if x1-x0 < 1 || y1-y0 < 1 {
		c.line(r.At.Add(off), r.At.Add(off).Add(Pt(r.W, 0)), r.Style, dim, false, false)
		return
	}
	h, v := '─', '│'
	if r.Style.Dashed() || dim {
		h, v = '╌', '╎'
	}
	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if r.Radius > 0 {
		tl, tr, bl, br = '╭', '╮', '╰', '╯'
	}
	fg := r.Style.Stroke
	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, h, fg)
		c.set(x, y1, h, fg)
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, v, fg)
		c.set(x1, y, v, fg)
	}
	c.set(x0, y0, tl, fg)
	c.set(x1, y0, tr, fg)
	c.set(x0, y1, bl, fg)
	c.set(x1, y1, br, fg)
}

func (c *Canvas) line(a, b Point, st Style, dim, startMarker, endMarker bool) {
	x0, y0 := c.toCell(a)
	x1, y1 := c.toCell(b)
	dx, dy := x1-x0, y1-y0
	glyph := slopeGlyph(dx, dy)
	skip := st.Dashed() || dim
	fg := st.Stroke

	// Bresenham.
	adx, ady := abs(dx), -abs(dy)
	stepX, stepY := sign(dx), sign(dy)
	err := adx + ady
	x, y := x0, y0
	for i := 0; ; i++ {
		if !skip || i%2 == 0 {
			c.set(x, y, glyph, fg)
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= ady {
			err += ady
			x += stepX
		}
		if e2 <= adx {
			err += adx
			y += stepY
		}
	}
	if endMarker {
		c.set(x1, y1, arrowGlyph(dx, dy), fg)
	}
	if startMarker {
		c.set(x0, y0, arrowGlyph(-dx, -dy), fg)
	}
}

func (c *Canvas) circle(ci Circle, off Point) {
	cx, cy := c.toCell(ci.Center.Add(off))
	rx := int(math.Round(float64(ci.R) * c.sx))
	ry := int(math.Round(float64(ci.R) * c.sy))
	fg := ci.Style.Stroke
	if fg == "" {
		fg = ci.Style.Fill
	}
	if rx < 1 || ry < 1 {
		c.set(cx, cy, '●', fg)
		return
	}
	for deg := 0; deg < 360; deg += 10 {
		rad := float64(deg) * math.Pi / 180
		x := cx + int(math.Round(float64(rx)*math.Cos(rad)))
		y := cy + int(math.Round(float64(ry)*math.Sin(rad)))
		c.set(x, y, '•', fg)
	}
}

func (c *Canvas) text(t Text, off Point) {
	x, y := c.toCell(t.At.Add(off))
	// Baselines sit below the visual centre of the glyphs.
	y = int(math.Round(float64(t.At.Y+off.Y-t.Style.Size.Pixels()/3) * c.sy))
	w := runewidth.StringWidth(t.Content)
	switch t.Style.Anchor {
	case AnchorMiddle:
		x -= w / 2
	case AnchorEnd:
		x -= w
	}
	for _, r := range t.Content {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		c.set(x, y, r, t.Style.Fill)
		if rw == 2 {
			c.set(x+1, y, continuation, t.Style.Fill)
		}
		x += rw
	}
}

// Render returns the canvas as text, one line per row. When colored is true
// each run of cells sharing a color is wrapped in a lipgloss style.
func (c *Canvas) Render(colored bool) string {
	lines := make([]string, c.Rows)
	for y, row := range c.cells {
		var b strings.Builder
		var run strings.Builder
		runFg := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if colored && runFg != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runFg)).Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.r == continuation {
				continue
			}
			if cl.fg != runFg {
				flush()
				runFg = cl.fg
			}
			run.WriteRune(cl.r)
		}
		flush()
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// String renders without color.
func (c *Canvas) String() string { return c.Render(false) }

func slopeGlyph(dx, dy int) rune {
	switch {
	case dy == 0 || abs(dx) > 2*abs(dy):
		return '─'
	case dx == 0 || abs(dy) > 2*abs(dx):
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func arrowGlyph(dx, dy int) rune {
	if abs(dx) >= abs(dy) {
		if dx < 0 {
			return '◀'
		}
		return '▶'
	}
	if dy < 0 {
		return '▲'
	}
	return '▼'
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
