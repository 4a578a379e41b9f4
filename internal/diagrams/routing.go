package diagrams

import (
	"fmt"

	"dtmas/internal/scene"
)

// route is one vehicle's column in the comparison table.
type route struct {
	title, priority string
	color           string
	path            []int
	distance        float64
	carbon          float64
	cost            float64
	speed           int
	time            float64
	best            string // the row this vehicle's priority optimises
}

var routes = []route{
	{"Vehicle 1", "Distance Priority", "#1e3a8a", []int{7, 1, 4}, 269.92, 249.12, 789.24, 35, 7.71, "Distance"},
	{"Vehicle 2", "Carbon Priority", "#047857", []int{7, 1, 4}, 269.92, 249.12, 789.24, 45, 6.00, "Carbon"},
	{"Vehicle 3", "Cost Priority", "#b45309", []int{7, 5, 1, 2, 4}, 435.41, 546.20, 159.97, 50, 8.71, "Cost"},
}

// Map positions of the example network; edges are undirected.
var (
	networkNodes = map[int]scene.Point{
		1: {X: 420, Y: 150}, 2: {X: 560, Y: 110}, 3: {X: 300, Y: 90}, 4: {X: 700, Y: 160},
		5: {X: 330, Y: 230}, 6: {X: 560, Y: 240}, 7: {X: 200, Y: 180},
	}
	networkEdges = [][2]int{
		{7, 1}, {1, 4}, {7, 5}, {5, 1}, {1, 2}, {2, 4}, {7, 3}, {3, 1}, {1, 6}, {6, 4},
	}
)

// Routing compares the routes three vehicles with different priorities take
// between the same pair of nodes.
func Routing() *scene.Scene {
	s := scene.New("Multi-Criteria Route Optimization Example", 1000, 750)
	s.Add(title(500, 30, "Multi-Criteria Route Optimization Example"))
	s.Add(network())
	s.Add(comparison())
	return s
}

func network() scene.Group {
	g := scene.Group{ID: "network"}
	for _, e := range networkEdges {
		g.Children = append(g.Children, scene.Line{
			From:  networkNodes[e[0]],
			To:    networkNodes[e[1]],
			Style: scene.Style{Stroke: colorBorder, StrokeWidth: 2},
		})
	}
	// Vehicles 1 and 2 share a path, so only the first and last routes differ.
	for i, r := range []route{routes[0], routes[2]} {
		st := scene.Style{Stroke: r.color, StrokeWidth: 3}
		if i > 0 {
			st.Dash = "6,4"
		}
		pts := make([]scene.Point, len(r.path))
		for j, n := range r.path {
			pts[j] = networkNodes[n]
		}
		g.Children = append(g.Children, scene.Polyline{Points: pts, Style: st})
	}
	for n := 1; n <= len(networkNodes); n++ {
		p := networkNodes[n]
		fill := "white"
		if n == 7 || n == 4 {
			fill = manager.Fill
		}
		g.Children = append(g.Children,
			scene.Circle{Center: p, R: 18, Style: scene.Style{Fill: fill, Stroke: colorInk, StrokeWidth: 2}},
			scene.Label(p.X, p.Y+5, fmt.Sprint(n), scene.SizeSM, colorInk).Bold(),
		)
	}
	g.Children = append(g.Children,
		scene.Caption(780, 110, "━ Vehicles 1 & 2", scene.SizeXS, routes[0].color),
		scene.Caption(780, 130, "╍ Vehicle 3", scene.SizeXS, routes[2].color),
	)
	return g
}

func comparison() scene.Group {
	g := scene.Group{ID: "vehicle-comparison", Children: nodes(
		scene.Rect{At: scene.Pt(50, 320), W: 900, H: 400, Radius: 8, Style: scene.Style{Fill: colorPanel, Stroke: colorBorder, StrokeWidth: 2}},
		scene.Label(500, 350, "Route Comparison: Node7 → Node4", scene.SizeBase, colorInk).Bold(),
		scene.Rect{At: scene.Pt(50, 370), W: 900, H: 60, Style: scene.Style{Fill: "#e2e8f0", Stroke: "#e2e8f0", StrokeWidth: 1.5}},
	)}
	for _, x := range []int{200, 450, 700} {
		g.Children = append(g.Children, scene.Line{
			From:  scene.Pt(x, 370),
			To:    scene.Pt(x, 720),
			Style: scene.Style{Stroke: colorBorder, StrokeWidth: 1.5},
		})
	}

	rows := []string{"Path", "Distance", "Carbon", "Cost", "Speed", "Time"}
	for i, label := range rows {
		y := 470 + i*50
		g.Children = append(g.Children,
			scene.Line{From: scene.Pt(50, y-40), To: scene.Pt(950, y-40), Style: scene.Style{Stroke: "#e2e8f0", StrokeWidth: 1.5}},
			scene.Label(125, y-10, label, scene.SizeSM, colorInk).Bold(),
		)
	}

	for i, r := range routes {
		x := 325 + i*250
		g.Children = append(g.Children,
			scene.Label(x, 395, r.title, scene.SizeSM, r.color).Bold(),
			scene.Label(x, 412, r.priority, scene.SizeXS, r.color),
		)
		for j, cell := range r.cells() {
			g.Children = append(g.Children, cell.At(x, 460+j*50))
		}
	}
	return g
}

// cell is one table value before placement.
type cell struct {
	text  string
	fill  string
	bold  bool
	check bool
}

func (c cell) At(x, y int) scene.Text {
	text := c.text
	if c.check {
		text += " ✓"
	}
	t := scene.Label(x, y, text, scene.SizeSM, c.fill)
	if c.bold || c.check {
		t = t.Bold()
	}
	return t
}

func (r route) cells() []cell {
	path := "Node "
	for i, n := range r.path {
		if i > 0 {
			path += "→"
		}
		path += fmt.Sprint(n)
	}
	metric := func(row, text string) cell {
		if r.best == row {
			return cell{text: text, fill: colorUAgent, check: true}
		}
		return cell{text: text, fill: colorMuted}
	}
	return []cell{
		{text: path, fill: colorSlate},
		metric("Distance", fmt.Sprintf("%.2f units", r.distance)),
		metric("Carbon", fmt.Sprintf("%.2f kg CO₂", r.carbon)),
		metric("Cost", fmt.Sprintf("$%.2f", r.cost)),
		{text: fmt.Sprintf("%d units/time", r.speed), fill: colorMuted},
		{text: fmt.Sprintf("%.2f time units", r.time), fill: manager.Stroke, bold: true},
	}
}
