package diagrams

import "dtmas/internal/scene"

const (
	colorAmber = "#d97706"
	colorSlate = "#1e293b"
	colorOK    = "#16a34a"
)

// flowCard is one message box inside a processing section.
type flowCard struct {
	x       int
	heading string
	fields  []string
	footer  scene.Text
}

// DataFlow shows how a digital twin turns agent commands into simulator
// topics and simulator telemetry into agent reports.
func DataFlow() *scene.Scene {
	s := scene.New("Digital Twin: Agent - Simulator Interface", 550, 580)
	// Both markers point along the line; the left one is used on a
	// right-to-left connector.
	s.Define(
		scene.Arrowhead("arrow-right", dataflow.Stroke, 8),
		scene.Arrowhead("arrow-left", dataflow.Stroke, 8),
	)

	s.Add(
		scene.Rect{At: scene.Pt(10, 10), W: 530, H: 560, Radius: 12, Style: scene.Style{Fill: dataflow.Fill, Stroke: routing.Stroke, StrokeWidth: 4}},
		scene.Label(275, 40, "Digital Twin", scene.SizeLG, routing.Text).Bold(),
		scene.Label(275, 60, "Agent - Simulator Interface", scene.SizeSM, dataflow.Text).Italic(),
		scene.Line{From: scene.Pt(30, 70), To: scene.Pt(520, 70), Style: scene.Style{Stroke: routing.Stroke, StrokeWidth: 2}},
	)

	s.Add(section("command-section", 85, "Command Processing (Agent → Simulator)",
		scene.Arrow(scene.Pt(245, 180), scene.Pt(300, 180), dataflow.Stroke, 2, "arrow-right"),
		flowCard{
			x:       45,
			heading: "Receives (TCP):",
			fields:  []string{`type: "assign_mission"`, `destination: "Node5"`},
			footer:  scene.Caption(55, 227, "High-level Instructions", scene.SizeXS, colorMuted),
		},
		flowCard{
			x:       305,
			heading: "Publishes (MQTT):",
			fields:  []string{"topic: vehicle1_next_dest", `payload: "Node5"`},
			footer:  scene.Caption(315, 225, "✓ Logs command", scene.SizeXS, colorOK).Italic(),
		},
	))

	s.Add(scene.Group{ID: "state-section", Children: nodes(
		scene.Rect{At: scene.Pt(30, 270), W: 490, H: 70, Radius: 8, Style: scene.Style{Fill: "#fde68a", Stroke: colorAmber, StrokeWidth: 2}},
		scene.Label(275, 295, "📊 State History & Data Model", scene.SizeSM, routing.Text).Bold(),
		scene.Caption(45, 315, "• Logs all messages with timestamps", scene.SizeXS, colorSlate),
		scene.Caption(45, 332, "• Stores both command and telemetry metadata for verification", scene.SizeXS, colorSlate),
	)})

	s.Add(section("telemetry-section", 360, "Telemetry Processing (Simulator → Agent)",
		scene.Arrow(scene.Pt(305, 455), scene.Pt(250, 455), dataflow.Stroke, 2, "arrow-left"),
		flowCard{
			x:       305,
			heading: "Receives (MQTT):",
			fields:  []string{"progress: 75", `next_location: "Node5"`, `previous_location: "Node3"`},
			footer:  scene.Label(385, 507, "Low-level telemetry", scene.SizeXS, colorMuted).Italic(),
		},
		flowCard{
			x:       45,
			heading: "Forwards (TCP):",
			fields:  []string{"mission_progress: 75%", `target_location: "Node5"`, `current_location: "Node3"`},
			footer:  scene.Caption(55, 507, "✓ Logs messages", scene.SizeXS, colorOK).Italic(),
		},
	))
	return s
}

// section is a titled panel holding two message cards and the connector
// between them. Card coordinates are absolute.
func section(id string, y int, heading string, link scene.Line, cards ...flowCard) scene.Group {
	g := scene.Group{ID: id, Children: nodes(
		scene.Rect{At: scene.Pt(30, y), W: 490, H: 165, Radius: 8, Style: scene.Style{Fill: routing.Fill, Stroke: dataflow.Stroke, StrokeWidth: 2}},
		scene.Label(275, y+23, heading, scene.SizeSM, routing.Text).Bold(),
	)}
	top := y + 35
	for _, c := range cards {
		g.Children = append(g.Children,
			scene.Rect{At: scene.Pt(c.x, top), W: 200, H: 120, Radius: 6, Style: scene.Style{Fill: "#ffffff", Stroke: dataflow.Stroke, StrokeWidth: 1.5}},
			scene.Label(c.x+100, top+18, c.heading, scene.SizeXS, routing.Text).Bold(),
		)
		for i, f := range c.fields {
			g.Children = append(g.Children, scene.Caption(c.x+10, top+40+i*20, f, scene.SizeXS, colorSlate))
		}
		rule := top + 85
		if len(c.fields) > 2 {
			rule = top + 95
		}
		g.Children = append(g.Children,
			scene.Line{From: scene.Pt(c.x+10, rule), To: scene.Pt(c.x+190, rule), Style: scene.Style{Stroke: colorAmber, StrokeWidth: 1, Dash: "3,2"}},
			c.footer,
		)
	}
	g.Children = append(g.Children, link)
	return g
}
