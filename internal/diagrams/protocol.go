package diagrams

import "dtmas/internal/scene"

// participant is one lifeline in a sequence diagram.
type participant struct {
	name string
	role string
	tone Tone
}

var participants = []participant{
	{"Manager", "(Initiator)", manager},
	{"Vehicle Agent", "(Participant)", vehicle},
	{"Digital Twin", "(Mediator)", twin},
	{"Simulator", "(Environment)", simulator},
}

// sequence lays out lifelines and numbered messages between them.
type sequence struct {
	lanes  []int // lifeline x positions
	top    int
	bottom int
	marker string
}

func (q sequence) heads(boxW, boxH int, withRole bool) scene.Group {
	g := scene.Group{ID: "participants"}
	for i, p := range participants {
		x := q.lanes[i] - boxW/2
		b := scene.Box{
			At:     scene.Pt(x, q.top-boxH),
			W:      boxW,
			H:      boxH,
			Radius: 5,
			Style:  p.tone.style(2),
			Top:    boxH/2 + 5,
			Step:   20,
			Lines:  []scene.BoxLine{{Text: p.name, Fill: p.tone.Text, Bold: true}},
		}
		if withRole {
			b.Top = 25
			b.Lines = append(b.Lines, scene.BoxLine{Text: p.role, Size: scene.SizeXS, Fill: colorMuted})
		}
		g.Children = append(g.Children, b.Nodes()...)
	}
	for _, x := range q.lanes {
		g.Children = append(g.Children, scene.Line{
			From:  scene.Pt(x, q.top),
			To:    scene.Pt(x, q.bottom),
			Style: scene.Style{Stroke: colorInk, StrokeWidth: 2, Dash: "8,4"},
		})
	}
	return g
}

// msg draws a message arrow between lanes with a label above and arguments
// below.
func (q sequence) msg(id string, from, to, y int, label, color string, dashed bool, args ...string) scene.Group {
	a, b := q.lanes[from], q.lanes[to]
	st := scene.Style{Stroke: color, StrokeWidth: 2.5}
	if dashed {
		st.Dash = "4,4"
		st.StrokeWidth = 2
	}
	mid := (a + b) / 2
	g := scene.Group{ID: id, Children: []scene.Node{
		scene.Line{From: scene.Pt(a, y), To: scene.Pt(b, y), Style: st, MarkerEnd: q.marker},
		scene.Label(mid, y-10, label, scene.SizeXS, color).Bold(),
	}}
	for i, arg := range args {
		g.Children = append(g.Children, scene.Label(mid, y+20+i*14, arg, scene.SizeXS, colorMuted).Italic())
	}
	return g
}

func phaseLabel(x, y int, lines ...string) []scene.Node {
	var out []scene.Node
	for i, l := range lines {
		out = append(out, scene.Caption(x, y+i*15, l, scene.SizeSM, colorInk).Bold())
	}
	return out
}

func decision(id string, c scene.Point, stroke, question string, notes ...scene.Text) scene.Group {
	g := scene.Group{ID: id, Children: []scene.Node{
		scene.Diamond(c, 20, 15, scene.Style{Fill: "white", Stroke: stroke, StrokeWidth: 2}),
		scene.Label(c.X, c.Y+5, "?", scene.SizeXS, vehicle.Text).Bold(),
		scene.Caption(c.X+10, c.Y-35, question, scene.SizeXS, colorMuted),
	}}
	for _, n := range notes {
		g.Children = append(g.Children, n)
	}
	return g
}

type legendItem struct {
	label  string
	color  string
	dashed bool
}

func legend(x, y, w int, marker string, items []legendItem) scene.Group {
	g := scene.Group{ID: "legend", Children: []scene.Node{
		scene.Rect{At: scene.Pt(x, y), W: w, H: 35, Radius: 4, Style: scene.Style{Fill: colorPanel, Stroke: colorBorder, StrokeWidth: 1}},
	}}
	cx := x + 60
	for _, it := range items {
		st := scene.Style{Stroke: it.color, StrokeWidth: 2.5}
		if it.dashed {
			st.Dash = "4,4"
		}
		g.Children = append(g.Children,
			scene.Line{From: scene.Pt(cx, y+17), To: scene.Pt(cx+40, y+17), Style: st, MarkerEnd: marker},
			scene.Caption(cx+50, y+22, it.label, scene.SizeXS, colorInk),
		)
		cx += 60 + 9*len(it.label)
	}
	g.Children = append(g.Children,
		scene.Diamond(scene.Pt(cx+10, y+17), 10, 8, scene.Style{Fill: "white", Stroke: vehicle.Stroke, StrokeWidth: 1.5}),
		scene.Caption(cx+30, y+22, "Decision Point", scene.SizeXS, colorInk),
	)
	return g
}

// ProtocolPhase1 is the Contract Net call for proposals, evaluation and
// assignment.
func ProtocolPhase1() *scene.Scene {
	const marker = "arrow-black"
	s := scene.New("FIPA Contract Net Protocol - Proposal & Assignment Phase", 1200, 1100)
	s.Define(scene.Arrowhead(marker, colorInk, 8))
	s.Add(scene.Rect{At: scene.Pt(100, 60), W: 1000, H: 980, Style: scene.Style{Fill: "white", Stroke: colorInk, StrokeWidth: 2.5}})

	q := sequence{lanes: []int{160, 360, 560, 760}, top: 140, bottom: 1000, marker: marker}
	body := scene.Group{ID: "phase1", Offset: scene.Pt(150, 0)}
	body.Children = append(body.Children,
		title(450, 30, "FIPA Contract Net Protocol - Proposal & Assignment Phase"),
		q.heads(160, 60, true),
	)
	body.Children = append(body.Children, phaseLabel(-60, 180, "Phase 1:", "Call for", "Proposal")...)
	body.Children = append(body.Children,
		q.msg("msg1", 0, 1, 190, "1. cfp", colorUAgent, false, "(destination_node, task_id)"),
		q.msg("msg2a-refuse", 1, 0, 280, "2a. refuse", colorUAgent, true, "(is_busy=true)"),
		q.msg("msg2b", 1, 2, 280, "2b. get_status", colorTCP, false, "(vehicle_id)"),
		decision("decision1", scene.Pt(360, 280), vehicle.Stroke, "is_busy?",
			scene.Caption(370, 310, "no", scene.SizeXS, colorMuted),
			scene.Caption(320, 310, "yes", scene.SizeXS, colorMuted),
		),
		q.msg("msg3", 2, 3, 350, "3. query_location", colorMQTT, false, "(vehicle_id)"),
		q.msg("msg4", 3, 2, 390, "4. location_data", colorMQTT, false, "(current_node, speed)"),
		q.msg("msg5", 2, 1, 430, "5. status_response", colorTCP, false, "(current_location, speed)"),
	)
	body.Children = append(body.Children, routing.step(310, 490, 100, 60, "Dijkstra's", "Algorithm")...)
	body.Children = append(body.Children, vehicle.step(310, 570, 100, 45, "Select", "Time")...)
	body.Children = append(body.Children,
		q.msg("msg6", 1, 0, 640, "6. propose", colorUAgent, false, "(travel_time)"),
	)
	body.Children = append(body.Children, phaseLabel(-60, 700, "Phase 2:", "Evaluation")...)
	body.Children = append(body.Children, manager.step(110, 680, 100, 60, "Wait for All", "Proposals", "(or timeout)")...)
	body.Children = append(body.Children, manager.step(100, 760, 120, 40, "Select Min", "Estimated Time")...)
	body.Children = append(body.Children,
		q.msg("msg7", 0, 1, 850, "7. accept-proposal", colorUAgent, false, "(task_id, destination_node)"),
	)
	body.Children = append(body.Children, vehicle.step(310, 885, 100, 45, "Set is_busy", "= TRUE")...)
	body.Children = append(body.Children,
		q.msg("msg8", 1, 0, 955, "8. accept", colorUAgent, false, "(accepted=true,", "planned_path)"),
	)
	s.Add(body)

	s.Add(legend(60, 1045, 1080, marker, []legendItem{
		{"uAgents Protocol", colorUAgent, false},
		{"MQTT", colorMQTT, false},
		{"TCP", colorTCP, false},
		{"Python Function Call", colorCall, false},
		{"Refuse/Reject", colorUAgent, true},
	}))
	return s
}

// ProtocolPhase2 is mission execution through the twin and completion.
func ProtocolPhase2() *scene.Scene {
	const marker = "arrow-black-p2"
	s := scene.New("FIPA Contract Net Protocol - Execution & Completion Phase", 1000, 900)
	s.Define(scene.Arrowhead(marker, colorInk, 8))
	s.Add(scene.Rect{At: scene.Pt(40, 60), W: 920, H: 800, Style: scene.Style{Fill: "white", Stroke: colorInk, StrokeWidth: 2.5}})

	q := sequence{lanes: []int{150, 330, 510, 690}, top: 120, bottom: 820, marker: marker}
	body := scene.Group{ID: "phase2", Offset: scene.Pt(90, 0)}
	body.Children = append(body.Children,
		title(410, 30, "FIPA Contract Net Protocol - Execution & Completion Phase"),
		q.heads(140, 40, false),
		scene.Rect{
			At: scene.Pt(300, 150), W: 450, H: 460, Radius: 4,
			Style: scene.Style{Fill: "#fef9e7", FillOpacity: 0.3, Stroke: routing.Stroke, StrokeWidth: 2.5, Dash: "5,5"},
		},
	)
	body.Children = append(body.Children, phaseLabel(-40, 200, "Phase 3:", "Path", "Execution")...)
	body.Children = append(body.Children,
		q.msg("msg9", 1, 2, 200, "9. assign_mission", colorTCP, false, "(destination:", "next_waypoint)"),
		q.msg("msg10", 2, 3, 240, "10. MQTT publish", colorMQTT, false, "(next_destination)"),
		q.msg("msg11", 2, 1, 280, "11. task_ack", colorTCP, false),
	)
	body.Children = append(body.Children, simulator.step(640, 280, 100, 40, "Move Vehicle", "to Waypoint")...)
	m12 := q.msg("msg12", 3, 2, 400, "12. MQTT update", colorMQTT, true, "(progress,", "current_node, x, y)")
	m13 := q.msg("msg13", 2, 1, 445, "13. vehicle_data", colorTCP, true, "(mission_progress,", "current_location)")
	body.Children = append(body.Children,
		m12, m13,
		decision("decision-waypoint", scene.Pt(330, 545), routing.Stroke, "Destination reached?",
			scene.Caption(285, 535, "No", scene.SizeXS, colorMuted),
			scene.Caption(340, 580, "Yes", scene.SizeXS, colorMuted),
		),
		scene.Polyline{
			Points:    []scene.Point{{X: 310, Y: 545}, {X: 280, Y: 545}, {X: 280, Y: 200}, {X: 300, Y: 200}},
			Style:     scene.Style{Stroke: routing.Stroke, StrokeWidth: 2.5, Dash: "4,4"},
			MarkerEnd: marker,
		},
	)
	body.Children = append(body.Children, phaseLabel(-40, 650, "Phase 4:", "Completion")...)
	body.Children = append(body.Children, vehicle.step(280, 635, 100, 40, "Set is_busy", "= FALSE")...)
	body.Children = append(body.Children,
		q.msg("msg14", 1, 0, 720, "14. TaskCompletion", colorUAgent, false, "(task_id, success=true", "final_node)"),
	)
	s.Add(body)

	s.Add(legend(60, 865, 880, marker, []legendItem{
		{"uAgents", colorUAgent, false},
		{"MQTT", colorMQTT, false},
		{"TCP", colorTCP, false},
		{"Periodic/Async", colorInk, true},
	}))
	return s
}
