package diagrams

import (
	"fmt"

	"dtmas/internal/scene"
)

var vehiclePriorities = []string{"Distance", "Carbon", "Cost"}

// Architecture shows the agents, digital twins, simulator and routing system
// and the transport between each layer.
func Architecture() *scene.Scene {
	s := scene.New("Overall System Architecture", 1000, 700)
	for _, t := range []Tone{manager, vehicle, twin} {
		s.Define(
			scene.Arrowhead("arrow-"+t.Stroke[1:], t.Stroke, 10),
			scene.ReverseArrowhead("arrow-"+t.Stroke[1:]+"-reverse", t.Stroke, 10),
		)
	}
	s.Add(title(370, 30, "Overall System Architecture"))

	// Drawn first so the boxes paint over the dotted routes.
	routes := scene.Group{ID: "routing-connections", Opacity: 0.5}
	for i, x := range []int{230, 460, 690} {
		y := 250 + i*20
		routes.Children = append(routes.Children, scene.Line{
			From:  scene.Pt(x, y),
			To:    scene.Pt(770, y),
			Style: scene.Style{Stroke: routing.Stroke, StrokeWidth: 1.5, Dash: "5,5"},
		})
	}
	s.Add(routes)

	s.Add(group("manager", manager.box(270, 60, 200, 100, "Manager Agent",
		"Port: 8000", "Task Generation", "Task Allocation")))

	agents := scene.Group{ID: "vehicle-agents"}
	twins := scene.Group{ID: "digital-twins"}
	for i, prio := range vehiclePriorities {
		x := 50 + i*230
		agents.Children = append(agents.Children, vehicle.box(x, 220, 180, 100,
			fmt.Sprintf("Vehicle Agent %d", i+1),
			fmt.Sprintf("Port: %d", 8001+i), "Priority: "+prio, "Route Planning")...)
		twins.Children = append(twins.Children, twin.box(x, 400, 180, 100,
			fmt.Sprintf("Digital Twin %d", i+1),
			fmt.Sprintf("TCP Port: %d", 5000+i), fmt.Sprintf("MQTT: vehicle%d", i+1),
			"Data Translation", "State Tracking")...)
	}
	s.Add(agents, twins)

	s.Add(group("simulator", simulator.box(50, 580, 640, 80, "Vehicle Simulator",
		"MQTT Broker: localhost:4001", "Physical Vehicle Simulation")))

	s.Add(group("routing-system", routing.box(770, 220, 200, 280, "Routing System",
		"(route.py)",
		"1) Network Topology",
		"2) Dijkstra Algorithm",
		"3) Edge Weights:",
		"  - Distance",
		"  - Carbon",
		"  - Cost",
		"4) Location Tracking",
		"5) Travel Time",
		"Files: map.txt, vehicles.txt",
	)))

	links := scene.Group{ID: "connections"}
	for i, x := range []int{140, 370, 600} {
		links.Children = append(links.Children,
			bidi(scene.Pt(330+i*40, 160), scene.Pt(x, 220), manager),
			bidi(scene.Pt(x, 320), scene.Pt(x, 400), vehicle),
			bidi(scene.Pt(x, 500), scene.Pt(x, 580), twin),
		)
	}
	links.Children = append(links.Children,
		scene.Caption(10, 180, "uAgents Protocol", scene.SizeXS, manager.Stroke),
		scene.Caption(10, 360, "TCP", scene.SizeXS, vehicle.Stroke),
		scene.Caption(10, 545, "MQTT Pub/Sub", scene.SizeXS, twin.Stroke),
	)
	s.Add(links)

	s.Add(scene.Caption(710, 240, "Uses", scene.SizeXS, routing.Stroke))
	return s
}

func bidi(a, b scene.Point, t Tone) scene.Line {
	id := "arrow-" + t.Stroke[1:]
	return scene.Line{
		From:        a,
		To:          b,
		Style:       scene.Style{Stroke: t.Stroke, StrokeWidth: 2},
		MarkerStart: id + "-reverse",
		MarkerEnd:   id,
	}
}
