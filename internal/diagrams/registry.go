// Package diagrams holds the five static diagrams of the digital-twin
// multi-agent system and registers them as views.
package diagrams

import "dtmas/internal/view"

// Title is the heading hosts show above the view selector.
const Title = "Digital Twin Multi-Agent System Diagrams"

// FooterNote is shown under every view.
const FooterNote = "**FIPA Compliant Protocol:** The interaction follows Contract Net " +
	"Protocol standards with proper message performatives (cfp, propose, refuse, " +
	"accept-proposal, reject, inform-done) and decision points."

// Entries returns the views in display order.
func Entries() []view.Entry {
	return []view.Entry{
		{
			ID:      "architecture",
			Label:   "System Architecture",
			Caption: "Manager, vehicle agents, digital twins and the simulator, with the `uAgents`, `TCP` and `MQTT` links between layers.",
			Render:  Architecture,
		},
		{
			ID:      "protocol-phase1",
			Label:   "Protocol: Proposal & Assignment",
			Caption: "Call for proposals, per-vehicle route estimation and selection of the fastest **propose**.",
			Render:  ProtocolPhase1,
		},
		{
			ID:      "protocol-phase2",
			Label:   "Protocol: Execution & Completion",
			Caption: "Waypoint-by-waypoint execution through the twin until the destination is reached.",
			Render:  ProtocolPhase2,
		},
		{
			ID:      "dataflow",
			Label:   "Data Transformation",
			Caption: "How a digital twin translates between agent commands and simulator telemetry.",
			Render:  DataFlow,
		},
		{
			ID:      "routing",
			Label:   "Routing Example",
			Caption: "Same trip, three priorities: distance, carbon and cost.",
			Render:  Routing,
		},
	}
}

// Registry returns a registry of Entries.
func Registry() *view.Registry {
	return view.MustRegistry(Entries()...)
}
