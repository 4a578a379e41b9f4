// Package ui is the terminal host for the diagram viewer, built on Bubble Tea.
//
// Pieces:
//   - AppModel: owns the view.Switcher and routes messages; AsTeaModel adapts it
//   - DiagramView: scrollable raster of the active scene plus its caption
//   - KeybindRegistry / KeyHandler: single keys and SPC-led sequences
//   - OverlayStack: notices drawn over the diagram, topmost gets input first
package ui
