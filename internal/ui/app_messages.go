package ui

import "dtmas/internal/view"

// SelectViewMsg asks for a view by id. Unknown ids are reported, not fatal.
type SelectViewMsg struct {
	ID view.ID
}

// NextViewMsg activates the following view (tab, right, l).
type NextViewMsg struct{}

// PrevViewMsg activates the preceding view (shift+tab, left, h).
type PrevViewMsg struct{}

// ExportViewMsg writes the active view as SVG (SPC e).
type ExportViewMsg struct{}

// ExportAllMsg writes every view as SVG (SPC E).
type ExportAllMsg struct{}

// ExportDoneMsg carries the outcome of an export. Paths holds what was
// written before any failure.
type ExportDoneMsg struct {
	IDs   []view.ID
	Paths []string
	Err   error
}

// ToggleFullscreenMsg hides or restores the chrome around the diagram (SPC f).
type ToggleFullscreenMsg struct{}

// DismissModalMsg closes the topmost overlay.
type DismissModalMsg struct{}
