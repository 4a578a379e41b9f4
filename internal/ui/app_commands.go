package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"dtmas/internal/export"
	"dtmas/internal/view"
)

var errNoExporter = errors.New("export is not configured")

// exportViewCmd writes one view off the update loop.
func exportViewCmd(store *export.Store, reg *view.Registry, id view.ID) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return ExportDoneMsg{IDs: []view.ID{id}, Err: errNoExporter}
		}
		path, err := store.ExportView(reg, id)
		msg := ExportDoneMsg{IDs: []view.ID{id}, Err: err}
		if err == nil {
			msg.Paths = []string{path}
		}
		return msg
	}
}

// exportAllCmd writes every view in display order.
func exportAllCmd(store *export.Store, reg *view.Registry) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return ExportDoneMsg{IDs: reg.IDs(), Err: errNoExporter}
		}
		paths, err := store.ExportAll(reg)
		return ExportDoneMsg{IDs: reg.IDs(), Paths: paths, Err: err}
	}
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
