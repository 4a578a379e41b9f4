package ui

import (
	"context"
	"fmt"

	"dtmas/internal/view"
)

// handleSelect applies a select request. An unknown id keeps the active view
// and opens a notice.
func (a *AppModel) handleSelect(id view.ID) {
	if err := a.Switcher.Select(id); err != nil {
		a.Logger.Warn("rejected view selection", "view", id, "error", err)
		a.Tracer.SelectionRejected(context.Background(), string(id), err)
		a.Overlays.Push(Overlay{View: NewErrorModal("Unknown view", err), Dismiss: "esc"})
		return
	}
	a.refresh()
}

// handleExportDone records each written file and reports the outcome.
func (a *AppModel) handleExportDone(msg ExportDoneMsg) {
	ctx := context.Background()
	for i, p := range msg.Paths {
		a.Tracer.Exported(ctx, msg.IDs[i], p, nil)
	}
	if msg.Err != nil {
		var failed view.ID
		if n := len(msg.Paths); n < len(msg.IDs) {
			failed = msg.IDs[n]
		}
		a.Logger.Error("export failed", "view", failed, "error", msg.Err)
		a.Tracer.Exported(ctx, failed, "", msg.Err)
		a.Overlays.Push(Overlay{View: NewErrorModal("Export failed", msg.Err), Dismiss: "esc"})
		return
	}
	a.Logger.Info("exported views", "count", len(msg.Paths))
	label := fmt.Sprintf("Wrote %d SVG file(s)", len(msg.Paths))
	a.Overlays.Push(Overlay{View: NewNoticeModal("Exported", label, msg.Paths...), Dismiss: "esc"})
}

func (a *AppModel) toggleFullscreen() {
	if a.Mode == ModeFullscreen {
		a.Mode = ModeNormal
	} else {
		a.Mode = ModeFullscreen
	}
	a.relayout()
}
