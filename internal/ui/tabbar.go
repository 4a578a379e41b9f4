package ui

import (
	"fmt"
	"strings"

	"dtmas/internal/ui/textutil"
	"dtmas/internal/view"
)

const minTabWidth = 6

// renderTabBar draws one tab per control, numbered from 1. The selected tab
// is bracketed so it stays distinguishable without color. Labels shrink to
// share width.
func renderTabBar(controls []view.Control, width int) string {
	if len(controls) == 0 {
		return ""
	}
	per := max((width-(len(controls)-1))/len(controls), minTabWidth)
	tabs := make([]string, len(controls))
	for i, c := range controls {
		label := textutil.Truncate(fmt.Sprintf("%d %s", c.Index+1, c.Label), per-2)
		if c.Selected {
			tabs[i] = Styles.TabActive.Render("[" + label + "]")
		} else {
			tabs[i] = Styles.Tab.Render(" " + label + " ")
		}
	}
	return Styles.TabBar.Render(strings.Join(tabs, " "))
}
