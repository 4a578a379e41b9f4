package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"dtmas/internal/scene"
	"dtmas/internal/view"
)

// rasterKey identifies one painted diagram.
type rasterKey struct {
	id    view.ID
	width int
}

// DiagramView shows the active scene as a scrollable character raster with
// its caption underneath.
type DiagramView struct {
	frame    view.Frame
	viewport viewport.Model
	width    int
	height   int
	captions bool
	footer   string

	rasters  map[rasterKey]string
	notes    map[view.ID]string // rendered captions
	painted  int                // raster cache misses
	colorful bool
}

// Ensure DiagramView implements View
var _ View = (*DiagramView)(nil)

// NewDiagramView creates an empty diagram pane. footer is markdown appended
// to every caption.
func NewDiagramView(captions bool, footer string) *DiagramView {
	return &DiagramView{
		viewport: viewport.New(80, 20),
		width:    80,
		height:   20,
		captions: captions,
		footer:   footer,
		rasters:  make(map[rasterKey]string),
		notes:    make(map[view.ID]string),
		colorful: true,
	}
}

// Init implements View
func (v *DiagramView) Init() tea.Cmd {
	return nil
}

// Update implements View
func (v *DiagramView) Update(msg tea.Msg) (View, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "j", "down":
			v.viewport.LineDown(1)
			return v, nil
		case "k", "up":
			v.viewport.LineUp(1)
			return v, nil
		case "ctrl+d", "pgdown":
			v.viewport.PageDown()
			return v, nil
		case "ctrl+u", "pgup":
			v.viewport.PageUp()
			return v, nil
		case "g", "home":
			v.viewport.GotoTop()
			return v, nil
		case "G", "end":
			v.viewport.GotoBottom()
			return v, nil
		}
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View implements View
func (v *DiagramView) View() string {
	return v.viewport.View()
}

// SetFrame shows f, scrolling back to the top when the view changed.
func (v *DiagramView) SetFrame(f view.Frame) {
	changed := f.Active != v.frame.Active
	v.frame = f
	v.refreshContent()
	if changed {
		v.viewport.GotoTop()
	}
}

// SetSize sets the pane's outer size.
func (v *DiagramView) SetSize(width, height int) {
	if w := max(width, 1); w != v.width {
		// Paints at other widths are stale after a resize.
		clear(v.rasters)
	}
	v.width = max(width, 1)
	v.height = max(height, 1)
	v.viewport.Width = v.width
	v.viewport.Height = v.height
	v.refreshContent()
}

// SetCaptions toggles the caption block under the diagram.
func (v *DiagramView) SetCaptions(on bool) {
	v.captions = on
	v.refreshContent()
}

// Content returns everything the viewport scrolls over.
func (v *DiagramView) Content() string {
	if v.frame.Scene == nil {
		return Styles.Muted.Render("(no view)")
	}
	parts := []string{v.raster(v.frame.Active, v.frame.Scene)}
	if v.captions {
		if note := v.caption(v.frame.Active, v.frame.Caption); note != "" {
			parts = append(parts, note)
		}
	}
	return strings.Join(parts, "\n")
}

func (v *DiagramView) refreshContent() {
	v.viewport.SetContent(v.Content())
}

// raster paints s at the pane width, reusing earlier paints of the same
// view at the same width.
func (v *DiagramView) raster(id view.ID, s *scene.Scene) string {
	k := rasterKey{id: id, width: v.width}
	if out, ok := v.rasters[k]; ok {
		return out
	}
	out := scene.Rasterize(s, v.width).Render(v.colorful)
	v.rasters[k] = out
	v.painted++
	return out
}

// caption renders the view's markdown plus the footer with glamour, falling
// back to the raw text if rendering fails.
func (v *DiagramView) caption(id view.ID, md string) string {
	if out, ok := v.notes[id]; ok {
		return out
	}
	src := strings.TrimSpace(strings.Join([]string{md, v.footer}, "\n\n"))
	if src == "" {
		return ""
	}
	out, err := glamour.Render(src, "dark")
	if err != nil {
		out = src
	}
	out = strings.TrimRight(out, "\n")
	v.notes[id] = out
	return out
}
