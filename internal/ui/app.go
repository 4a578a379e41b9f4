package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dtmas/internal/export"
	"dtmas/internal/telemetry"
	"dtmas/internal/ui/textutil"
	"dtmas/internal/view"
)

// Options configures NewAppModel. Only Registry is required.
type Options struct {
	Registry *view.Registry
	Exporter *export.Store
	Tracer   *telemetry.Tracer
	Logger   *slog.Logger
	Title    string
	Footer   string  // markdown shown under every caption
	Captions bool    // show captions under the diagram
	Initial  view.ID // selected once the program starts; "" keeps the first view
}

// AppModel is the root model: the view switcher, the diagram pane and the
// overlays drawn above it.
type AppModel struct {
	Mode       AppMode
	Switcher   *view.Switcher
	Diagram    *DiagramView
	KeyHandler *KeyHandler
	Overlays   OverlayStack
	Exporter   *export.Store
	Tracer     *telemetry.Tracer
	Logger     *slog.Logger
	Title      string
	Initial    view.ID

	width, height int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model.
func NewAppModel(opts Options) (*AppModel, error) {
	if opts.Registry == nil {
		return nil, errors.New("ui: registry is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	tracer := opts.Tracer
	if tracer == nil {
		var err error
		if tracer, err = telemetry.New(context.Background(), telemetry.Config{}); err != nil {
			return nil, err
		}
	}

	m := &AppModel{
		Mode:     ModeNormal,
		Diagram:  NewDiagramView(opts.Captions, opts.Footer),
		Exporter: opts.Exporter,
		Tracer:   tracer,
		Logger:   logger,
		Title:    opts.Title,
		Initial:  opts.Initial,
	}
	m.Switcher = view.NewSwitcher(opts.Registry, view.WithOnChange(func(from, to view.ID) {
		m.Logger.Debug("view selected", "from", from, "to", to)
		m.Tracer.ViewSelected(context.Background(), from, to)
	}))
	m.KeyHandler = NewKeyHandler(newKeybinds(opts.Registry))
	m.Diagram.SetFrame(m.Switcher.Render())
	return m, nil
}

// newKeybinds builds the key map for the views in reg.
func newKeybinds(reg *view.Registry) *KeybindRegistry {
	r := NewKeybindRegistry()
	r.BindKeys(msgCmd(NextViewMsg{}), "Next view", "tab", "right", "l")
	r.BindKeys(msgCmd(PrevViewMsg{}), "Previous view", "shift+tab", "left", "h")
	r.BindKeys(tea.Quit, "Quit", "q", "ctrl+c", "SPC q")
	for i := 0; i < min(reg.Len(), 9); i++ {
		e, _ := reg.At(i)
		n := strconv.Itoa(i + 1)
		r.BindKeys(msgCmd(SelectViewMsg{ID: e.ID}), e.Label, n, "SPC v "+n)
	}
	r.BindWithDesc("SPC e", msgCmd(ExportViewMsg{}), "Export view")
	r.BindWithDesc("SPC E", msgCmd(ExportAllMsg{}), "Export all")
	r.BindWithDesc("SPC f", msgCmd(ToggleFullscreenMsg{}), "Fullscreen")
	r.BindWithDescForMode("esc", msgCmd(ToggleFullscreenMsg{}), "Leave fullscreen", []AppMode{ModeFullscreen})
	return r
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	if a.Initial != "" {
		return msgCmd(SelectViewMsg{ID: a.Initial})
	}
	return a.Diagram.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.relayout()
		return a, nil
	case SelectViewMsg:
		a.handleSelect(msg.ID)
		return a, nil
	case NextViewMsg:
		a.Switcher.Next()
		a.refresh()
		return a, nil
	case PrevViewMsg:
		a.Switcher.Prev()
		a.refresh()
		return a, nil
	case ExportViewMsg:
		return a, exportViewCmd(a.Exporter, a.Switcher.Registry(), a.Switcher.Active())
	case ExportAllMsg:
		return a, exportAllCmd(a.Exporter, a.Switcher.Registry())
	case ExportDoneMsg:
		a.handleExportDone(msg)
		return a, nil
	case ToggleFullscreenMsg:
		a.toggleFullscreen()
		return a, nil
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case tea.KeyMsg:
		// Overlays take input first
		if cmd, ok := a.Overlays.UpdateTop(msg); ok {
			return a, cmd
		}
		waiting := a.KeyHandler.LeaderWaiting
		if consumed, cmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
			if a.KeyHandler.LeaderWaiting != waiting {
				a.relayout()
			}
			return a, cmd
		}
	}

	v, cmd := a.Diagram.Update(msg)
	if d, ok := v.(*DiagramView); ok {
		a.Diagram = d
	}
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if top, ok := a.Overlays.Peek(); ok {
		modal := top.View.View()
		if a.width > 0 && a.height > 0 {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
		}
		return modal
	}

	parts := []string{a.Diagram.View(), a.statusLine()}
	if a.Mode == ModeNormal {
		parts = append([]string{a.header()}, parts...)
	}
	if help := RenderKeybindHelp(a.KeyHandler, a.Mode); help != "" {
		parts = append(parts, help)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *AppModel) header() string {
	controls := view.Controls(a.Switcher.Registry().List(), a.Switcher.Active())
	bar := renderTabBar(controls, max(a.width, 40))
	if a.Title == "" {
		return bar
	}
	return Styles.Title.Render(a.Title) + "\n" + bar
}

func (a *AppModel) statusLine() string {
	reg := a.Switcher.Registry()
	id := a.Switcher.Active()
	e, _ := reg.Get(id)
	status := fmt.Sprintf("%d/%d %s", reg.Index(id)+1, reg.Len(), e.Label)
	hint := "  tab/shift+tab switch · 1-9 jump · SPC commands · q quit"
	if a.Mode == ModeFullscreen {
		hint = "  esc leave fullscreen"
	}
	if a.width > 0 {
		status = textutil.Truncate(status, a.width)
		hint = textutil.Truncate(hint, a.width-textutil.VisualWidth(status))
	}
	return Styles.Status.Render(status) + Styles.Hint.Render(hint)
}

// relayout gives the diagram pane whatever the chrome leaves.
func (a *AppModel) relayout() {
	if a.width <= 0 || a.height <= 0 {
		return
	}
	chrome := 1 // status line
	if a.Mode == ModeNormal {
		chrome += lipgloss.Height(a.header())
	}
	if help := RenderKeybindHelp(a.KeyHandler, a.Mode); help != "" {
		chrome += lipgloss.Height(help)
	}
	a.Diagram.SetSize(a.width, max(a.height-chrome, 1))
}

func (a *AppModel) refresh() {
	a.Diagram.SetFrame(a.Switcher.Render())
}
