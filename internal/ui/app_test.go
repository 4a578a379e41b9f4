package ui

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"dtmas/internal/diagrams"
	"dtmas/internal/export"
	"dtmas/internal/scene"
	"dtmas/internal/telemetry"
	"dtmas/internal/view"
)

func newTestApp(t *testing.T, opts Options) *appModelAdapter {
	t.Helper()
	if opts.Registry == nil {
		opts.Registry = diagrams.Registry()
	}
	m, err := NewAppModel(opts)
	require.NoError(t, err)
	a := m.AsTeaModel().(*appModelAdapter)
	a.Update(tea.WindowSizeMsg{Width: 200, Height: 60})
	return a
}

// send delivers msg and keeps feeding back whatever its commands yield.
func send(a *appModelAdapter, msg tea.Msg) {
	for i := 0; msg != nil && i < 10; i++ {
		_, cmd := a.Update(msg)
		if cmd == nil {
			return
		}
		msg = cmd()
		if _, quit := msg.(tea.QuitMsg); quit {
			return
		}
	}
}

func TestNewAppModel_RequiresRegistry(t *testing.T) {
	_, err := NewAppModel(Options{})
	assert.Error(t, err)
}

func TestApp_InitialView(t *testing.T) {
	a := newTestApp(t, Options{Title: diagrams.Title})
	assert.Equal(t, view.ID("architecture"), a.Switcher.Active())

	out := a.View()
	assert.Contains(t, out, diagrams.Title)
	assert.Contains(t, out, "[1 System Architecture]")
	assert.Contains(t, out, " 4 Data Transformation ")
	assert.Contains(t, out, "1/5 System Architecture")
}

func TestApp_TabKeysCycle(t *testing.T) {
	a := newTestApp(t, Options{})

	send(a, keyMsg("tab"))
	assert.Equal(t, view.ID("protocol-phase1"), a.Switcher.Active())
	send(a, keyMsg("l"))
	send(a, keyMsg("right"))
	assert.Equal(t, view.ID("dataflow"), a.Switcher.Active())
	send(a, keyMsg("h"))
	assert.Equal(t, view.ID("protocol-phase2"), a.Switcher.Active())
}

func TestApp_PrevWrapsToLast(t *testing.T) {
	a := newTestApp(t, Options{})
	send(a, keyMsg("shift+tab"))
	assert.Equal(t, view.ID("routing"), a.Switcher.Active())
	send(a, keyMsg("left"))
	assert.Equal(t, view.ID("dataflow"), a.Switcher.Active())
}

func TestApp_NumberKeysSelect(t *testing.T) {
	a := newTestApp(t, Options{})
	send(a, keyMsg("4"))
	assert.Equal(t, view.ID("dataflow"), a.Switcher.Active())
	assert.Contains(t, a.View(), "[4 Data Transformation]")

	// Unbound positions fall through to the diagram pane.
	send(a, keyMsg("9"))
	assert.Equal(t, view.ID("dataflow"), a.Switcher.Active())
}

func TestApp_LeaderViewSelect(t *testing.T) {
	a := newTestApp(t, Options{})
	send(a, keyMsg(" "))
	assert.Contains(t, a.View(), "View")
	send(a, keyMsg("v"))
	send(a, keyMsg("5"))
	assert.Equal(t, view.ID("routing"), a.Switcher.Active())
	assert.False(t, a.KeyHandler.LeaderWaiting)
}

func TestApp_InvalidSelectShowsNotice(t *testing.T) {
	var logs bytes.Buffer
	sr := tracetest.NewSpanRecorder()
	tracer := telemetry.NewWithProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	a := newTestApp(t, Options{
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
		Tracer: tracer,
	})
	send(a, keyMsg("3"))

	send(a, SelectViewMsg{ID: "routng"})
	assert.Equal(t, view.ID("protocol-phase2"), a.Switcher.Active())
	require.Equal(t, 1, a.Overlays.Len())
	top, _ := a.Overlays.Peek()
	notice, ok := top.View.(*NoticeModal)
	require.True(t, ok, "expected NoticeModal, got %T", top.View)
	assert.True(t, notice.Failed)
	assert.Contains(t, a.View(), `did you mean "routing"`)

	assert.Contains(t, logs.String(), "rejected view selection")
	spans := sr.Ended()
	require.NotEmpty(t, spans)
	assert.Equal(t, codes.Error, spans[len(spans)-1].Status().Code)

	// Keys go to the overlay, not the switcher.
	send(a, keyMsg("tab"))
	assert.Equal(t, view.ID("protocol-phase2"), a.Switcher.Active())
	send(a, keyMsg("esc"))
	assert.Equal(t, 0, a.Overlays.Len())
}

func TestApp_NoticeEnterDismisses(t *testing.T) {
	a := newTestApp(t, Options{})
	send(a, SelectViewMsg{ID: "bogus"})
	require.Equal(t, 1, a.Overlays.Len())
	send(a, keyMsg("enter"))
	assert.Equal(t, 0, a.Overlays.Len())
}

func TestApp_SelectionLoggedAndTraced(t *testing.T) {
	var logs bytes.Buffer
	sr := tracetest.NewSpanRecorder()
	a := newTestApp(t, Options{
		Logger: slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Tracer: telemetry.NewWithProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))),
	})
	send(a, keyMsg("2"))
	send(a, keyMsg("2")) // already active

	assert.Equal(t, 1, strings.Count(logs.String(), "view selected"))
	require.Len(t, sr.Ended(), 1)
	assert.Equal(t, "view.select", sr.Ended()[0].Name())
}

func TestApp_ExportView(t *testing.T) {
	dir := t.TempDir()
	store, err := export.NewStore(dir)
	require.NoError(t, err)
	a := newTestApp(t, Options{Exporter: store})

	send(a, keyMsg("5"))
	send(a, keyMsg(" "))
	send(a, keyMsg("e"))

	_, err = os.Stat(filepath.Join(dir, "routing.svg"))
	require.NoError(t, err)
	require.Equal(t, 1, a.Overlays.Len())
	top, _ := a.Overlays.Peek()
	assert.False(t, top.View.(*NoticeModal).Failed)
	assert.Contains(t, a.View(), "routing.svg")
}

func TestApp_ExportAll(t *testing.T) {
	dir := t.TempDir()
	store, _ := export.NewStore(dir)
	a := newTestApp(t, Options{Exporter: store})

	send(a, ExportAllMsg{})
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestApp_ExportWithoutStore(t *testing.T) {
	a := newTestApp(t, Options{})
	send(a, ExportViewMsg{})
	require.Equal(t, 1, a.Overlays.Len())
	top, _ := a.Overlays.Peek()
	assert.True(t, top.View.(*NoticeModal).Failed)
}

func TestApp_Fullscreen(t *testing.T) {
	a := newTestApp(t, Options{Title: diagrams.Title})
	send(a, keyMsg(" "))
	send(a, keyMsg("f"))
	assert.Equal(t, ModeFullscreen, a.Mode)
	assert.NotContains(t, a.View(), diagrams.Title)
	assert.Equal(t, 59, a.Diagram.viewport.Height)

	send(a, keyMsg("esc"))
	assert.Equal(t, ModeNormal, a.Mode)
	assert.Contains(t, a.View(), diagrams.Title)
}

func TestApp_InitialOption(t *testing.T) {
	a := newTestApp(t, Options{Initial: "dataflow"})
	cmd := a.Init()
	require.NotNil(t, cmd)
	a.Update(cmd())
	assert.Equal(t, view.ID("dataflow"), a.Switcher.Active())
}

func TestApp_QuitKeys(t *testing.T) {
	a := newTestApp(t, Options{})
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := a.Update(keyMsg(k))
		require.NotNil(t, cmd, k)
		assert.IsType(t, tea.QuitMsg{}, cmd(), k)
	}
}

func TestApp_TracerShutdown(t *testing.T) {
	a := newTestApp(t, Options{})
	assert.NoError(t, a.Tracer.Shutdown(context.Background()))
}

func TestApp_HeaderDoesNotRenderScene(t *testing.T) {
	renders := 0
	reg := view.MustRegistry(
		view.Entry{ID: "a", Label: "A", Render: func() *scene.Scene {
			renders++
			return scene.New("A", 100, 50)
		}},
		view.Entry{ID: "b", Label: "B", Render: func() *scene.Scene { return scene.New("B", 100, 50) }},
	)
	a := newTestApp(t, Options{Registry: reg})
	before := renders

	for range 3 {
		_ = a.View()
	}
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, before, renders)
}

func TestApp_LeaderHelpFitsTerminal(t *testing.T) {
	a := newTestApp(t, Options{Title: diagrams.Title})
	full := a.Diagram.height
	require.Equal(t, 60, lipgloss.Height(a.View()))

	send(a, keyMsg(" "))
	require.True(t, a.KeyHandler.LeaderWaiting)
	assert.Less(t, a.Diagram.height, full)
	assert.Equal(t, 60, lipgloss.Height(a.View()))

	send(a, keyMsg("esc"))
	assert.False(t, a.KeyHandler.LeaderWaiting)
	assert.Equal(t, full, a.Diagram.height)
	assert.Equal(t, 60, lipgloss.Height(a.View()))
}
