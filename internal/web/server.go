// Package web serves the diagram viewer over HTTP: an HTML page with a tab
// per view, and the raw SVG of each view.
//
// The server keeps no selection state. Every request builds its own
// view.Switcher from the shared, immutable registry.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"dtmas/internal/scene"
	"dtmas/internal/telemetry"
	"dtmas/internal/view"
)

// DefaultAddr is the default listen address.
const DefaultAddr = ":8765"

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// Config configures NewServer. Registry is required.
type Config struct {
	Addr     string
	Registry *view.Registry
	Logger   *slog.Logger
	Tracer   *telemetry.Tracer
	Title    string
	Footer   string // markdown note shown under every view
}

// Server hosts the viewer.
type Server struct {
	reg    *view.Registry
	logger *slog.Logger
	tracer *telemetry.Tracer
	title  string
	footer string
	server *http.Server
	addr   string // set by Start
}

// NewServer creates a server; call Start to listen.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Registry == nil {
		return nil, errors.New("web: registry is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Tracer == nil {
		t, err := telemetry.New(context.Background(), telemetry.Config{})
		if err != nil {
			return nil, err
		}
		cfg.Tracer = t
	}

	s := &Server{
		reg:    cfg.Registry,
		logger: cfg.Logger,
		tracer: cfg.Tracer,
		title:  cfg.Title,
		footer: cfg.Footer,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /views", s.handleList)
	mux.HandleFunc("GET /views/{id}", s.handleSVG)

	s.server = &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}
	return s, nil
}

// Handler returns the routing handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.server.Handler }

// Addr returns the bound address once started, the configured one before.
func (s *Server) Addr() string {
	if s.addr != "" {
		return s.addr
	}
	return s.server.Addr
}

// Start binds the listen address and serves in a background goroutine.
// Bind errors are returned; errors after that are logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.server.Addr, err)
	}
	s.addr = ln.Addr().String()
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("web server", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// page is the index template's data.
type page struct {
	Title      string
	Controls   []view.Control
	SVG        template.HTML
	Caption    string
	Footer     string
	Error      string
	Suggestion view.ID
}

// handleIndex serves GET /?view=<id>.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sw := s.switcher(r.Context())
	p := page{Title: s.title, Footer: plain(s.footer)}
	status := http.StatusOK

	if raw := r.URL.Query().Get("view"); raw != "" {
		if err := sw.Select(view.ID(raw)); err != nil {
			s.reject(r.Context(), raw, err)
			status = http.StatusNotFound
			p.Error = err.Error()
			var inv *view.InvalidViewError
			if errors.As(err, &inv) {
				p.Suggestion = inv.Suggestion
			}
		}
	}

	f := sw.Render()
	p.Controls = f.Controls
	if p.Error == "" {
		svg, err := scene.SVG(f.Scene)
		if err != nil {
			s.logger.Error("encode view", "view", f.Active, "error", err)
			http.Error(w, "encode view", http.StatusInternalServerError)
			return
		}
		p.SVG = template.HTML(inline(svg))
		p.Caption = plain(f.Caption)
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, p); err != nil {
		s.logger.Error("render page", "error", err)
		http.Error(w, "render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// viewInfo is one element of GET /views.
type viewInfo struct {
	ID     view.ID `json:"id"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// handleList serves GET /views for a fresh switcher.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	controls := s.switcher(r.Context()).Render().Controls
	out := make([]viewInfo, len(controls))
	for i, c := range controls {
		out[i] = viewInfo{ID: c.ID, Label: c.Label, Active: c.Selected}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.logger.Error("encode view list", "error", err)
	}
}

// handleSVG serves GET /views/{id} as a standalone SVG document.
func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	e, err := s.reg.Lookup(view.ID(raw))
	if err != nil {
		s.reject(r.Context(), raw, err)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	svg, err := scene.SVG(e.Render())
	if err != nil {
		s.logger.Error("encode view", "view", e.ID, "error", err)
		http.Error(w, "encode view", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) switcher(ctx context.Context) *view.Switcher {
	return view.NewSwitcher(s.reg, view.WithOnChange(func(from, to view.ID) {
		s.logger.Debug("view selected", "from", from, "to", to)
		s.tracer.ViewSelected(ctx, from, to)
	}))
}

func (s *Server) reject(ctx context.Context, raw string, err error) {
	s.logger.Warn("rejected view selection", "view", raw, "error", err)
	s.tracer.SelectionRejected(ctx, raw, err)
}

// inline drops the XML prolog and anything else before the root element so
// the document can sit inside HTML.
func inline(svg []byte) []byte {
	if i := bytes.Index(svg, []byte("<svg")); i > 0 {
		return svg[i:]
	}
	return svg
}

// plain strips the inline markdown used in captions; the page shows text.
var plainReplacer = strings.NewReplacer("**", "", "`", "")

func plain(md string) string { return plainReplacer.Replace(md) }
