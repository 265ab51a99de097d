package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-faster/errors"

	"github.com/melkuo/bylaw-visualizer/pkg/analytics"
	"github.com/melkuo/bylaw-visualizer/pkg/envelope"
	"github.com/melkuo/bylaw-visualizer/pkg/scene"
	"github.com/melkuo/bylaw-visualizer/pkg/scene2d"
	"github.com/melkuo/bylaw-visualizer/pkg/spec"
	"github.com/melkuo/bylaw-visualizer/pkg/validation"
)

// Server is the local development server for interactive bylaw exploration.
// It owns the current bylaw selection; every handler reads a snapshot of it
// under the lock and computes from that snapshot.
type Server struct {
	project *spec.Project
	port    int
	logger  *log.Logger

	mu     sync.Mutex
	active spec.ActiveBylaws
}

// New creates a server for a loaded project. The project's parameters are
// validated once here and the server refuses to start on invalid input.
func New(project *spec.Project, port int, logger *log.Logger) (*Server, error) {
	if r := validation.ValidateProject(project); !r.Valid {
		return nil, errors.Wrap(r.Err(), "project parameters")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		project: project,
		port:    port,
		logger:  logger,
		active:  project.Active,
	}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/bylaws", s.handleBylaws)
	mux.HandleFunc("POST /api/bylaws/{kind}/toggle", s.handleToggle)
	mux.HandleFunc("PUT /api/bylaws/{kind}", s.handleSet)
	mux.HandleFunc("DELETE /api/bylaws", s.handleReset)
	mux.HandleFunc("GET /api/envelope", s.handleEnvelope)
	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /api/plan", s.handlePlan)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /api/spec", s.handleSpec)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return s.logRequests(mux)
}

// Start launches the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info("bylaw visualizer starting", "url", "http://localhost"+addr)
	s.logger.Info("project loaded", "name", s.project.Name, "lot", fmt.Sprintf("%.1fm x %.1fm", s.project.Lot.Width, s.project.Lot.Depth))

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// Active returns the current selection.
func (s *Server) Active() spec.ActiveBylaws {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// update applies fn to the selection under the lock and returns the result.
func (s *Server) update(fn func(spec.ActiveBylaws) (spec.ActiveBylaws, error)) (spec.ActiveBylaws, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.active)
	if err != nil {
		return s.active, err
	}
	s.active = next
	return next, nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start).Round(time.Microsecond))
	})
}

type selectionResponse struct {
	Active   spec.ActiveBylaws `json:"active"`
	Envelope envelope.Envelope `json:"envelope"`
}

func (s *Server) selectionResponse(active spec.ActiveBylaws) selectionResponse {
	return selectionResponse{
		Active:   active,
		Envelope: envelope.Compute(s.project.Lot, s.project.Parameters, active),
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Bylaw Visualizer</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Bylaw Visualizer</h1>
<p>Renderer not embedded. Fetch <code>/api/scene</code> for the scene graph.</p>
</div>
</body></html>`)
}

func (s *Server) handleBylaws(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"bylaws": spec.Catalog(s.project.Parameters),
		"active": s.Active(),
	})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	k, ok := s.pathKind(w, r)
	if !ok {
		return
	}
	active, err := s.update(func(a spec.ActiveBylaws) (spec.ActiveBylaws, error) {
		return a.Toggle(k)
	})
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	on, _ := active.Enabled(k)
	s.logger.Info("bylaw toggled", "kind", k, "enabled", on)
	writeJSON(w, http.StatusOK, s.selectionResponse(active))
}

func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	k, ok := s.pathKind(w, r)
	if !ok {
		return
	}
	var body struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "decode body"))
		return
	}
	if body.Enabled == nil {
		writeError(w, http.StatusBadRequest, errors.New(`body must contain "enabled"`))
		return
	}
	active, err := s.update(func(a spec.ActiveBylaws) (spec.ActiveBylaws, error) {
		return a.With(k, *body.Enabled)
	})
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	s.logger.Info("bylaw set", "kind", k, "enabled", *body.Enabled)
	writeJSON(w, http.StatusOK, s.selectionResponse(active))
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	active, _ := s.update(func(spec.ActiveBylaws) (spec.ActiveBylaws, error) {
		return spec.ActiveBylaws{}, nil
	})
	s.logger.Info("bylaws reset")
	writeJSON(w, http.StatusOK, s.selectionResponse(active))
}

func (s *Server) handleEnvelope(w http.ResponseWriter, _ *http.Request) {
	active := s.Active()
	e, summary, report := analytics.Resolve(s.project.Lot, s.project.Parameters, active)
	writeJSON(w, http.StatusOK, map[string]any{
		"active":   active,
		"envelope": e,
		"summary":  summary,
		"warnings": report.Warnings,
	})
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, scene.Assemble(s.project, s.Active()))
}

func (s *Server) handlePlan(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, scene2d.Assemble2D(s.project, s.Active()))
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	_, _, report := analytics.Resolve(s.project.Lot, s.project.Parameters, s.Active())
	writeJSON(w, http.StatusOK, report)
}

// handleSpec returns the loaded project with the live selection in place of
// the one it started with.
func (s *Server) handleSpec(w http.ResponseWriter, _ *http.Request) {
	p := *s.project
	p.Active = s.Active()
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) pathKind(w http.ResponseWriter, r *http.Request) (spec.Kind, bool) {
	k, err := spec.ParseKind(r.PathValue("kind"))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, spec.ErrUnknownKind) {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return "", false
	}
	return k, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": errors.Wrap(err, "encode response").Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
