// Package server exposes the procmap engine over HTTP.
//
// The server is a thin adapter: it deserializes raw graph and citation
// payloads, hands them to the pipeline, and serializes the already-sanitized
// results. The one piece of rendering policy living here is link safety:
// citation segments gain an href field that has passed through
// safeurl.Href, so unsafe URLs reach clients already neutralized while the
// citation's own metadata is preserved.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/procmap/procmap/internal/config"
	"github.com/procmap/procmap/pkg/layout"
	"github.com/procmap/procmap/pkg/pipeline"
)

// LayoutArchive is the slice of pkg/store the server needs. It is an
// interface so tests can run without a MongoDB instance.
type LayoutArchive interface {
	Save(ctx context.Context, hash string, p layout.Positioned) error
	Get(ctx context.Context, hash string) (layout.Positioned, error)
}

// Server wires the pipeline and the optional layout archive into an HTTP
// handler.
type Server struct {
	runner  *pipeline.Runner
	archive LayoutArchive // nil when archiving is disabled
	cfg     config.Config
	logger  *log.Logger
}

// New creates a server. archive may be nil.
func New(runner *pipeline.Runner, archive LayoutArchive, cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, archive: archive, cfg: cfg, logger: logger}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/annotate", s.handleAnnotate)
		r.Get("/layouts/{hash}", s.handleGetLayout)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
