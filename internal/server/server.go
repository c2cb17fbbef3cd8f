// Package server exposes the chord diagram pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /v1/chords                   list chords (?q= filters by name)
//	GET    /v1/chords/{name}.{format}   render a stored chord
//	GET    /v1/render.{format}          render ?frets=&fingers=
//	PUT    /v1/chords/{name}            store a chord (writable stores only)
//	DELETE /v1/chords/{name}            remove a chord (writable stores only)
//
// Render routes accept mode, width, height and scale query parameters.
// Errors are returned as {"code","message","request_id"} with a status
// derived from the error code.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/matzehuels/chordview/pkg/chord/library"
	"github.com/matzehuels/chordview/pkg/errors"
	"github.com/matzehuels/chordview/pkg/pipeline"
	"github.com/matzehuels/chordview/pkg/render/fretboard/styles"
)

// DefaultAddr is the default listen address.
const DefaultAddr = ":8080"

const shutdownTimeout = 10 * time.Second

// Config configures a Server.
type Config struct {
	Addr string

	// Runner renders diagrams. Required.
	Runner *pipeline.Runner

	// Store resolves chord names. Nil selects the embedded library.
	Store library.Store

	// Writable enables PUT and DELETE on /v1/chords.
	Writable bool

	// Style is applied to every render. Nil selects styles.Default.
	Style *styles.Config

	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string

	Logger *log.Logger
}

// Server is the chordview HTTP API.
type Server struct {
	cfg    Config
	store  library.Store
	logger *log.Logger
	router chi.Router
}

// New builds a server. Chord lookups go through the runner's cache under
// cache.TTLChord.
func New(cfg Config) (*Server, error) {
	if cfg.Runner == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "server requires a pipeline runner")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	store := cfg.Store
	if store == nil {
		store = library.NewMemoryStore(library.Default())
	}

	s := &Server{
		cfg:    cfg,
		store:  newCachedStore(store, cfg.Runner.Cache, cfg.Runner.Keyer),
		logger: cfg.Logger,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(s.corsHandler().Handler)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/chords", s.handleListChords)
		r.Get("/chords/{name}.{format}", s.handleRenderChord)
		r.Get("/render.{format}", s.handleRender)
		if s.cfg.Writable {
			r.Put("/chords/{name}", s.handlePutChord)
			r.Delete("/chords/{name}", s.handleDeleteChord)
		}
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

func (s *Server) corsHandler() *cors.Cors {
	methods := []string{http.MethodGet, http.MethodHead}
	if s.cfg.Writable {
		methods = append(methods, http.MethodPut, http.MethodDelete)
	}
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: methods,
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader, cacheHeader},
		MaxAge:         600,
	})
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr, "writable", s.cfg.Writable)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(errors.ErrCodeInternal, err, "listen on %s", s.cfg.Addr)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(errors.ErrCodeInternal, err, "serve")
	}
	return nil
}

// Close releases the store.
func (s *Server) Close() error { return s.store.Close() }
