// Package server implements the HTTP API over the automaton pipeline:
// automata are stored as definitions, operations run through the shared
// pipeline runner, and diagrams are rendered on demand.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/automatalib/automata/pkg/cache"
	"github.com/automatalib/automata/pkg/pipeline"
	"github.com/automatalib/automata/pkg/store"
)

// Server wires the router, the pipeline runner, and the automaton store.
type Server struct {
	cfg        Config
	logger     *log.Logger
	runner     *pipeline.Runner
	store      store.Store
	cache      cache.Cache
	httpServer *http.Server
}

// New builds a server from its configuration, connecting the configured
// cache and store backends.
func New(ctx context.Context, cfg Config, logger *log.Logger) (*Server, error) {
	c, err := newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	st, err := newStore(ctx, cfg)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		runner: pipeline.NewRunner(c, logger),
		store:  st,
		cache:  c,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func newCache(ctx context.Context, cfg Config) (cache.Cache, error) {
	switch cfg.Cache {
	case "", "memory":
		return cache.NewMemoryCache(), nil
	case "null":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache)
	}
}

func newStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.Store {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

// routes builds the chi router. Exposed for handler tests.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/automata", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/run", s.handleRun)
			r.Get("/diagram.dot", s.handleDiagramDOT)
			r.Get("/diagram.svg", s.handleDiagramSVG)
		})
	})

	r.Post("/operations/{op}", s.handleOperation)
	r.Post("/checks/{predicate}", s.handleCheck)

	return r
}

// ListenAndServe runs the HTTP server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.httpServer.Shutdown(shutdownCtx)

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCancel()
	if cerr := s.store.Close(closeCtx); cerr != nil && err == nil {
		err = cerr
	}
	if cerr := s.cache.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// logRequests logs one line per request with method, path, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	})
}
