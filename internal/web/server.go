// Package web provides the HTTP server for the rentdesk REST API.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/evcraddock/rentdesk/internal/logging"
	"github.com/evcraddock/rentdesk/internal/resource"
	"github.com/evcraddock/rentdesk/internal/store"
)

// maxBodyBytes bounds request bodies. Lease documents are stored inline as
// base64 data URLs, so this sits above document.MaxSize after encoding.
const maxBodyBytes = 10 << 20

// Options configures the server.
type Options struct {
	// AllowedOrigins lists the browser origins allowed by CORS. Empty
	// allows any origin.
	AllowedOrigins []string
}

// Server is the REST API HTTP server.
type Server struct {
	store    *store.Store
	router   *mux.Router
	registry *prometheus.Registry
	metrics  *metrics
	handler  http.Handler
}

// NewServer creates an API server backed by st.
func NewServer(st *store.Store, opts Options) *Server {
	s := &Server{
		store:    st,
		router:   mux.NewRouter(),
		registry: prometheus.NewRegistry(),
	}
	s.metrics = newMetrics(s.registry, st)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.metrics.instrument)
	api.HandleFunc("/_batch", s.apiBatch).Methods(http.MethodPost)
	api.HandleFunc("/settings", s.apiGetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.apiPatchSettings).Methods(http.MethodPatch)
	api.HandleFunc("/settings/{id:[0-9]+}", s.apiGetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings/{id:[0-9]+}", s.apiPatchSettings).Methods(http.MethodPatch)
	api.HandleFunc("/{resource}", s.apiList).Methods(http.MethodGet)
	api.HandleFunc("/{resource}", s.apiCreate).Methods(http.MethodPost)
	api.HandleFunc("/{resource}/{id:[0-9]+}", s.apiGet).Methods(http.MethodGet)
	api.HandleFunc("/{resource}/{id:[0-9]+}", s.apiPatch).Methods(http.MethodPatch, http.MethodPut)
	api.HandleFunc("/{resource}/{id:[0-9]+}", s.apiDelete).Methods(http.MethodDelete)
	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiError(w, "not found", http.StatusNotFound)
	})

	co := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", logging.RequestIDHeader},
		ExposedHeaders: []string{logging.RequestIDHeader},
	})
	s.handler = co.Handler(logging.WithRequestID(logging.RequestLogger(s.router)))

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on port until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting API server", "addr", fmt.Sprintf("http://localhost:%d/api", port))
		errCh <- srv.ListenAndServe()
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
	slog.Info("shutting down API server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// handleHealth reports liveness and whether the database answers.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.Count(r.Context(), resource.Properties); err != nil {
		apiError(w, fmt.Sprintf("database unavailable: %v", err), http.StatusServiceUnavailable)
		return
	}
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
