// Package server exposes the assessment engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gzhole/gravilog/internal/assess"
	"github.com/gzhole/gravilog/internal/knowledge"
	"github.com/gzhole/gravilog/internal/logger"
)

const (
	RequestIDHeader = "X-Request-ID"
	maxBodyBytes    = 1 << 20
)

type Config struct {
	ListenAddr string
	Logger     *logger.Logger
}

// Server is the HTTP surface for an assess.Engine.
type Server struct {
	cfg    Config
	engine *assess.Engine
	router chi.Router
	log    *logger.Logger
}

func NewServer(cfg Config, engine *assess.Engine) *Server {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	s := &Server{
		cfg:    cfg,
		engine: engine,
		router: chi.NewRouter(),
		log:    log.With("server"),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	r.Options("/health", s.optionsHandler("GET"))
	r.Options("/assess", s.optionsHandler("POST"))
	r.Options("/symptoms", s.optionsHandler("GET"))

	r.Get("/health", s.handleHealth)
	r.Post("/assess", s.handleAssess)
	r.Get("/symptoms", s.handleSymptoms)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods+", OPTIONS")
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP tags every request with an ID and logs it. Request bodies are
// never logged since they carry symptom text.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, id)

	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.router.ServeHTTP(rec, r)

	s.log.Info("http_request",
		logger.F("request_id", id),
		logger.F("method", r.Method),
		logger.F("path", r.URL.Path),
		logger.F("status", rec.status),
		logger.F("duration_ms", time.Since(start).Milliseconds()),
	)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := s.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", logger.F("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// --- HTTP handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Health())
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req assess.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body: unexpected data after request object")
		return
	}

	writeJSON(w, http.StatusOK, s.engine.Assess(req))
}

func (s *Server) handleSymptoms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, knowledge.Catalog())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
