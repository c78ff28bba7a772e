// Package stubserver is a local stand-in for the remote record store:
// the same REST surface the production API exposes, backed by sqlite.
// Useful for demos and for exercising the client's rollback paths via
// injected write failures.
package stubserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"taxdesk/internal/models"
)

// Config holds stub server settings.
type Config struct {
	ListenAddr string
	// FailRate injects transport-level failures into that fraction of
	// PUT requests (0 disables, 1 fails everything).
	FailRate float64
}

// Server is the stub record store HTTP server.
type Server struct {
	config  Config
	http    *http.Server
	db      *DB
	metrics *Metrics
}

// NewServer creates a stub server over the given database.
func NewServer(cfg Config, db *DB) *Server {
	s := &Server{
		config:  cfg,
		db:      db,
		metrics: NewMetrics(),
	}

	s.http = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Start begins listening for HTTP requests (non-blocking).
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("http server", "err", err)
		}
	}()

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// routes builds the HTTP handler with all routes and middleware.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /metricz", s.handleMetrics)

	mux.HandleFunc("GET /taxes", s.handleListRecords)
	mux.HandleFunc("GET /taxes/{id}", s.handleGetRecord)
	mux.HandleFunc("PUT /taxes/{id}", s.handlePutRecord)
	mux.HandleFunc("GET /countries", s.handleListCountries)

	return chain(mux, recoveryMiddleware, metricsMiddleware(s.metrics), loggingMiddleware)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "error", "detail": "db unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.db.ListRecords()
	if err != nil {
		slog.Error("list records", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "list records failed")
		return
	}
	if records == nil {
		records = []recordRow{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.db.GetRecord(r.PathValue("id"))
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "not_found", "no such record")
		return
	}
	if err != nil {
		slog.Error("get record", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "get record failed")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	if s.config.FailRate > 0 && rand.Float64() < s.config.FailRate {
		s.metrics.RecordInjectedError()
		writeError(w, http.StatusInternalServerError, "injected", "injected failure")
		return
	}

	id := r.PathValue("id")
	var rec recordRow
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid record body")
		return
	}
	rec.ID = id
	if rec.Name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}

	err := s.db.PutRecord(rec)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "not_found", "no such record")
		return
	}
	if err != nil {
		slog.Error("put record", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "put record failed")
		return
	}

	s.metrics.RecordUpdate()
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := s.db.ListCountries()
	if err != nil {
		slog.Error("list countries", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "list countries failed")
		return
	}
	if countries == nil {
		countries = []models.Category{}
	}
	writeJSON(w, http.StatusOK, countries)
}

// --- response helpers ---

// errorBody is the flat error shape clients decode.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write json response", "err", err)
	}
}

// --- middleware ---

func chain(h http.Handler, mw ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// statusCapture wraps ResponseWriter to capture the status code.
type statusCapture struct {
	http.ResponseWriter
	code int
}

func (sc *statusCapture) WriteHeader(code int) {
	sc.code = code
	sc.ResponseWriter.WriteHeader(code)
}

// recoveryMiddleware catches panics and returns a 500 response.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic", "panic", rec, "stack", string(debug.Stack()))
				writeError(w, http.StatusInternalServerError, "internal", "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// metricsMiddleware records request counts and categorizes response codes.
func metricsMiddleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.RecordRequest()
			sc := &statusCapture{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(sc, r)
			switch {
			case sc.code >= 500:
				m.RecordError()
			case sc.code >= 400:
				m.RecordClientError()
			}
		})
	}
}

// loggingMiddleware logs each request with method, path, status, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sc := &statusCapture{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sc, r)
		slog.Info("req",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sc.code,
			"dur", time.Since(start).String(),
		)
	})
}
