// Package server exposes the claim analyzer over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ppiankov/claimcheck/internal/limit"
	"github.com/ppiankov/claimcheck/internal/logging"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// maxRequestBytes caps the size of a /verify body
const maxRequestBytes = 1 << 20

const shutdownTimeout = 10 * time.Second

// Analyzer produces a verdict for a claim
type Analyzer interface {
	Analyze(ctx context.Context, claim string) model.Verdict
	Stages() []string
}

// Server routes HTTP requests to the analyzer
type Server struct {
	analyzer Analyzer
	cfg      model.ServerConfig
	limiter  *limit.Limiter
	logger   *zap.Logger
	handler  http.Handler
}

type verifyRequest struct {
	Claim string `json:"claim"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string   `json:"status"`
	Stages []string `json:"stages"`
}

// New creates a server for analyzer
func New(analyzer Analyzer, cfg model.ServerConfig, logger *zap.Logger) *Server {
	s := &Server{
		analyzer: analyzer,
		cfg:      cfg,
		limiter:  limit.NewLimiter(cfg.RateLimit, cfg.RateBurst),
		logger:   logging.OrNop(logger),
	}
	s.handler = s.routes()
	return s
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestID, s.accessLog)

	// Only claim checks are rate limited; health checks and scrapes always answer
	r.Handle("/verify", s.rateLimit(http.HandlerFunc(s.handleVerify))).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// mux skips middleware for unmatched requests
	r.NotFoundHandler = s.requestID(s.accessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	})))
	r.MethodNotAllowedHandler = s.requestID(s.accessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	})))

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})
	return c.Handler(r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr), zap.Strings("stages", s.analyzer.Stages()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		s.logger.Debug("rejecting malformed body", zap.String("request_id", RequestIDFrom(r.Context())), zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if req.Claim == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No claim provided"})
		return
	}

	verdict := s.analyzer.Analyze(r.Context(), req.Claim)
	writeJSON(w, http.StatusOK, verdict)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Stages: s.analyzer.Stages()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
