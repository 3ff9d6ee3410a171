// Package server exposes shader generation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"aiupstart.com/shadergen/internal/agent"
	"aiupstart.com/shadergen/internal/config"
	"aiupstart.com/shadergen/internal/metrics"
	"aiupstart.com/shadergen/internal/model"
	"aiupstart.com/shadergen/internal/shader"
	"aiupstart.com/shadergen/internal/utils"
	"github.com/google/uuid"
)

const maxBodyBytes = 64 << 10

// Generator produces a shader pair for a description.
type Generator interface {
	Generate(ctx context.Context, description string) (shader.Result, error)
}

type Server struct {
	cfg        config.Config
	generator  Generator
	httpServer *http.Server
}

func New(cfg config.Config, generator Generator) *Server {
	s := &Server{cfg: cfg, generator: generator}
	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  seconds(cfg.Server.ReadTimeoutSeconds),
		WriteTimeout: seconds(cfg.Server.WriteTimeoutSeconds),
	}
	return s
}

// Handler returns the routed handler wrapped in request middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /api/shaders", instrument("generate", http.HandlerFunc(s.handleGenerate)))
	mux.Handle("GET /healthz", instrument("healthz", http.HandlerFunc(handleHealth)))
	if s.cfg.Metrics.Enabled {
		mux.Handle("GET "+s.cfg.Metrics.Path, metrics.Handler())
	}
	return withRequestID(mux)
}

// ListenAndServe blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) ListenAndServe() error {
	utils.Logger.Info().Str("module", "server").Str("addr", s.httpServer.Addr).Msg("Listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, model.ErrorResponse{Error: "Request body too large"})
			return
		}
		msg := "Invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "Request body is required"
		}
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: msg})
		return
	}

	res, err := s.generator.Generate(r.Context(), req.Description)
	if err == nil {
		writeJSON(w, http.StatusOK, model.NewGenerateResponse(res))
		return
	}

	if errors.Is(err, agent.ErrEmptyDescription) {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "Description is required"})
		return
	}
	if ee, ok := shader.AsExtractionError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, model.NewErrorResponse(ee))
		return
	}
	utils.Logger.Error().Err(err).Str("module", "server").Str("request_id", requestID(r.Context())).Msg("Generation failed")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: "Internal server error"})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Logger.Warn().Err(err).Str("module", "server").Msg("Failed to write response")
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

type ctxKey struct{}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		utils.Logger.Info().
			Str("module", "server").
			Str("request_id", requestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("Request served")
	})
}
