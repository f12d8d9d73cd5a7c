package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/wbr-engine/wbr/internal/configio"
	"github.com/wbr-engine/wbr/internal/ingest"
	"github.com/wbr-engine/wbr/internal/wbrdeck"
	"github.com/wbr-engine/wbr/internal/wbrengine"
	"github.com/wbr-engine/wbr/pkg/logger"
)

// server holds the daemon's handler state. There is no persistent storage:
// every request carries its own configuration and daily observations, and
// the engine runs as the pure function spec.md describes.
type server struct {
	log       *logger.DefaultLogger
	startedAt time.Time
}

func newServer(log *logger.DefaultLogger) *server {
	return &server{log: log, startedAt: time.Now()}
}

func (s *server) routes(r *mux.Router) {
	r.Use(s.requestIDMiddleware)
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.HandleFunc("/wbr", s.handleComputeWBR).Methods("POST")
}

type requestLoggerKey struct{}

// requestIDMiddleware tags every request with a correlation ID and attaches
// a derived logger carrying it (see logger.DefaultLogger.With) to the
// request's context, so every line a handler logs for this request is
// tagged without repeating the id at each call site.
func (s *server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		reqLog := s.log.With("request_id", id)
		start := time.Now()
		reqLog.Info("request started", "method", r.Method, "path", r.URL.Path)
		r = r.WithContext(context.WithValue(r.Context(), requestLoggerKey{}, reqLog))
		next.ServeHTTP(w, r)
		reqLog.Info("request finished", "elapsed", time.Since(start))
	})
}

// loggerFromContext returns the per-request logger attached by
// requestIDMiddleware, or s.log if none is present (e.g. in tests that call
// a handler directly).
func (s *server) loggerFromContext(ctx context.Context) *logger.DefaultLogger {
	if l, ok := ctx.Value(requestLoggerKey{}).(*logger.DefaultLogger); ok {
		return l
	}
	return s.log
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.startedAt).String(),
	})
}

// handleComputeWBR computes and returns a full WBR deck. The request is a
// multipart form with two file parts: "config" (the YAML configuration) and
// "data" (the daily observations CSV).
func (s *server) handleComputeWBR(w http.ResponseWriter, r *http.Request) {
	log := s.loggerFromContext(r.Context())

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	configFile, _, err := r.FormFile("config")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing config file part")
		return
	}
	defer configFile.Close()
	configBytes, err := io.ReadAll(configFile)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read config: "+err.Error())
		return
	}

	dataFile, _, err := r.FormFile("data")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing data file part")
		return
	}
	defer dataFile.Close()

	cfg, err := configio.DecodeYAML(configBytes)
	if err != nil {
		log.Warn("config decode failed", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	daily, err := ingest.ReadCSV(dataFile)
	if err != nil {
		log.Warn("data decode failed", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res, err := wbrengine.Run(cfg, daily)
	if err != nil {
		log.Warn("engine run failed", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	log.Info("wbr computed", "metrics", len(cfg.Metrics))

	if len(cfg.Deck) == 0 {
		writeJSON(w, http.StatusOK, res)
		return
	}

	deck, err := wbrdeck.Build(cfg, res)
	if err != nil {
		log.Warn("deck assembly failed", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
