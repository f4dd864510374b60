// Package http carries the carrier-facing surface of the engine: the
// inbound form-POST handler, the outbound client used for remote hand-offs,
// and an SMS gateway speaking the same form protocol.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akwaba/ussdflow/pkg/domain"
)

// Engine is the navigation core the server drives. *runtime.Engine and the
// library facade both satisfy it.
type Engine interface {
	Process(ctx context.Context, req domain.Request) (*domain.Reply, error)
}

// Server translates carrier form POSTs into engine turns.
type Server struct {
	engine Engine
	logger *slog.Logger
}

// NewHandler wires the carrier entry point plus health and metrics routes.
func NewHandler(engine Engine, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{engine: engine, logger: logger}

	r := chi.NewRouter()
	r.Post("/", s.handleTurn)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	for _, name := range domain.ParamNames {
		if !r.PostForm.Has(name) {
			s.logger.Warn("malformed carrier request", "missing", name)
			http.Error(w, fmt.Sprintf("%q is missing in the USSD parameters", name), http.StatusBadRequest)
			return
		}
	}

	req := domain.Request{
		MSISDN:    r.PostForm.Get(domain.ParamMSISDN),
		Network:   r.PostForm.Get(domain.ParamNetwork),
		SessionID: r.PostForm.Get(domain.ParamSessionID),
		Input:     r.PostForm.Get(domain.ParamInput),
		Op:        domain.Op(r.PostForm.Get(domain.ParamOp)),
	}

	start := time.Now()
	reply, err := s.engine.Process(r.Context(), req)
	turnDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		turnErrors.Inc()
		s.logger.Error("turn failed", "op", string(req.Op), "msisdn", req.MSISDN, "error", err)
		http.Error(w, fmt.Sprintf("Turn failed: %v", err), http.StatusInternalServerError)
		return
	}
	turnsTotal.WithLabelValues(string(req.Op)).Inc()

	w.Header().Set("Content-Type", "application/json")
	if reply.Raw != nil {
		_, _ = w.Write(reply.Raw)
		return
	}
	if err := json.NewEncoder(w).Encode(reply); err != nil {
		s.logger.Error("failed to encode reply", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
