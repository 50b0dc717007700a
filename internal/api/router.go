// Package api exposes the HTTP surface: the websocket entry point and the
// read-only status endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pokerhub/holdem-room/internal/middleware"
	"github.com/pokerhub/holdem-room/internal/room"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger    *slog.Logger
	Runtime   *room.Runtime
	WSHandler http.Handler
}

// NewRouter creates the router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
	r.Use(middleware.Logging(cfg.Logger))

	r.Handle("/ws", cfg.WSHandler).Methods(http.MethodGet)
	r.HandleFunc("/status", statusHandler(cfg.Runtime)).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)

	return r
}

type statusResponse struct {
	Status string `json:"status"`
	room.StatusInfo
}

func statusHandler(rt *room.Runtime) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := statusResponse{Status: "ok", StatusInfo: rt.Status()}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
