// Package api exposes a small read-only HTTP surface over the running
// display: the current view model and a refresh trigger. It is intended for
// kiosk fleet checks, not as a management plane.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gntech/signage/pkg/content"
)

// Provider supplies the current display state.
type Provider interface {
	// Snapshot returns a copy of the current view model.
	Snapshot() content.ViewModel
	// InitialLoad reports whether the display is still settling after start.
	InitialLoad() bool
}

// Refresher forces the display to reload both feeds from the store.
type Refresher func()

// Handler holds API route handlers.
type Handler struct {
	provider Provider
	refresh  Refresher
	started  time.Time
}

// NewHandler creates a new Handler.
func NewHandler(provider Provider, refresh Refresher) *Handler {
	return &Handler{provider: provider, refresh: refresh, started: time.Now()}
}

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(provider Provider, refresh Refresher) chi.Router {
	h := NewHandler(provider, refresh)

	r := chi.NewRouter()
	r.Get("/api/viewmodel", h.ViewModel)
	r.Get("/api/health", h.Health)
	r.Post("/api/refresh", h.Refresh)
	return r
}

// ViewModel handles GET /api/viewmodel.
func (h *Handler) ViewModel(w http.ResponseWriter, r *http.Request) {
	vm := h.provider.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"viewmodel":    vm,
		"initial_load": h.provider.InitialLoad(),
	})
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

// Refresh handles POST /api/refresh.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.refresh == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("refresh not available"))
		return
	}
	h.refresh()
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "refreshing"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}
