package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"spacex-dash/logging"
	"spacex-dash/templates"
)

const maxUpdateBody = 1 << 20

type dashboard struct {
	layout   templates.Component
	registry *Registry
}

// newDashboardMux serves the page and the three endpoints the page script talks to.
func newDashboardMux(layout templates.Component, registry *Registry) *http.ServeMux {
	d := &dashboard{layout: layout, registry: registry}

	mux := http.NewServeMux()
	mux.HandleFunc("/", d.pageHandler)
	mux.HandleFunc("/_dash-layout", d.layoutHandler)
	mux.HandleFunc("/_dash-dependencies", d.dependenciesHandler)
	mux.HandleFunc("/_dash-update-component", d.updateHandler)
	return mux
}

func (d *dashboard) pageHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	component := templates.DashboardPage(templates.DashboardPageData{
		Title:  dashboardTitle,
		Layout: d.layout,
	})
	templ.Handler(component).ServeHTTP(w, r)
}

func (d *dashboard) layoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, r, d.layout)
}

func (d *dashboard) dependenciesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, r, d.registry.Specs())
}

type updateRequest struct {
	Output string       `json:"output"`
	Inputs []InputValue `json:"inputs"`
}

type updateResponse struct {
	Response map[string]map[string]any `json:"response"`
}

func (d *dashboard) updateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateBody)).Decode(&req); err != nil {
		requestLogger(r).Warn("decode update", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	out, err := d.registry.Dispatch(r.Context(), req.Output, req.Inputs)
	switch {
	case errors.Is(err, ErrUnknownOutput), errors.Is(err, ErrInputMismatch), errors.Is(err, ErrInvalidValue):
		requestLogger(r).Warn("rejected update", "output", req.Output, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		requestLogger(r).Error("update failed", "output", req.Output, "error", err)
		http.Error(w, "update failed", http.StatusInternalServerError)
		return
	}

	id, property, _ := strings.Cut(req.Output, ".")
	writeJSON(w, r, updateResponse{Response: map[string]map[string]any{id: {property: out}}})
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		requestLogger(r).Error("encode response", "error", err)
	}
}

type requestIDKey struct{}

func requestLogger(r *http.Request) *slog.Logger {
	log := logging.New("http")
	if id, ok := r.Context().Value(requestIDKey{}).(string); ok {
		log = log.With("request_id", id)
	}
	return log
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withRequestLogging tags every request with an id and logs it when done.
func withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))
		w.Header().Set("X-Request-Id", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		requestLogger(r).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
