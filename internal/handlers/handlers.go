// Package handlers implements the customizer HTTP API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/modgarage/customizer/internal/catalog"
	"github.com/modgarage/customizer/internal/dispatcher"
	"github.com/modgarage/customizer/internal/export"
	"github.com/modgarage/customizer/internal/metrics"
	"github.com/modgarage/customizer/internal/storage"
	"github.com/modgarage/customizer/internal/valuation"
	"github.com/modgarage/customizer/pkg/core"
)

const maxBodySize = 1 << 20

// Publisher receives design lifecycle events.
type Publisher interface {
	Publish(command string, payload any)
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Store  storage.Backend
	Events Publisher
	Logger *slog.Logger
	// Live serves /api/live when set.
	Live http.Handler
}

// Service provides the HTTP handlers for designs, valuation and the gallery.
type Service struct {
	deps Dependencies
}

// NewService creates a new handler service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Service{deps: deps}
}

// Routes returns the API mux wrapped in the metrics middleware.
func (s *Service) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/vehicles", s.ListDesigns)
	mux.HandleFunc("POST /api/vehicles", s.CreateDesign)
	mux.HandleFunc("PUT /api/vehicles", s.UpdateDesign)
	mux.HandleFunc("DELETE /api/vehicles", s.DeleteDesign)
	mux.HandleFunc("GET /api/vehicles/{id}", s.GetDesign)
	mux.HandleFunc("GET /api/vehicles/{id}/export", s.ExportDesign)

	mux.HandleFunc("POST /api/valuate", s.Valuate)
	mux.HandleFunc("GET /api/models", s.Models)
	mux.HandleFunc("GET /api/categories", s.Categories)
	mux.HandleFunc("GET /api/options", s.Options)
	mux.HandleFunc("GET /api/default", s.Default)

	if s.deps.Live != nil {
		mux.Handle("GET /api/live", s.deps.Live)
	}
	mux.HandleFunc("GET /healthcheck", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	})
	mux.Handle("GET /metrics", metrics.Handler())

	return instrument(mux)
}

func (s *Service) publish(command string, ev dispatcher.DesignEvent) {
	if s.deps.Events != nil {
		s.deps.Events.Publish(command, ev)
	}
}

// ListDesigns handles GET /api/vehicles.
func (s *Service) ListDesigns(w http.ResponseWriter, r *http.Request) {
	designs, err := s.deps.Store.List(r.Context())
	if err != nil {
		s.writeError(w, err, "Failed to fetch vehicle designs")
		return
	}
	if designs == nil {
		designs = []core.Design{}
	}
	writeJSON(w, http.StatusOK, designs)
}

// GetDesign handles GET /api/vehicles/{id}.
func (s *Service) GetDesign(w http.ResponseWriter, r *http.Request) {
	d, err := s.deps.Store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err, "Failed to fetch vehicle design")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// CreateDesign handles POST /api/vehicles.
func (s *Service) CreateDesign(w http.ResponseWriter, r *http.Request) {
	var d core.Design
	if err := decodeJSON(r, &d); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid vehicle design data")
		return
	}
	if err := valuation.Validate(d); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	d.ID = ""
	if err := s.deps.Store.Create(r.Context(), &d); err != nil {
		s.writeError(w, err, "Failed to save vehicle design")
		return
	}

	s.publish(dispatcher.CmdDesignCreated, s.event(d))
	writeJSON(w, http.StatusCreated, d)
}

// UpdateDesign handles PUT /api/vehicles.
func (s *Service) UpdateDesign(w http.ResponseWriter, r *http.Request) {
	var d core.Design
	if err := decodeJSON(r, &d); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid vehicle design data")
		return
	}
	if d.ID == "" {
		writeJSONError(w, http.StatusBadRequest, "Vehicle design ID is required")
		return
	}
	if err := valuation.Validate(d); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.deps.Store.Update(r.Context(), &d); err != nil {
		s.writeError(w, err, "Failed to update vehicle design")
		return
	}

	s.publish(dispatcher.CmdDesignUpdated, s.event(d))
	writeJSON(w, http.StatusOK, d)
}

// DeleteDesign handles DELETE /api/vehicles?id=.
func (s *Service) DeleteDesign(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "Vehicle design ID is required")
		return
	}

	if err := s.deps.Store.Delete(r.Context(), id); err != nil {
		s.writeError(w, err, "Failed to delete vehicle design")
		return
	}

	s.publish(dispatcher.CmdDesignDeleted, dispatcher.DesignEvent{Design: core.Design{ID: id}})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ExportDesign handles GET /api/vehicles/{id}/export?format=.
func (s *Service) ExportDesign(w http.ResponseWriter, r *http.Request) {
	d, err := s.deps.Store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err, "Failed to fetch vehicle design")
		return
	}

	data, ext, err := export.Encode(d, r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, err, "Failed to export vehicle design")
		return
	}

	w.Header().Set("Content-Type", export.ContentType(ext))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(d, ext)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Valuate handles POST /api/valuate.
func (s *Service) Valuate(w http.ResponseWriter, r *http.Request) {
	var d core.Design
	if err := decodeJSON(r, &d); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid vehicle design data")
		return
	}

	v, err := valuation.Valuate(d)
	if err != nil {
		s.writeError(w, err, "Failed to valuate vehicle design")
		return
	}

	s.publish(dispatcher.CmdDesignValuated, dispatcher.DesignEvent{Design: d, Valuation: &v})
	writeJSON(w, http.StatusOK, v)
}

// Models handles GET /api/models?category=.
func (s *Service) Models(w http.ResponseWriter, r *http.Request) {
	category := core.Category(r.URL.Query().Get("category"))
	if category == "" {
		writeJSON(w, http.StatusOK, catalog.Models())
		return
	}
	if !category.IsValid() {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Unknown category: %s", category))
		return
	}

	models := catalog.ModelsByCategory(category)
	if models == nil {
		models = []core.BaseModel{}
	}
	writeJSON(w, http.StatusOK, models)
}

// Categories handles GET /api/categories.
func (s *Service) Categories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Categories())
}

// OptionsResponse lists every selectable modification value.
type OptionsResponse struct {
	Wheels        []core.Option       `json:"wheels"`
	BodyKits      []core.Option       `json:"bodyKits"`
	PaintColors   catalog.Palette     `json:"paintColors"`
	Finishes      []core.Finish       `json:"finishes"`
	WindowTints   []core.WindowTint   `json:"windowTints"`
	Transmissions []core.Transmission `json:"transmissions"`
}

// Options handles GET /api/options.
func (s *Service) Options(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, OptionsResponse{
		Wheels:        catalog.Wheels(),
		BodyKits:      catalog.BodyKits(),
		PaintColors:   catalog.PaintColors(),
		Finishes:      core.AllFinishes(),
		WindowTints:   core.AllWindowTints(),
		Transmissions: core.AllTransmissions(),
	})
}

// Default handles GET /api/default?baseModel=.
func (s *Service) Default(w http.ResponseWriter, r *http.Request) {
	d := valuation.DefaultDesign(r.URL.Query().Get("baseModel"))
	if _, ok := catalog.Model(d.BaseModel); !ok {
		s.writeError(w, fmt.Errorf("vehicle model %s: %w", d.BaseModel, valuation.ErrModelNotFound), "")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// event builds the lifecycle payload for a stored design. The design has
// passed Validate, so valuation cannot fail.
func (s *Service) event(d core.Design) dispatcher.DesignEvent {
	ev := dispatcher.DesignEvent{Design: d.Clone()}
	if v, err := valuation.Valuate(d); err == nil {
		ev.Valuation = &v
	}
	return ev
}

// writeError maps domain errors to status codes. Unmapped errors are logged
// and answered with 500 and the fallback message.
func (s *Service) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "Vehicle design not found")
	case errors.Is(err, storage.ErrMissingID):
		writeJSONError(w, http.StatusBadRequest, "Vehicle design ID is required")
	case errors.Is(err, valuation.ErrModelNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, valuation.ErrInvalidDesign), errors.Is(err, export.ErrUnknownFormat):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		s.deps.Logger.Error(fallback, "error", err)
		writeJSONError(w, http.StatusInternalServerError, fallback)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// instrument records request counts and durations per matched route.
func instrument(next *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordRequest(route, r.Method, rec.status, time.Since(start))
	})
}
