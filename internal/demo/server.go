// Package demo serves an in-memory implementation of the scheduling API
// for local development and end-to-end tests: a fixed provider roster,
// deterministic business-hours availability, and appointment creation
// that marks the booked hour unavailable.
package demo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/chairtime/booking-flow/internal/schedapi"
	"github.com/chairtime/booking-flow/pkg/logging"
)

// Business hours for every demo provider.
const (
	openHour  = 8
	closeHour = 18
)

// Server is the demo scheduling API.
type Server struct {
	logger *logging.Logger

	mu        sync.Mutex
	providers []schedapi.Provider
	// booked maps providerID -> "2006-01-02" -> hour -> true.
	booked map[string]map[string]map[int]bool
}

// NewServer creates a demo server with the default roster.
func NewServer(logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	return &Server{
		logger: logger,
		providers: []schedapi.Provider{
			{ID: "b7a3d9f0-1d44-4f3e-9a6e-demo00000001", Name: "Diego Martins", AvatarURL: "https://avatars.chairtime.app/diego.png"},
			{ID: "b7a3d9f0-1d44-4f3e-9a6e-demo00000002", Name: "Ana Souza", AvatarURL: "https://avatars.chairtime.app/ana.png"},
			{ID: "b7a3d9f0-1d44-4f3e-9a6e-demo00000003", Name: "Rafael Lima", AvatarURL: "https://avatars.chairtime.app/rafael.png"},
		},
		booked: make(map[string]map[string]map[int]bool),
	}
}

// Routes returns the chi router for the demo API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/providers/", s.handleListProviders)
	r.Get("/providers/{providerID}/daily-availability", s.handleDailyAvailability)
	r.Post("/appointments", s.handleCreateAppointment)
	return r
}

func (s *Server) handleListProviders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	providers := append([]schedapi.Provider(nil), s.providers...)
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, providers)
}

func (s *Server) handleDailyAvailability(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "providerID")
	if !s.hasProvider(providerID) {
		respondError(w, http.StatusNotFound, "unknown provider")
		return
	}

	q := r.URL.Query()
	year, month, day := q.Get("year"), q.Get("month"), q.Get("day")
	var y, m, d int
	if _, err := fmt.Sscanf(year+"-"+month+"-"+day, "%d-%d-%d", &y, &m, &d); err != nil {
		respondError(w, http.StatusBadRequest, "year, month and day are required")
		return
	}

	dayKey := fmt.Sprintf("%04d-%02d-%02d", y, m, d)
	s.mu.Lock()
	taken := s.booked[providerID][dayKey]
	slots := make([]schedapi.AvailabilitySlot, 0, closeHour-openHour)
	for h := openHour; h < closeHour; h++ {
		slots = append(slots, schedapi.AvailabilitySlot{Hour: h, Available: !taken[h]})
	}
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, slots)
}

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProviderID string `json:"provider_id"`
		Date       string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if !s.hasProvider(req.ProviderID) {
		respondError(w, http.StatusNotFound, "unknown provider")
		return
	}
	at, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "date must be RFC 3339")
		return
	}
	if at.Hour() < openHour || at.Hour() >= closeHour {
		respondError(w, http.StatusUnprocessableEntity, "hour outside business hours")
		return
	}

	dayKey := at.Format("2006-01-02")
	s.mu.Lock()
	if s.booked[req.ProviderID] == nil {
		s.booked[req.ProviderID] = make(map[string]map[int]bool)
	}
	if s.booked[req.ProviderID][dayKey] == nil {
		s.booked[req.ProviderID][dayKey] = make(map[int]bool)
	}
	if s.booked[req.ProviderID][dayKey][at.Hour()] {
		s.mu.Unlock()
		respondError(w, http.StatusConflict, "slot no longer available")
		return
	}
	s.booked[req.ProviderID][dayKey][at.Hour()] = true
	s.mu.Unlock()

	s.logger.Info("demo appointment created", "provider_id", req.ProviderID, "at", at)
	respondJSON(w, http.StatusCreated, schedapi.Appointment{
		ID:         uuid.NewString(),
		ProviderID: req.ProviderID,
		Date:       at,
	})
}

func (s *Server) hasProvider(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.providers {
		if p.ID == id {
			return true
		}
	}
	return false
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
