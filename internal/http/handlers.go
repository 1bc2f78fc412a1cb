package http

import (
	"log/slog"
	"net/http"

	"carlog/internal/core"
)

// handleIndex renders the main dashboard page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded")
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	snap, err := s.ledger.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load ledger", "error", err)
		http.Error(w, "failed to load ledger", http.StatusInternalServerError)
		return
	}

	now := s.now()
	today := core.NewDate(now.Year(), int(now.Month()), now.Day())
	data := struct {
		Vehicles  []core.Vehicle
		FuelTypes []core.FuelType
		From      core.Date
		To        core.Date
	}{
		Vehicles:  snap.Vehicles,
		FuelTypes: []core.FuelType{core.Petrol, core.Diesel, core.Electric, core.Hybrid},
		From:      core.Date{Time: today.AddDate(0, -s.windowMonths, 0)},
		To:        today,
	}

	if err := s.templates.ExecuteTemplate(w, "dashboard_page", data); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusServiceUnavailable)
		return
	}
	if _, err := s.ledger.Snapshot(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		http.Error(w, "storage not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
