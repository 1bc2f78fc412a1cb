package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"carlog/internal/core"
	"carlog/internal/services"
	"carlog/internal/storage"
)

func (s *Server) handleCreateVehicle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		writeFormError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	v := core.Vehicle{
		Model:    sanitizeInput(r.Form.Get("model")),
		FuelType: core.FuelType(strings.TrimSpace(r.Form.Get("fuel_type"))),
	}
	if odo := strings.TrimSpace(r.Form.Get("initial_odometer")); odo != "" {
		n, err := strconv.ParseInt(odo, 10, 64)
		if err != nil {
			writeFormError(w, http.StatusUnprocessableEntity, "Invalid odometer reading")
			return
		}
		v.InitialOdometer = n
	}
	if ds := strings.TrimSpace(r.Form.Get("date_added")); ds != "" {
		d, err := parseDate(ds)
		if err != nil {
			writeFormError(w, http.StatusUnprocessableEntity, "Invalid date")
			return
		}
		v.DateAdded = d
	}

	created, err := s.ledger.CreateVehicle(r.Context(), v)
	if err != nil {
		s.writeCreateError(w, r, err, "vehicle")
		return
	}

	s.caches.FlushAll()
	w.Header().Set("HX-Trigger", "ledger-updated")
	writeFormSuccess(w, "Vehicle "+created.Model+" added")
}

func (s *Server) handleCreateMaintenance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		writeFormError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	m := core.MaintenanceRecord{
		VehicleID: strings.TrimSpace(r.Form.Get("vehicle_id")),
		TaskType:  sanitizeInput(r.Form.Get("task_type")),
		Notes:     sanitizeInput(r.Form.Get("notes")),
	}

	d, err := parseDate(strings.TrimSpace(r.Form.Get("date")))
	if err != nil {
		writeFormError(w, http.StatusUnprocessableEntity, "Invalid date")
		return
	}
	m.Date = d

	if m.Odometer, err = strconv.ParseInt(strings.TrimSpace(r.Form.Get("odometer")), 10, 64); err != nil {
		writeFormError(w, http.StatusUnprocessableEntity, "Invalid odometer reading")
		return
	}

	if costStr := strings.TrimSpace(r.Form.Get("cost")); costStr != "" && costStr != "0" {
		cents, err := core.ParseDecimalToCents(costStr)
		if err != nil {
			writeFormError(w, http.StatusUnprocessableEntity, "Invalid cost")
			return
		}
		m.Cost = core.Money{Cents: cents}
	}

	created, err := s.ledger.CreateMaintenance(r.Context(), m)
	if err != nil {
		s.writeCreateError(w, r, err, "maintenance record")
		return
	}

	s.caches.FlushAll()
	w.Header().Set("HX-Trigger", "ledger-updated")
	writeFormSuccess(w, created.TaskType+" recorded")
}

func (s *Server) handleCreateFuel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		writeFormError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	f := core.FuelRecord{
		VehicleID: strings.TrimSpace(r.Form.Get("vehicle_id")),
		FuelType:  sanitizeInput(r.Form.Get("fuel_type")),
		Notes:     sanitizeInput(r.Form.Get("notes")),
	}

	d, err := parseDate(strings.TrimSpace(r.Form.Get("date")))
	if err != nil {
		writeFormError(w, http.StatusUnprocessableEntity, "Invalid date")
		return
	}
	f.Date = d

	if f.Odometer, err = strconv.ParseInt(strings.TrimSpace(r.Form.Get("odometer")), 10, 64); err != nil {
		writeFormError(w, http.StatusUnprocessableEntity, "Invalid odometer reading")
		return
	}

	if f.Amount, err = strconv.ParseFloat(strings.TrimSpace(r.Form.Get("amount")), 64); err != nil || f.Amount <= 0 {
		writeFormError(w, http.StatusUnprocessableEntity, "Invalid fuel amount")
		return
	}

	cents, err := core.ParseDecimalToCents(strings.TrimSpace(r.Form.Get("price_per_unit")))
	if err != nil {
		writeFormError(w, http.StatusUnprocessableEntity, "Invalid price per unit")
		return
	}
	f.PricePerUnit = core.Money{Cents: cents}

	created, err := s.ledger.CreateFuel(r.Context(), f)
	if err != nil {
		s.writeCreateError(w, r, err, "fuel record")
		return
	}

	s.caches.FlushAll()
	w.Header().Set("HX-Trigger", "ledger-updated")
	writeFormSuccess(w, "Fill-up recorded, total "+formatMoney(created.TotalCost.Cents))
}

// writeCreateError maps service errors onto HTTP responses.
func (s *Server) writeCreateError(w http.ResponseWriter, r *http.Request, err error, what string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeFormError(w, http.StatusUnprocessableEntity, "Unknown vehicle")
	case errors.Is(err, services.ErrOdometerBelowInitial):
		writeFormError(w, http.StatusUnprocessableEntity, "Odometer reading is below the vehicle's initial reading")
	case isValidationError(err):
		writeFormError(w, http.StatusUnprocessableEntity, "Invalid data: "+err.Error())
	default:
		slog.ErrorContext(r.Context(), "Failed to save "+what, "error", err)
		writeFormError(w, http.StatusInternalServerError, "Error saving "+what)
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidDate, core.ErrInvalidAmount, core.ErrInvalidFuelType,
		core.ErrEmptyModel, core.ErrEmptyVehicleID, core.ErrEmptyTaskType,
		core.ErrNegativeOdometer, core.ErrNegativeCost,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return strings.Contains(err.Error(), "too long")
}

func writeFormError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<div class="form-result form-result--error">` + template.HTMLEscapeString(msg) + `</div>`))
}

func writeFormSuccess(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<div class="form-result form-result--ok">` + template.HTMLEscapeString(msg) + `</div>`))
}
