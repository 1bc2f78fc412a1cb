package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"carlog/internal/core"
)

type statsView struct {
	FleetMode       bool
	VehicleLabel    string
	TotalMaint      string
	TotalFuel       string
	HasOdometer     bool
	CurrentOdometer int64
	TotalDistance   int64
	Efficiency      string
	HasEfficiency   bool
	LastMaint       string
	LastFuel        string
	MaintCount      int
	FuelCount       int
}

// handleStats renders the stats cards partial, fleet-wide or for one vehicle.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	vehicleID := strings.TrimSpace(r.URL.Query().Get("vehicle"))
	if vehicleID == "" {
		vehicleID = core.AllVehicles
	}

	if html, ok := s.statsCache.Get(vehicleID); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
		return
	}

	snap, err := s.ledger.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load ledger", "error", err)
		http.Error(w, "failed to load ledger", http.StatusInternalServerError)
		return
	}

	var selected *core.Vehicle
	if vehicleID != core.AllVehicles {
		for i := range snap.Vehicles {
			if snap.Vehicles[i].ID == vehicleID {
				selected = &snap.Vehicles[i]
				break
			}
		}
		if selected == nil {
			http.NotFound(w, r)
			return
		}
	}

	summary := core.Aggregate(snap.Vehicles, snap.MaintenanceRecords, snap.FuelRecords, selected)
	view := buildStatsView(summary, selected)

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "stats_cards", view); err != nil {
		slog.ErrorContext(r.Context(), "Stats template failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.statsCache.Set(vehicleID, buf.String())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func buildStatsView(summary core.StatsSummary, selected *core.Vehicle) statsView {
	view := statsView{
		FleetMode:    selected == nil,
		VehicleLabel: "All vehicles",
		TotalMaint:   formatMoney(summary.TotalMaintenanceCost.Cents),
		TotalFuel:    formatMoney(summary.TotalFuelCost.Cents),
		MaintCount:   summary.MaintenanceCount,
		FuelCount:    summary.FuelCount,
		Efficiency:   "—",
		LastMaint:    "—",
		LastFuel:     "—",
	}

	if selected != nil {
		view.VehicleLabel = selected.Model
		view.HasOdometer = true
		view.CurrentOdometer = summary.CurrentOdometer
		view.TotalDistance = summary.TotalDistance
		if summary.FuelEfficiency != nil {
			view.HasEfficiency = true
			view.Efficiency = fmt.Sprintf("%.1f km/%s",
				*summary.FuelEfficiency, core.Unit(string(selected.FuelType)))
		}
	}
	if summary.LastMaintenanceDate != nil {
		view.LastMaint = summary.LastMaintenanceDate.Format("Jan 2, 2006")
	}
	if summary.LastFuelDate != nil {
		view.LastFuel = summary.LastFuelDate.Format("Jan 2, 2006")
	}

	return view
}
