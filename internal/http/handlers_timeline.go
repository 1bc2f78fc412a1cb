package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"carlog/internal/core"
)

type timelineEventView struct {
	Kind     string
	Title    string
	Date     string
	Odometer int64
	Cost     string
	Notes    string
}

type timelineGroupView struct {
	Label  string
	Events []timelineEventView
}

// handleTimeline renders the merged event history partial, filtered by
// vehicle, record kind and an inclusive date window.
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	opts, err := parseFilterOptions(r, s.now(), s.windowMonths)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cacheKey := fmt.Sprintf("%s|%s|%s|%s",
		opts.VehicleID, opts.Kind,
		opts.From.Format("2006-01-02"), opts.To.Format("2006-01-02"))
	if html, ok := s.timelineCache.Get(cacheKey); ok {
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

	maint := core.FilterMaintenance(snap.MaintenanceRecords, opts)
	fuel := core.FilterFuel(snap.FuelRecords, opts)
	groups := core.GroupByMonth(core.MergeTimeline(maint, fuel))

	view := struct {
		Groups []timelineGroupView
		Empty  bool
	}{
		Groups: make([]timelineGroupView, 0, len(groups)),
		Empty:  len(groups) == 0,
	}
	for _, g := range groups {
		gv := timelineGroupView{Label: g.Label, Events: make([]timelineEventView, 0, len(g.Events))}
		for _, ev := range g.Events {
			gv.Events = append(gv.Events, buildEventView(ev))
		}
		view.Groups = append(view.Groups, gv)
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "timeline", view); err != nil {
		slog.ErrorContext(r.Context(), "Timeline template failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.timelineCache.Set(cacheKey, buf.String())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func buildEventView(ev core.TimelineEvent) timelineEventView {
	view := timelineEventView{Date: ev.Date.Format("Jan 2, 2006")}

	switch ev.Kind {
	case core.EventMaintenance:
		m := ev.Maintenance
		view.Kind = "maintenance"
		view.Title = m.TaskType
		view.Odometer = m.Odometer
		view.Cost = formatMoney(m.Cost.Cents)
		view.Notes = m.Notes
	case core.EventFuel:
		f := ev.Fuel
		view.Kind = "fuel"
		view.Title = fmt.Sprintf("Fill-up %.1f %s", f.Amount, core.Unit(f.FuelType))
		view.Odometer = f.Odometer
		view.Cost = formatMoney(f.TotalCost.Cents)
		view.Notes = f.Notes
	}

	return view
}
