package core

import (
	"slices"
	"time"
)

const (
	EventMaintenance EventKind = "maintenance"
	EventFuel        EventKind = "fuel"
)

type (
	EventKind string

	// TimelineEvent is a maintenance or fuel record tagged with its kind,
	// used only for unified chronological display. Exactly one of
	// Maintenance and Fuel is set, according to Kind.
	TimelineEvent struct {
		Kind        EventKind
		Date        Date
		VehicleID   string
		Maintenance *MaintenanceRecord
		Fuel        *FuelRecord
	}

	// TimelineGroup collects one calendar month of events for display.
	TimelineGroup struct {
		Year   int
		Month  time.Month
		Label  string
		Events []TimelineEvent
	}
)

// MergeTimeline tags both record sets with their kind and returns them as a
// single sequence sorted by date descending, most recent first. The sort is
// stable, so equal-timestamp events keep a deterministic relative order for
// a given input. Inputs are never modified.
func MergeTimeline(maint []MaintenanceRecord, fuel []FuelRecord) []TimelineEvent {
	events := make([]TimelineEvent, 0, len(maint)+len(fuel))
	for i := range maint {
		r := maint[i]
		events = append(events, TimelineEvent{
			Kind:        EventMaintenance,
			Date:        r.Date,
			VehicleID:   r.VehicleID,
			Maintenance: &r,
		})
	}
	for i := range fuel {
		r := fuel[i]
		events = append(events, TimelineEvent{
			Kind:      EventFuel,
			Date:      r.Date,
			VehicleID: r.VehicleID,
			Fuel:      &r,
		})
	}
	slices.SortStableFunc(events, func(a, b TimelineEvent) int {
		return b.Date.Compare(a.Date.Time)
	})
	return events
}

// GroupByMonth splits an already-descending timeline into per-month groups,
// preserving order. Groups come out newest first because the input is.
func GroupByMonth(events []TimelineEvent) []TimelineGroup {
	var groups []TimelineGroup
	for _, ev := range events {
		y, m := ev.Date.Year(), ev.Date.Month()
		n := len(groups)
		if n == 0 || groups[n-1].Year != y || groups[n-1].Month != m {
			groups = append(groups, TimelineGroup{
				Year:  y,
				Month: m,
				Label: ev.Date.Format("January 2006"),
			})
			n++
		}
		groups[n-1].Events = append(groups[n-1].Events, ev)
	}
	return groups
}
