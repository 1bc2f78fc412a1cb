package core

import (
	"testing"
	"time"
)

func TestMergeTimelineOrderAndCompleteness(t *testing.T) {
	maint := []MaintenanceRecord{
		{ID: "m1", VehicleID: "v1", TaskType: "Oil Change", Date: NewDate(2025, 1, 15), Odometer: 10100},
		{ID: "m2", VehicleID: "v1", TaskType: "Brakes", Date: NewDate(2025, 3, 20), Odometer: 10800},
	}
	fuel := []FuelRecord{
		{ID: "f1", VehicleID: "v1", Date: NewDate(2025, 2, 1), Odometer: 10300},
	}

	events := MergeTimeline(maint, fuel)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	wantIDs := []string{"m2", "f1", "m1"} // descending by date
	for i, ev := range events {
		var id string
		switch ev.Kind {
		case EventMaintenance:
			id = ev.Maintenance.ID
		case EventFuel:
			id = ev.Fuel.ID
		}
		if id != wantIDs[i] {
			t.Fatalf("position %d: got %s, want %s", i, id, wantIDs[i])
		}
		if i > 0 && events[i-1].Date.Before(ev.Date.Time) {
			t.Fatalf("events not descending at position %d", i)
		}
	}
}

func TestMergeTimelineDeterministic(t *testing.T) {
	// Same timestamp: relative order unspecified but stable across calls.
	d := NewDate(2025, 5, 5)
	maint := []MaintenanceRecord{{ID: "m1", VehicleID: "v1", Date: d}}
	fuel := []FuelRecord{{ID: "f1", VehicleID: "v1", Date: d}}

	first := MergeTimeline(maint, fuel)
	second := MergeTimeline(maint, fuel)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Kind != second[i].Kind {
			t.Fatalf("order differs at position %d", i)
		}
	}
}

func TestMergeTimelineDoesNotMutateInputs(t *testing.T) {
	maint := []MaintenanceRecord{
		{ID: "m2", VehicleID: "v1", Date: NewDate(2025, 3, 1)},
		{ID: "m1", VehicleID: "v1", Date: NewDate(2025, 1, 1)},
	}
	_ = MergeTimeline(maint, nil)
	if maint[0].ID != "m2" || maint[1].ID != "m1" {
		t.Fatalf("input slice was reordered")
	}
}

func TestGroupByMonth(t *testing.T) {
	maint := []MaintenanceRecord{
		{ID: "m1", VehicleID: "v1", Date: NewDate(2025, 3, 25)},
		{ID: "m2", VehicleID: "v1", Date: NewDate(2025, 3, 2)},
		{ID: "m3", VehicleID: "v1", Date: NewDate(2025, 1, 10)},
	}
	groups := GroupByMonth(MergeTimeline(maint, nil))
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Month != time.March || groups[0].Year != 2025 {
		t.Fatalf("first group %v %d, want March 2025", groups[0].Month, groups[0].Year)
	}
	if groups[0].Label != "March 2025" {
		t.Fatalf("label %q", groups[0].Label)
	}
	if len(groups[0].Events) != 2 || len(groups[1].Events) != 1 {
		t.Fatalf("group sizes %d/%d, want 2/1", len(groups[0].Events), len(groups[1].Events))
	}
}
