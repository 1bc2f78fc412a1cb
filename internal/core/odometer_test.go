package core

import "testing"

func TestCurrentOdometerNoRecords(t *testing.T) {
	v := Vehicle{ID: "v1", InitialOdometer: 10000}
	if got := CurrentOdometer(v, nil, nil); got != 10000 {
		t.Fatalf("got %d, want initial 10000", got)
	}
}

func TestCurrentOdometerMaxAcrossKinds(t *testing.T) {
	v := Vehicle{ID: "v1", InitialOdometer: 10000}
	maint := []MaintenanceRecord{
		{VehicleID: "v1", Odometer: 10300},
		{VehicleID: "v2", Odometer: 99999}, // other vehicle, ignored
	}
	fuel := []FuelRecord{
		{VehicleID: "v1", Odometer: 10200},
		{VehicleID: "v1", Odometer: 10500},
	}
	if got := CurrentOdometer(v, maint, fuel); got != 10500 {
		t.Fatalf("got %d, want 10500", got)
	}
}

func TestCurrentOdometerIgnoresDateOrder(t *testing.T) {
	// A late-entered historical record with a lower reading must not
	// regress the reported current reading.
	v := Vehicle{ID: "v1", InitialOdometer: 10000}
	fuel := []FuelRecord{
		{VehicleID: "v1", Date: NewDate(2025, 3, 1), Odometer: 10500},
		{VehicleID: "v1", Date: NewDate(2025, 1, 1), Odometer: 10100}, // entered later, dated earlier
	}
	if got := CurrentOdometer(v, nil, fuel); got != 10500 {
		t.Fatalf("got %d, want 10500", got)
	}
}

func TestCurrentOdometerMonotonicUnderInsertion(t *testing.T) {
	v := Vehicle{ID: "v1", InitialOdometer: 5000}
	var fuel []FuelRecord
	prev := CurrentOdometer(v, nil, fuel)
	for _, odo := range []int64{5200, 5100, 5900, 5300} {
		fuel = append(fuel, FuelRecord{VehicleID: "v1", Odometer: odo})
		cur := CurrentOdometer(v, nil, fuel)
		if cur < prev {
			t.Fatalf("regressed from %d to %d after inserting %d", prev, cur, odo)
		}
		prev = cur
	}
	if prev != 5900 {
		t.Fatalf("final reading %d, want 5900", prev)
	}
}
