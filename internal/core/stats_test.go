package core

import "testing"

func sampleFleet() ([]Vehicle, []MaintenanceRecord, []FuelRecord) {
	vehicles := []Vehicle{
		{ID: "v1", Model: "Corolla", FuelType: Petrol, InitialOdometer: 10000, DateAdded: NewDate(2024, 12, 1)},
		{ID: "v2", Model: "Leaf", FuelType: Electric, InitialOdometer: 500, DateAdded: NewDate(2025, 1, 1)},
	}
	maint := []MaintenanceRecord{
		{ID: "m1", VehicleID: "v1", TaskType: "Oil Change", Date: NewDate(2025, 1, 20), Odometer: 10100, Cost: Money{Cents: 5000}},
		{ID: "m2", VehicleID: "v2", TaskType: "Tires", Date: NewDate(2025, 2, 5), Odometer: 900, Cost: Money{Cents: 30000}},
	}
	fuel := []FuelRecord{
		fill("v1", NewDate(2025, 1, 10), 10200, 20),
		fill("v1", NewDate(2025, 2, 10), 10500, 25),
	}
	return vehicles, maint, fuel
}

func TestAggregateFleetMode(t *testing.T) {
	vehicles, maint, fuel := sampleFleet()
	s := Aggregate(vehicles, maint, fuel, nil)

	if s.TotalMaintenanceCost.Cents != 35000 {
		t.Fatalf("maintenance total %d, want 35000", s.TotalMaintenanceCost.Cents)
	}
	wantFuel := fuel[0].TotalCost.Cents + fuel[1].TotalCost.Cents
	if s.TotalFuelCost.Cents != wantFuel {
		t.Fatalf("fuel total %d, want %d", s.TotalFuelCost.Cents, wantFuel)
	}
	// A single odometer reading is not meaningful across a fleet.
	if s.CurrentOdometer != 0 {
		t.Fatalf("fleet odometer %d, want 0", s.CurrentOdometer)
	}
	if s.FuelEfficiency != nil {
		t.Fatalf("fleet efficiency should be absent")
	}
	if s.LastMaintenanceDate == nil || !s.LastMaintenanceDate.Equal(NewDate(2025, 2, 5).Time) {
		t.Fatalf("last maintenance date %v", s.LastMaintenanceDate)
	}
	if s.LastFuelDate == nil || !s.LastFuelDate.Equal(NewDate(2025, 2, 10).Time) {
		t.Fatalf("last fuel date %v", s.LastFuelDate)
	}
}

func TestAggregateSingleVehicle(t *testing.T) {
	vehicles, maint, fuel := sampleFleet()
	s := Aggregate(vehicles, maint, fuel, &vehicles[0])

	if s.TotalMaintenanceCost.Cents != 5000 {
		t.Fatalf("maintenance total %d, want 5000", s.TotalMaintenanceCost.Cents)
	}
	if s.CurrentOdometer != 10500 {
		t.Fatalf("current odometer %d, want 10500", s.CurrentOdometer)
	}
	if s.TotalDistance != 500 {
		t.Fatalf("total distance %d, want 500", s.TotalDistance)
	}
	if s.FuelEfficiency == nil || *s.FuelEfficiency != 12.0 {
		t.Fatalf("efficiency %v, want 12.0", s.FuelEfficiency)
	}
	if s.MaintenanceCount != 1 || s.FuelCount != 2 {
		t.Fatalf("counts %d/%d, want 1/2", s.MaintenanceCount, s.FuelCount)
	}
}

func TestAggregateVehicleWithoutRecords(t *testing.T) {
	v := Vehicle{ID: "v9", Model: "Yaris", FuelType: Petrol, InitialOdometer: 42000, DateAdded: NewDate(2025, 1, 1)}
	s := Aggregate([]Vehicle{v}, nil, nil, &v)

	if s.TotalMaintenanceCost.Cents != 0 || s.TotalFuelCost.Cents != 0 {
		t.Fatalf("totals %d/%d, want 0/0", s.TotalMaintenanceCost.Cents, s.TotalFuelCost.Cents)
	}
	if s.CurrentOdometer != 42000 {
		t.Fatalf("odometer %d, want initial 42000", s.CurrentOdometer)
	}
	if s.TotalDistance != 0 {
		t.Fatalf("distance %d, want 0", s.TotalDistance)
	}
	if s.FuelEfficiency != nil || s.LastMaintenanceDate != nil || s.LastFuelDate != nil {
		t.Fatalf("optional fields should be absent")
	}
}
