package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"carlog/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "carlog.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestVehicleRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	v := core.Vehicle{
		ID:              "veh-1",
		Model:           "Corolla",
		FuelType:        core.Petrol,
		InitialOdometer: 10000,
		DateAdded:       core.NewDate(2025, 1, 5),
	}
	if err := repo.InsertVehicle(ctx, v); err != nil {
		t.Fatalf("insert vehicle: %v", err)
	}

	got, err := repo.GetVehicle(ctx, "veh-1")
	if err != nil {
		t.Fatalf("get vehicle: %v", err)
	}
	if got.Model != v.Model || got.FuelType != v.FuelType || got.InitialOdometer != v.InitialOdometer {
		t.Fatalf("got %+v, want %+v", got, v)
	}
	if !got.DateAdded.Equal(v.DateAdded.Time) {
		t.Fatalf("date added %v, want %v", got.DateAdded, v.DateAdded)
	}
}

func TestGetVehicleNotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.GetVehicle(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestLoadAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	v := core.Vehicle{ID: "veh-1", Model: "Leaf", FuelType: core.Electric, InitialOdometer: 500, DateAdded: core.NewDate(2025, 1, 1)}
	if err := repo.InsertVehicle(ctx, v); err != nil {
		t.Fatalf("insert vehicle: %v", err)
	}
	m := core.MaintenanceRecord{
		ID:        "mnt-1",
		VehicleID: "veh-1",
		TaskType:  "Tire Rotation",
		Date:      core.NewDate(2025, 2, 10),
		Odometer:  900,
		Cost:      core.Money{Cents: 4500},
		Notes:     "front to back",
	}
	if err := repo.InsertMaintenance(ctx, m); err != nil {
		t.Fatalf("insert maintenance: %v", err)
	}
	f := core.FuelRecord{
		ID:           "ful-1",
		VehicleID:    "veh-1",
		FuelType:     "Electricity",
		Amount:       32.5,
		PricePerUnit: core.Money{Cents: 28},
		TotalCost:    core.Money{Cents: 910},
		Date:         core.NewDate(2025, 2, 15),
		Odometer:     1100,
	}
	if err := repo.InsertFuel(ctx, f); err != nil {
		t.Fatalf("insert fuel: %v", err)
	}

	snap, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(snap.Vehicles) != 1 || len(snap.MaintenanceRecords) != 1 || len(snap.FuelRecords) != 1 {
		t.Fatalf("snapshot sizes %d/%d/%d, want 1/1/1",
			len(snap.Vehicles), len(snap.MaintenanceRecords), len(snap.FuelRecords))
	}

	gotM := snap.MaintenanceRecords[0]
	if gotM.Cost.Cents != 4500 || gotM.Notes != "front to back" {
		t.Fatalf("maintenance record %+v", gotM)
	}
	gotF := snap.FuelRecords[0]
	if gotF.Amount != 32.5 || gotF.TotalCost.Cents != 910 {
		t.Fatalf("fuel record %+v", gotF)
	}
}

func TestListOrdersByDateDescending(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	v := core.Vehicle{ID: "veh-1", Model: "Yaris", FuelType: core.Hybrid, InitialOdometer: 0, DateAdded: core.NewDate(2025, 1, 1)}
	if err := repo.InsertVehicle(ctx, v); err != nil {
		t.Fatalf("insert vehicle: %v", err)
	}
	dates := []core.Date{core.NewDate(2025, 2, 1), core.NewDate(2025, 4, 1), core.NewDate(2025, 3, 1)}
	for i, d := range dates {
		f := core.FuelRecord{
			ID:           "ful-" + string(rune('a'+i)),
			VehicleID:    "veh-1",
			FuelType:     "Petrol",
			Amount:       10,
			PricePerUnit: core.Money{Cents: 180},
			TotalCost:    core.Money{Cents: 1800},
			Date:         d,
			Odometer:     int64(100 * (i + 1)),
		}
		if err := repo.InsertFuel(ctx, f); err != nil {
			t.Fatalf("insert fuel: %v", err)
		}
	}

	records, err := repo.ListFuel(ctx)
	if err != nil {
		t.Fatalf("list fuel: %v", err)
	}
	for i := 1; i < len(records); i++ {
		if records[i-1].Date.Before(records[i].Date.Time) {
			t.Fatalf("records not in descending date order: %v before %v",
				records[i-1].Date, records[i].Date)
		}
	}
}
