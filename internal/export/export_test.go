package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"carlog/internal/core"
	"carlog/internal/storage"
)

func sampleSnapshot() storage.Snapshot {
	return storage.Snapshot{
		Vehicles: []core.Vehicle{
			{ID: "v1", Model: "Corolla", FuelType: core.Petrol, InitialOdometer: 10000, DateAdded: core.NewDate(2025, 1, 1)},
		},
		MaintenanceRecords: []core.MaintenanceRecord{
			{ID: "m1", VehicleID: "v1", TaskType: "Oil Change", Date: core.NewDate(2025, 2, 1), Odometer: 10100, Cost: core.Money{Cents: 4550}, Notes: "5W-30"},
		},
		FuelRecords: []core.FuelRecord{
			{ID: "f1", VehicleID: "v1", FuelType: "Petrol", Amount: 20.5, PricePerUnit: core.Money{Cents: 189}, TotalCost: core.Money{Cents: 3875}, Date: core.NewDate(2025, 2, 10), Odometer: 10300},
		},
	}
}

func TestBuildDocument(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	doc := Build(sampleSnapshot(), now)

	if len(doc.Vehicles) != 1 || len(doc.MaintenanceRecords) != 1 || len(doc.FuelRecords) != 1 {
		t.Fatalf("document sizes %d/%d/%d", len(doc.Vehicles), len(doc.MaintenanceRecords), len(doc.FuelRecords))
	}
	if doc.ExportDate != "2025-06-15T10:30:00Z" {
		t.Fatalf("export date %q", doc.ExportDate)
	}
	if doc.MaintenanceRecords[0].Cost != 45.50 {
		t.Fatalf("maintenance cost %v, want 45.50", doc.MaintenanceRecords[0].Cost)
	}
	if doc.FuelRecords[0].PricePerUnit != 1.89 || doc.FuelRecords[0].TotalCost != 38.75 {
		t.Fatalf("fuel money fields %v/%v", doc.FuelRecords[0].PricePerUnit, doc.FuelRecords[0].TotalCost)
	}
}

func TestBuildEmptySnapshotKeepsArrays(t *testing.T) {
	doc := Build(storage.Snapshot{}, time.Now())

	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	// Empty collections must encode as [], never null.
	if strings.Contains(out, "null") {
		t.Fatalf("document contains null collections:\n%s", out)
	}
}

func TestWriteCamelCaseKeys(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Build(sampleSnapshot(), time.Now())); err != nil {
		t.Fatalf("write: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"vehicles", "maintenanceRecords", "fuelRecords", "exportDate"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("missing top-level key %q", key)
		}
	}

	out := buf.String()
	for _, key := range []string{`"vehicleId"`, `"taskType"`, `"pricePerUnit"`, `"initialOdometer"`} {
		if !strings.Contains(out, key) {
			t.Fatalf("missing field key %s", key)
		}
	}
	if !strings.HasPrefix(out, "{\n  ") {
		t.Fatalf("document not indented:\n%.40s", out)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	if got := Filename(now); got != "carlog-export-2025-06-15.json" {
		t.Fatalf("filename %q", got)
	}
}
