// Package export renders the full ledger as a portable JSON document.
// The document layout mirrors the browser-era backup format so old
// backups and new ones stay interchangeable.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"carlog/internal/core"
	"carlog/internal/storage"
)

type Vehicle struct {
	ID              string `json:"id"`
	Model           string `json:"model"`
	FuelType        string `json:"fuelType"`
	InitialOdometer int64  `json:"initialOdometer"`
	DateAdded       string `json:"dateAdded"`
}

type MaintenanceRecord struct {
	ID        string  `json:"id"`
	VehicleID string  `json:"vehicleId"`
	TaskType  string  `json:"taskType"`
	Date      string  `json:"date"`
	Odometer  int64   `json:"odometer"`
	Cost      float64 `json:"cost"`
	Notes     string  `json:"notes,omitempty"`
}

type FuelRecord struct {
	ID           string  `json:"id"`
	VehicleID    string  `json:"vehicleId"`
	FuelType     string  `json:"fuelType"`
	Amount       float64 `json:"amount"`
	PricePerUnit float64 `json:"pricePerUnit"`
	TotalCost    float64 `json:"totalCost"`
	Date         string  `json:"date"`
	Odometer     int64   `json:"odometer"`
	Notes        string  `json:"notes,omitempty"`
}

type Document struct {
	Vehicles           []Vehicle           `json:"vehicles"`
	MaintenanceRecords []MaintenanceRecord `json:"maintenanceRecords"`
	FuelRecords        []FuelRecord        `json:"fuelRecords"`
	ExportDate         string              `json:"exportDate"`
}

// Build converts a storage snapshot into the export document. Monetary
// amounts are rendered as decimal units, dates as RFC 3339.
func Build(snap storage.Snapshot, now time.Time) Document {
	doc := Document{
		Vehicles:           make([]Vehicle, 0, len(snap.Vehicles)),
		MaintenanceRecords: make([]MaintenanceRecord, 0, len(snap.MaintenanceRecords)),
		FuelRecords:        make([]FuelRecord, 0, len(snap.FuelRecords)),
		ExportDate:         now.UTC().Format(time.RFC3339),
	}

	for _, v := range snap.Vehicles {
		doc.Vehicles = append(doc.Vehicles, Vehicle{
			ID:              v.ID,
			Model:           v.Model,
			FuelType:        string(v.FuelType),
			InitialOdometer: v.InitialOdometer,
			DateAdded:       formatDate(v.DateAdded),
		})
	}
	for _, m := range snap.MaintenanceRecords {
		doc.MaintenanceRecords = append(doc.MaintenanceRecords, MaintenanceRecord{
			ID:        m.ID,
			VehicleID: m.VehicleID,
			TaskType:  m.TaskType,
			Date:      formatDate(m.Date),
			Odometer:  m.Odometer,
			Cost:      m.Cost.Dollars(),
			Notes:     m.Notes,
		})
	}
	for _, f := range snap.FuelRecords {
		doc.FuelRecords = append(doc.FuelRecords, FuelRecord{
			ID:           f.ID,
			VehicleID:    f.VehicleID,
			FuelType:     f.FuelType,
			Amount:       f.Amount,
			PricePerUnit: f.PricePerUnit.Dollars(),
			TotalCost:    f.TotalCost.Dollars(),
			Date:         formatDate(f.Date),
			Odometer:     f.Odometer,
			Notes:        f.Notes,
		})
	}

	return doc
}

// Write encodes the document with two-space indentation and a trailing
// newline.
func Write(w io.Writer, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export document: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write export document: %w", err)
	}
	return nil
}

// Filename returns the suggested download name for an export taken now.
func Filename(now time.Time) string {
	return "carlog-export-" + now.UTC().Format("2006-01-02") + ".json"
}

func formatDate(d core.Date) string {
	return d.UTC().Format(time.RFC3339)
}
