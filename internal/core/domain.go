package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Petrol   FuelType = "Petrol"
	Diesel   FuelType = "Diesel"
	Electric FuelType = "Electric"
	Hybrid   FuelType = "Hybrid"
)

type (
	FuelType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Vehicle struct {
		ID              string
		Model           string
		FuelType        FuelType
		InitialOdometer int64
		DateAdded       Date
	}

	MaintenanceRecord struct {
		ID        string
		VehicleID string
		TaskType  string
		Date      Date
		Odometer  int64
		Cost      Money
		Notes     string
	}

	FuelRecord struct {
		ID           string
		VehicleID    string
		FuelType     string // per-fill label, may differ from the vehicle's primary type for hybrids
		Amount       float64
		PricePerUnit Money
		TotalCost    Money
		Date         Date
		Odometer     int64
		Notes        string
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidFuelType  = errors.New("invalid fuel type")
	ErrEmptyModel       = errors.New("empty vehicle model")
	ErrEmptyVehicleID   = errors.New("empty vehicle id")
	ErrEmptyTaskType    = errors.New("empty task type")
	ErrNegativeOdometer = errors.New("negative odometer reading")
	ErrNegativeCost     = errors.New("negative cost")
)

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// NewDate creates a Date at midnight UTC for the given year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (ft FuelType) Valid() bool {
	switch ft {
	case Petrol, Diesel, Electric, Hybrid:
		return true
	}
	return false
}

// Unit returns the purchase unit for a fuel label: kWh for electricity,
// liters for everything else.
func Unit(fuelLabel string) string {
	if fuelLabel == string(Electric) || fuelLabel == "Electricity" {
		return "kWh"
	}
	return "L"
}

func (v Vehicle) Validate() error {
	if len(strings.TrimSpace(v.Model)) == 0 {
		return ErrEmptyModel
	}
	if len(v.Model) > 100 {
		return errors.New("vehicle model too long (max 100 characters)")
	}
	if !v.FuelType.Valid() {
		return ErrInvalidFuelType
	}
	if v.InitialOdometer < 0 {
		return ErrNegativeOdometer
	}
	return v.DateAdded.Validate()
}

func (r MaintenanceRecord) Validate() error {
	if strings.TrimSpace(r.VehicleID) == "" {
		return ErrEmptyVehicleID
	}
	if len(strings.TrimSpace(r.TaskType)) == 0 {
		return ErrEmptyTaskType
	}
	if len(r.TaskType) > 100 {
		return errors.New("task type too long (max 100 characters)")
	}
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if r.Odometer < 0 {
		return ErrNegativeOdometer
	}
	if r.Cost.Cents < 0 {
		return ErrNegativeCost
	}
	if len(r.Notes) > 500 {
		return errors.New("notes too long (max 500 characters)")
	}
	return nil
}

func (r FuelRecord) Validate() error {
	if strings.TrimSpace(r.VehicleID) == "" {
		return ErrEmptyVehicleID
	}
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	if err := r.PricePerUnit.Validate(); err != nil {
		return err
	}
	if err := r.TotalCost.Validate(); err != nil {
		return err
	}
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if r.Odometer < 0 {
		return ErrNegativeOdometer
	}
	if len(r.Notes) > 500 {
		return errors.New("notes too long (max 500 characters)")
	}
	return nil
}
