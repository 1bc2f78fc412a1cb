package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"carlog/internal/core"
	"carlog/internal/storage"

	"github.com/google/uuid"
)

// ErrOdometerBelowInitial is returned when a record reports an odometer
// reading below the vehicle's initial reading.
var ErrOdometerBelowInitial = errors.New("odometer below vehicle initial reading")

// Store is the persistence surface RecordService needs.
type Store interface {
	InsertVehicle(ctx context.Context, v core.Vehicle) error
	GetVehicle(ctx context.Context, id string) (core.Vehicle, error)
	InsertMaintenance(ctx context.Context, m core.MaintenanceRecord) error
	InsertFuel(ctx context.Context, f core.FuelRecord) error
	LoadAll(ctx context.Context) (storage.Snapshot, error)
}

// RecordService is the creation boundary of the ledger. It assigns ids,
// stamps dates, derives the fuel total and rejects records that do not
// belong to a known vehicle.
type RecordService struct {
	store Store
	now   func() time.Time
}

func NewRecordService(store Store) *RecordService {
	return &RecordService{store: store, now: time.Now}
}

func (s *RecordService) CreateVehicle(ctx context.Context, v core.Vehicle) (core.Vehicle, error) {
	v.ID = uuid.NewString()
	if v.DateAdded.IsZero() {
		v.DateAdded = core.Date{Time: s.now().UTC().Truncate(24 * time.Hour)}
	}

	if err := v.Validate(); err != nil {
		return core.Vehicle{}, fmt.Errorf("validate vehicle: %w", err)
	}
	if err := s.store.InsertVehicle(ctx, v); err != nil {
		return core.Vehicle{}, err
	}

	slog.InfoContext(ctx, "Vehicle created", "id", v.ID, "model", v.Model)
	return v, nil
}

func (s *RecordService) CreateMaintenance(ctx context.Context, m core.MaintenanceRecord) (core.MaintenanceRecord, error) {
	vehicle, err := s.store.GetVehicle(ctx, m.VehicleID)
	if err != nil {
		return core.MaintenanceRecord{}, fmt.Errorf("lookup vehicle: %w", err)
	}

	m.ID = uuid.NewString()
	if err := m.Validate(); err != nil {
		return core.MaintenanceRecord{}, fmt.Errorf("validate maintenance record: %w", err)
	}
	if m.Odometer < vehicle.InitialOdometer {
		return core.MaintenanceRecord{}, fmt.Errorf("odometer %d < initial %d: %w",
			m.Odometer, vehicle.InitialOdometer, ErrOdometerBelowInitial)
	}

	if err := s.store.InsertMaintenance(ctx, m); err != nil {
		return core.MaintenanceRecord{}, err
	}

	slog.InfoContext(ctx, "Maintenance record created",
		"id", m.ID,
		"vehicle_id", m.VehicleID,
		"task_type", m.TaskType)
	return m, nil
}

func (s *RecordService) CreateFuel(ctx context.Context, f core.FuelRecord) (core.FuelRecord, error) {
	vehicle, err := s.store.GetVehicle(ctx, f.VehicleID)
	if err != nil {
		return core.FuelRecord{}, fmt.Errorf("lookup vehicle: %w", err)
	}

	f.ID = uuid.NewString()
	if f.FuelType == "" {
		f.FuelType = string(vehicle.FuelType)
	}
	// The total is derived once here and stored verbatim. Recomputing it
	// on read would let rounding drift between views.
	f.TotalCost = core.Money{Cents: core.MulCents(f.Amount, f.PricePerUnit.Cents)}

	if err := f.Validate(); err != nil {
		return core.FuelRecord{}, fmt.Errorf("validate fuel record: %w", err)
	}
	if f.Odometer < vehicle.InitialOdometer {
		return core.FuelRecord{}, fmt.Errorf("odometer %d < initial %d: %w",
			f.Odometer, vehicle.InitialOdometer, ErrOdometerBelowInitial)
	}

	if err := s.store.InsertFuel(ctx, f); err != nil {
		return core.FuelRecord{}, err
	}

	slog.InfoContext(ctx, "Fuel record created",
		"id", f.ID,
		"vehicle_id", f.VehicleID,
		"amount", f.Amount,
		"total_cost_cents", f.TotalCost.Cents)
	return f, nil
}

// Snapshot exposes the stored ledger for the dashboard and the exporter.
func (s *RecordService) Snapshot(ctx context.Context) (storage.Snapshot, error) {
	return s.store.LoadAll(ctx)
}
