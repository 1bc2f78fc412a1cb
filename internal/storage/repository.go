package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"carlog/internal/core"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("not found")

// Snapshot is the full ledger as stored, used by the dashboard and the
// export document.
type Snapshot struct {
	Vehicles           []core.Vehicle
	MaintenanceRecords []core.MaintenanceRecord
	FuelRecords        []core.FuelRecord
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) InsertVehicle(ctx context.Context, v core.Vehicle) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vehicles (id, model, fuel_type, initial_odometer, date_added)
		 VALUES (?, ?, ?, ?, ?)`,
		v.ID, v.Model, string(v.FuelType), v.InitialOdometer, formatDate(v.DateAdded))
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}

	slog.InfoContext(ctx, "Vehicle saved",
		"id", v.ID,
		"model", v.Model,
		"fuel_type", v.FuelType,
		"initial_odometer", v.InitialOdometer)

	return nil
}

func (r *SQLiteRepository) GetVehicle(ctx context.Context, id string) (core.Vehicle, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, model, fuel_type, initial_odometer, date_added
		 FROM vehicles WHERE id = ?`, id)

	v, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Vehicle{}, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Vehicle{}, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

func (r *SQLiteRepository) ListVehicles(ctx context.Context) ([]core.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, model, fuel_type, initial_odometer, date_added
		 FROM vehicles ORDER BY date_added, id`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := make([]core.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *SQLiteRepository) InsertMaintenance(ctx context.Context, m core.MaintenanceRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO maintenance_records (id, vehicle_id, task_type, date, odometer, cost_cents, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.VehicleID, m.TaskType, formatDate(m.Date), m.Odometer, m.Cost.Cents, m.Notes)
	if err != nil {
		return fmt.Errorf("insert maintenance record: %w", err)
	}

	slog.InfoContext(ctx, "Maintenance record saved",
		"id", m.ID,
		"vehicle_id", m.VehicleID,
		"task_type", m.TaskType,
		"cost_cents", m.Cost.Cents)

	return nil
}

func (r *SQLiteRepository) ListMaintenance(ctx context.Context) ([]core.MaintenanceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, vehicle_id, task_type, date, odometer, cost_cents, notes
		 FROM maintenance_records ORDER BY date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list maintenance records: %w", err)
	}
	defer rows.Close()

	records := make([]core.MaintenanceRecord, 0)
	for rows.Next() {
		var m core.MaintenanceRecord
		var date string
		if err := rows.Scan(&m.ID, &m.VehicleID, &m.TaskType, &date, &m.Odometer, &m.Cost.Cents, &m.Notes); err != nil {
			return nil, fmt.Errorf("scan maintenance record: %w", err)
		}
		if m.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("maintenance record %s: %w", m.ID, err)
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

func (r *SQLiteRepository) InsertFuel(ctx context.Context, f core.FuelRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO fuel_records (id, vehicle_id, fuel_type, amount, price_per_unit_cents, total_cost_cents, date, odometer, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.VehicleID, f.FuelType, f.Amount, f.PricePerUnit.Cents, f.TotalCost.Cents, formatDate(f.Date), f.Odometer, f.Notes)
	if err != nil {
		return fmt.Errorf("insert fuel record: %w", err)
	}

	slog.InfoContext(ctx, "Fuel record saved",
		"id", f.ID,
		"vehicle_id", f.VehicleID,
		"amount", f.Amount,
		"total_cost_cents", f.TotalCost.Cents)

	return nil
}

func (r *SQLiteRepository) ListFuel(ctx context.Context) ([]core.FuelRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, vehicle_id, fuel_type, amount, price_per_unit_cents, total_cost_cents, date, odometer, notes
		 FROM fuel_records ORDER BY date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list fuel records: %w", err)
	}
	defer rows.Close()

	records := make([]core.FuelRecord, 0)
	for rows.Next() {
		var f core.FuelRecord
		var date string
		if err := rows.Scan(&f.ID, &f.VehicleID, &f.FuelType, &f.Amount, &f.PricePerUnit.Cents, &f.TotalCost.Cents, &date, &f.Odometer, &f.Notes); err != nil {
			return nil, fmt.Errorf("scan fuel record: %w", err)
		}
		if f.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("fuel record %s: %w", f.ID, err)
		}
		records = append(records, f)
	}
	return records, rows.Err()
}

// LoadAll reads the three collections concurrently. The dashboard and the
// export document both want a consistent point-in-time view, and SQLite
// serves concurrent readers without locking writers out.
func (r *SQLiteRepository) LoadAll(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Vehicles, err = r.ListVehicles(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.MaintenanceRecords, err = r.ListMaintenance(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.FuelRecords, err = r.ListFuel(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

func scanVehicle(row interface{ Scan(...any) error }) (core.Vehicle, error) {
	var v core.Vehicle
	var fuelType, dateAdded string
	if err := row.Scan(&v.ID, &v.Model, &fuelType, &v.InitialOdometer, &dateAdded); err != nil {
		return core.Vehicle{}, err
	}
	v.FuelType = core.FuelType(fuelType)

	var err error
	if v.DateAdded, err = parseDate(dateAdded); err != nil {
		return core.Vehicle{}, fmt.Errorf("vehicle %s: %w", v.ID, err)
	}
	return v, nil
}

func formatDate(d core.Date) string {
	return d.UTC().Format(time.RFC3339)
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return core.Date{}, fmt.Errorf("parse stored date %q: %w", s, err)
	}
	return core.Date{Time: t}, nil
}
