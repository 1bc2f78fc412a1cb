package core

const (
	// AllVehicles selects records from every vehicle.
	AllVehicles = "all"

	KindAll         RecordKind = "all"
	KindMaintenance RecordKind = "maintenance"
	KindFuel        RecordKind = "fuel"
)

type (
	RecordKind string

	// FilterOptions narrows a record collection to a vehicle, a record kind
	// and an inclusive date window.
	FilterOptions struct {
		VehicleID string
		Kind      RecordKind
		From      Date
		To        Date
	}
)

func (k RecordKind) Valid() bool {
	switch k {
	case KindAll, KindMaintenance, KindFuel:
		return true
	}
	return false
}

// DefaultFilterOptions covers all vehicles and record kinds over the
// trailing three months, the window used at initialization and on reset.
func DefaultFilterOptions(now Date) FilterOptions {
	return FilterOptions{
		VehicleID: AllVehicles,
		Kind:      KindAll,
		From:      Date{Time: now.AddDate(0, -3, 0)},
		To:        now,
	}
}

func (o FilterOptions) inWindow(d Date) bool {
	return !d.Before(o.From.Time) && !d.After(o.To.Time)
}

// FilterMaintenance returns the maintenance records passing the options.
// Purely functional; an empty input yields an empty output.
func FilterMaintenance(records []MaintenanceRecord, opts FilterOptions) []MaintenanceRecord {
	out := make([]MaintenanceRecord, 0, len(records))
	if opts.Kind != KindAll && opts.Kind != KindMaintenance {
		return out
	}
	for _, r := range records {
		if opts.VehicleID != AllVehicles && r.VehicleID != opts.VehicleID {
			continue
		}
		if !opts.inWindow(r.Date) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterFuel returns the fuel records passing the options.
func FilterFuel(records []FuelRecord, opts FilterOptions) []FuelRecord {
	out := make([]FuelRecord, 0, len(records))
	if opts.Kind != KindAll && opts.Kind != KindFuel {
		return out
	}
	for _, r := range records {
		if opts.VehicleID != AllVehicles && r.VehicleID != opts.VehicleID {
			continue
		}
		if !opts.inWindow(r.Date) {
			continue
		}
		out = append(out, r)
	}
	return out
}
