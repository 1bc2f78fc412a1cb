package core

// StatsSummary holds the derived metrics shown on the dashboard. Optional
// values are nil pointers when there is no data to derive them from; a zero
// total is a real total, never a stand-in for "no data".
type StatsSummary struct {
	TotalMaintenanceCost Money
	TotalFuelCost        Money
	CurrentOdometer      int64
	TotalDistance        int64
	FuelEfficiency       *float64
	LastMaintenanceDate  *Date
	LastFuelDate         *Date
	MaintenanceCount     int
	FuelCount            int
}

// Aggregate produces summary metrics for a single selected vehicle, or for
// the whole fleet when selected is nil. Fleet mode reports CurrentOdometer
// as 0: a single reading is not meaningful across vehicles.
func Aggregate(vehicles []Vehicle, maint []MaintenanceRecord, fuel []FuelRecord, selected *Vehicle) StatsSummary {
	if selected != nil {
		maint = filterByVehicle(maint, selected.ID, func(r MaintenanceRecord) string { return r.VehicleID })
		fuel = filterByVehicle(fuel, selected.ID, func(r FuelRecord) string { return r.VehicleID })
	}

	s := StatsSummary{
		MaintenanceCount: len(maint),
		FuelCount:        len(fuel),
	}
	for _, r := range maint {
		s.TotalMaintenanceCost.Cents += r.Cost.Cents
		s.LastMaintenanceDate = laterOf(s.LastMaintenanceDate, r.Date)
	}
	for _, r := range fuel {
		s.TotalFuelCost.Cents += r.TotalCost.Cents
		s.LastFuelDate = laterOf(s.LastFuelDate, r.Date)
	}

	if selected != nil {
		s.CurrentOdometer = CurrentOdometer(*selected, maint, fuel)
		s.TotalDistance = s.CurrentOdometer - selected.InitialOdometer
		if avg, ok := AverageEfficiency(fuel); ok {
			s.FuelEfficiency = &avg
		}
	}
	return s
}

func filterByVehicle[T any](records []T, vehicleID string, id func(T) string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if id(r) == vehicleID {
			out = append(out, r)
		}
	}
	return out
}

func laterOf(current *Date, candidate Date) *Date {
	if current == nil || candidate.After(current.Time) {
		d := candidate
		return &d
	}
	return current
}
