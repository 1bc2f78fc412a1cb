package core

// CurrentOdometer resolves a vehicle's current reading: the maximum odometer
// value across its own maintenance and fuel records, or the initial reading
// if it has none. Date order is deliberately ignored so that a late-entered
// historical record with a lower reading cannot regress the result.
func CurrentOdometer(v Vehicle, maint []MaintenanceRecord, fuel []FuelRecord) int64 {
	max := v.InitialOdometer
	found := false
	for _, r := range maint {
		if r.VehicleID != v.ID {
			continue
		}
		if !found || r.Odometer > max {
			max = r.Odometer
			found = true
		}
	}
	for _, r := range fuel {
		if r.VehicleID != v.ID {
			continue
		}
		if !found || r.Odometer > max {
			max = r.Odometer
			found = true
		}
	}
	if !found {
		return v.InitialOdometer
	}
	return max
}
