package core

import "slices"

// FuelEfficiency computes a distance-per-unit sample between two consecutive
// fills of the same vehicle, previous chronologically first (the caller
// orders them). The sample is undefined (ok=false) when the distance is not
// positive: an out-of-order entry or odometer rollback must not yield a
// misleading or infinite figure.
func FuelEfficiency(current, previous FuelRecord) (float64, bool) {
	distance := current.Odometer - previous.Odometer
	if distance <= 0 || current.Amount <= 0 {
		return 0, false
	}
	return float64(distance) / current.Amount, true
}

// AverageEfficiency averages the defined pairwise samples over a fuel history
// sorted ascending by date. Fewer than two records, or no defined sample,
// yields ok=false. The input slice is not modified.
func AverageEfficiency(fuel []FuelRecord) (float64, bool) {
	if len(fuel) < 2 {
		return 0, false
	}
	sorted := slices.Clone(fuel)
	slices.SortStableFunc(sorted, func(a, b FuelRecord) int {
		return a.Date.Compare(b.Date.Time)
	})

	var sum float64
	var count int
	for i := 1; i < len(sorted); i++ {
		if sample, ok := FuelEfficiency(sorted[i], sorted[i-1]); ok {
			sum += sample
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
