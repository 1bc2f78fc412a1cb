package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"carlog/internal/core"
)

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsedTime, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: parsedTime.UTC()}, nil
}

// parseFilterOptions builds filter options from query parameters,
// falling back to the trailing default window for missing bounds.
func parseFilterOptions(r *http.Request, now time.Time, windowMonths int) (core.FilterOptions, error) {
	today := core.Date{Time: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}
	opts := core.FilterOptions{
		VehicleID: core.AllVehicles,
		Kind:      core.KindAll,
		From:      core.Date{Time: today.AddDate(0, -windowMonths, 0)},
		To:        today,
	}

	q := r.URL.Query()
	if v := strings.TrimSpace(q.Get("vehicle")); v != "" {
		opts.VehicleID = v
	}
	if v := strings.TrimSpace(q.Get("kind")); v != "" {
		opts.Kind = core.RecordKind(v)
		if !opts.Kind.Valid() {
			return core.FilterOptions{}, fmt.Errorf("invalid kind %q", v)
		}
	}
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return core.FilterOptions{}, fmt.Errorf("invalid from date %q", v)
		}
		opts.From = d
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return core.FilterOptions{}, fmt.Errorf("invalid to date %q", v)
		}
		opts.To = d
	}
	if opts.To.Before(opts.From.Time) {
		return core.FilterOptions{}, fmt.Errorf("empty date range: %s after %s",
			opts.From.Format("2006-01-02"), opts.To.Format("2006-01-02"))
	}

	return opts, nil
}

// formatMoney formats cents as a currency string (e.g., "$12.34").
func formatMoney(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-$" + s
	}
	return "$" + s
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": formatMoney,
		"shortDate": func(d core.Date) string {
			return d.Format("Jan 2, 2006")
		},
		"inputDate": func(d core.Date) string {
			return d.Format("2006-01-02")
		},
		"unit": core.Unit,
	}
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
