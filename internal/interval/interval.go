// Package interval parses human-readable interval strings such as
// "1.5 HOURS", "90 minutes" or "1:30:00" into durations. Quiz and question
// durations arrive from clients in this form and are stored as machine
// durations.
package interval

import (
	"strconv"
	"strings"
	"time"

	"github.com/MasiCal354/quizar/internal/apperr"
)

var units = map[string]time.Duration{
	"s":       time.Second,
	"sec":     time.Second,
	"secs":    time.Second,
	"second":  time.Second,
	"seconds": time.Second,
	"m":       time.Minute,
	"min":     time.Minute,
	"mins":    time.Minute,
	"minute":  time.Minute,
	"minutes": time.Minute,
	"h":       time.Hour,
	"hr":      time.Hour,
	"hrs":     time.Hour,
	"hour":    time.Hour,
	"hours":   time.Hour,
	"d":       24 * time.Hour,
	"day":     24 * time.Hour,
	"days":    24 * time.Hour,
	"w":       7 * 24 * time.Hour,
	"week":    7 * 24 * time.Hour,
	"weeks":   7 * 24 * time.Hour,
}

// Parse converts an interval string into a duration. Accepted forms:
// Go duration syntax ("1h30m"), "<number> <unit>" pairs ("1.5 hours",
// "90 minutes", "2 days 4 hours"), and clock notation ("1:30:00", "04:13").
// Negative intervals are rejected in every form.
func Parse(raw string) (time.Duration, error) {
	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "" {
		return 0, apperr.InvalidDuration("empty interval string")
	}

	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return 0, apperr.InvalidDuration("negative interval: %q", raw)
		}
		return d, nil
	}
	if d, ok := parseClock(s); ok {
		return d, nil
	}
	if d, ok := parseUnits(s); ok {
		return d, nil
	}
	return 0, apperr.InvalidDuration("invalid interval string: %q", raw)
}

// ParseOptional parses raw when non-nil and non-empty, returning nil for
// untimed entities.
func ParseOptional(raw *string) (*time.Duration, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	d, err := Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseClock handles "hh:mm:ss" and "mm:ss".
func parseClock(s string) (time.Duration, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}
	var total time.Duration
	scale := []time.Duration{time.Second, time.Minute, time.Hour}
	for i := 0; i < len(parts); i++ {
		part := strings.TrimSpace(parts[len(parts)-1-i])
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, false
		}
		total += time.Duration(n) * scale[i]
	}
	return total, true
}

// parseUnits handles whitespace-separated "<number> <unit>" pairs.
func parseUnits(s string) (time.Duration, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields)%2 != 0 {
		return 0, false
	}
	var total time.Duration
	for i := 0; i < len(fields); i += 2 {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil || value < 0 {
			return 0, false
		}
		unit, ok := units[fields[i+1]]
		if !ok {
			return 0, false
		}
		total += time.Duration(value * float64(unit))
	}
	return total, true
}
