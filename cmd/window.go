package cmd

import (
	"fmt"
	"time"
)

// resolveWindow turns the --starting-at/--ending-at flags into a concrete
// [start, end) pair. Empty flags default to the current UTC day.
func resolveWindow(startStr, endStr string) (time.Time, time.Time, error) {
	dayStart := time.Now().UTC().Truncate(24 * time.Hour)

	start := dayStart
	end := dayStart.Add(24 * time.Hour)

	var err error
	if startStr != "" {
		if start, err = parseWindowBound(startStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --starting-at: %w", err)
		}
	}
	if endStr != "" {
		if end, err = parseWindowBound(endStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --ending-at: %w", err)
		}
	}
	return start, end, nil
}

func parseWindowBound(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC3339, got %q", value)
	}
	return t.UTC(), nil
}
