package cmd

import (
	"testing"
	"time"
)

func TestResolveWindowExplicitBounds(t *testing.T) {
	start, end, err := resolveWindow("2024-01-01", "2024-06-30")
	if err != nil {
		t.Fatalf("resolveWindow failed: %v", err)
	}

	if !start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start: %s", start)
	}
	if !end.Equal(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end: %s", end)
	}
}

func TestResolveWindowRFC3339(t *testing.T) {
	start, _, err := resolveWindow("2024-01-01T06:30:00Z", "")
	if err != nil {
		t.Fatalf("resolveWindow failed: %v", err)
	}
	if start.Hour() != 6 || start.Minute() != 30 {
		t.Errorf("unexpected start: %s", start)
	}
}

func TestResolveWindowDefaultsToCurrentDay(t *testing.T) {
	start, end, err := resolveWindow("", "")
	if err != nil {
		t.Fatalf("resolveWindow failed: %v", err)
	}

	if end.Sub(start) != 24*time.Hour {
		t.Errorf("default window should span one day, got %s", end.Sub(start))
	}
	if start.Hour() != 0 || start.Minute() != 0 {
		t.Errorf("default start should be midnight UTC, got %s", start)
	}
}

func TestResolveWindowRejectsGarbage(t *testing.T) {
	if _, _, err := resolveWindow("yesterday", ""); err == nil {
		t.Error("expected error for malformed start")
	}
	if _, _, err := resolveWindow("", "01/02/2024"); err == nil {
		t.Error("expected error for malformed end")
	}
}
