package faker

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 200; i++ {
		if a.IntBetween(0, 1000) != b.IntBetween(0, 1000) {
			t.Fatalf("int sequence diverged at draw %d", i)
		}
	}

	for i := 0; i < 50; i++ {
		ea, err := a.Email()
		if err != nil {
			t.Fatalf("email failed: %v", err)
		}
		eb, err := b.Email()
		if err != nil {
			t.Fatalf("email failed: %v", err)
		}
		if ea != eb {
			t.Fatalf("email sequence diverged: %s vs %s", ea, eb)
		}
	}
}

func TestIntBetweenBounds(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		v := s.IntBetween(18, 70)
		if v < 18 || v > 70 {
			t.Fatalf("IntBetween(18, 70) returned %d", v)
		}
	}
	if got := s.IntBetween(5, 5); got != 5 {
		t.Errorf("degenerate range returned %d, want 5", got)
	}
}

func TestFloat64BetweenBounds(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		v := s.Float64Between(10, 80)
		if v < 10 || v >= 80 {
			t.Fatalf("Float64Between(10, 80) returned %g", v)
		}
	}
}

func TestEmailsAreUnique(t *testing.T) {
	s := New(7)
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		email, err := s.Email()
		if err != nil {
			t.Fatalf("email %d failed: %v", i, err)
		}
		if seen[email] {
			t.Fatalf("duplicate email: %s", email)
		}
		if !strings.Contains(email, "@") {
			t.Fatalf("implausible email: %s", email)
		}
		seen[email] = true
	}
}

func TestReserveBlocksExistingKeys(t *testing.T) {
	s := New(7)
	first, err := s.SKU("SKU")
	if err != nil {
		t.Fatalf("sku failed: %v", err)
	}

	// a fresh source with the same seed would mint the same key first
	fresh := New(7)
	fresh.Reserve(first)
	second, err := fresh.SKU("SKU")
	if err != nil {
		t.Fatalf("sku failed: %v", err)
	}
	if second == first {
		t.Fatalf("reserved key %s was minted again", first)
	}
}

func TestUniqueFailsWhenExhausted(t *testing.T) {
	s := New(7)
	s.Reserve("only")
	_, err := s.unique(func() string { return "only" })
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}

func TestWeightedDistribution(t *testing.T) {
	s := New(3)
	values := []string{"pending", "paid", "cancelled", "shipped"}
	weights := []float64{0.2, 0.5, 0.1, 0.2}

	counts := make(map[string]int)
	const n = 20000
	for i := 0; i < n; i++ {
		counts[s.Weighted(values, weights)]++
	}

	for i, v := range values {
		got := float64(counts[v]) / n
		if diff := got - weights[i]; diff > 0.02 || diff < -0.02 {
			t.Errorf("%s rate %.3f, want %.3f ± 0.02", v, got, weights[i])
		}
	}
}

func TestSampleIndexesDistinct(t *testing.T) {
	s := New(5)
	for i := 0; i < 100; i++ {
		idxs := s.SampleIndexes(10, 4)
		if len(idxs) != 4 {
			t.Fatalf("got %d indexes, want 4", len(idxs))
		}
		seen := make(map[int]bool)
		for _, idx := range idxs {
			if idx < 0 || idx >= 10 {
				t.Fatalf("index %d out of range", idx)
			}
			if seen[idx] {
				t.Fatalf("duplicate index %d", idx)
			}
			seen[idx] = true
		}
	}

	if got := len(s.SampleIndexes(3, 8)); got != 3 {
		t.Errorf("oversized request returned %d indexes, want 3", got)
	}
}

func TestTimeBetweenWindow(t *testing.T) {
	s := New(9)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 1000; i++ {
		ts := s.TimeBetween(start, end)
		if ts.Before(start) || !ts.Before(end) {
			t.Fatalf("timestamp %s outside [%s, %s)", ts, start, end)
		}
	}
}

func TestMoneyRounding(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{10.005, 10.01},
		{10.004, 10.0},
		{0, 0},
		{79.999, 80.0},
	}
	for _, c := range cases {
		if got := Money(c.in); got != c.want {
			t.Errorf("Money(%g) = %g, want %g", c.in, got, c.want)
		}
	}
}
