package consumption

import (
	"errors"
	"testing"
)

func TestCompute_NormalCases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		previous int64
		proposed int64
		want     int64
	}{
		{"zero to zero", 0, 0, 0},
		{"first reading", 0, 1200, 1200},
		{"typical month", 1200, 1350, 150},
		{"equal indices", 5000, 5000, 0},
		{"at capacity", 99999, 99999, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got, err := Compute(c.previous, c.proposed, Options{})
			if err != nil {
				t.Fatalf("Compute(%d, %d): %v", c.previous, c.proposed, err)
			}
			if got.Consumption != c.want {
				t.Fatalf("consumption = %d, want %d", got.Consumption, c.want)
			}
			if got.Rollover {
				t.Fatalf("unexpected rollover for %d -> %d", c.previous, c.proposed)
			}
		})
	}
}

func TestCompute_Rollover(t *testing.T) {
	t.Parallel()

	got, err := Compute(99500, 50, Options{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !got.Rollover {
		t.Fatal("expected rollover to be detected")
	}
	if got.Consumption != 549 {
		t.Fatalf("consumption = %d, want 549", got.Consumption)
	}
}

func TestCompute_RolloverBoundary(t *testing.T) {
	t.Parallel()

	// previous exactly at MeterMax - RolloverWindow is still within the window
	got, err := Compute(98999, 10, Options{})
	if err != nil {
		t.Fatalf("Compute at window edge: %v", err)
	}
	if !got.Rollover || got.Consumption != 1010 {
		t.Fatalf("got %+v, want rollover with consumption 1010", got)
	}

	// one below the window is a regression
	if _, err := Compute(98998, 10, Options{}); !errors.Is(err, ErrIndexRegression) {
		t.Fatalf("expected ErrIndexRegression, got %v", err)
	}
}

func TestCompute_Regression(t *testing.T) {
	t.Parallel()

	_, err := Compute(50000, 10, Options{})
	if !errors.Is(err, ErrIndexRegression) {
		t.Fatalf("expected ErrIndexRegression, got %v", err)
	}
}

func TestCompute_NegativeIndices(t *testing.T) {
	t.Parallel()

	if _, err := Compute(-1, 10, Options{}); !errors.Is(err, ErrNegativeIndex) {
		t.Fatalf("expected ErrNegativeIndex for previous, got %v", err)
	}
	if _, err := Compute(10, -1, Options{}); !errors.Is(err, ErrNegativeIndex) {
		t.Fatalf("expected ErrNegativeIndex for proposed, got %v", err)
	}
}

func TestCompute_CustomCapacity(t *testing.T) {
	t.Parallel()

	// four digit meter: max 9999, window 100
	opts := Options{MeterMax: 9999, RolloverWindow: 100}

	got, err := Compute(9950, 25, opts)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !got.Rollover || got.Consumption != 74 {
		t.Fatalf("got %+v, want rollover with consumption 74", got)
	}

	// same indices on a five digit meter are a regression
	if _, err := Compute(9950, 25, Options{}); !errors.Is(err, ErrIndexRegression) {
		t.Fatalf("expected ErrIndexRegression on default capacity, got %v", err)
	}
}

func TestCompute_NeverNegative(t *testing.T) {
	t.Parallel()

	for prev := int64(0); prev <= 99999; prev += 3331 {
		for prop := prev; prop <= 99999; prop += 7177 {
			got, err := Compute(prev, prop, Options{})
			if err != nil {
				t.Fatalf("Compute(%d, %d): %v", prev, prop, err)
			}
			if got.Consumption < 0 {
				t.Fatalf("negative consumption %d for %d -> %d", got.Consumption, prev, prop)
			}
		}
	}
}
