package economy

import (
	"errors"
	"testing"
	"time"

	"github.com/shercoin/shercoin/models"
)

func TestReconcileEnergy(t *testing.T) {
	anchor := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		energy  int
		max     int
		elapsed time.Duration
		want    int
		changed bool
	}{
		{"no time passed", 500, 1000, 0, 500, false},
		{"partial interval discarded", 500, 1000, 2900 * time.Millisecond, 500, false},
		{"one interval", 500, 1000, 3 * time.Second, 505, true},
		{"remainder of second interval ignored", 500, 1000, 5 * time.Second, 505, true},
		{"many intervals", 0, 1000, 60 * time.Second, 100, true},
		{"capped at max", 990, 1000, time.Minute, 1000, true},
		{"already full", 1000, 1000, time.Hour, 1000, false},
		{"long idle fills completely", 3, 1000, 24 * time.Hour, 1000, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &models.Balance{Energy: tc.energy, MaxEnergy: tc.max, EnergyUpdatedAt: anchor}
			got, changed, err := reconcileEnergy(b, anchor.Add(tc.elapsed))
			if err != nil {
				t.Fatalf("reconcileEnergy: %v", err)
			}
			if got != tc.want || changed != tc.changed {
				t.Errorf("got (%d, %v), want (%d, %v)", got, changed, tc.want, tc.changed)
			}
			if b.Energy != tc.energy {
				t.Errorf("balance mutated: energy %d -> %d", tc.energy, b.Energy)
			}
		})
	}
}

func TestReconcileEnergyBadAnchors(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	b := &models.Balance{Energy: 10, MaxEnergy: 1000}
	if _, _, err := reconcileEnergy(b, now); !errors.Is(err, ErrInvalidState) {
		t.Errorf("zero anchor err = %v, want ErrInvalidState", err)
	}

	b = &models.Balance{Energy: 10, MaxEnergy: 1000, EnergyUpdatedAt: now.Add(time.Minute)}
	if _, _, err := reconcileEnergy(b, now); !errors.Is(err, ErrInvalidState) {
		t.Errorf("future anchor err = %v, want ErrInvalidState", err)
	}
}
