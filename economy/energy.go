package economy

import (
	"time"

	"github.com/shercoin/shercoin/models"
)

// Energy regeneration constants: +5 units per full 3-second interval.
const (
	RegenInterval = 3 * time.Second
	RegenRate     = 5
)

// reconcileEnergy computes the replenished energy for a balance at the given
// instant. It returns the new energy value and whether anything regenerated.
// When regen occurred the caller must persist the new value and advance
// EnergyUpdatedAt to now: the fractional remainder of the current interval is
// deliberately discarded rather than carried over, which keeps the math
// deterministic at the cost of a little regen.
//
// The function does not mutate the balance.
func reconcileEnergy(b *models.Balance, now time.Time) (int, bool, error) {
	if b.EnergyUpdatedAt.IsZero() {
		return 0, false, ErrInvalidState
	}
	elapsed := now.Sub(b.EnergyUpdatedAt)
	if elapsed < 0 {
		return 0, false, ErrInvalidState
	}

	regen := int(elapsed/RegenInterval) * RegenRate
	if regen <= 0 {
		return b.Energy, false, nil
	}

	energy := b.Energy + regen
	if energy > b.MaxEnergy {
		energy = b.MaxEnergy
	}
	return energy, energy != b.Energy, nil
}
