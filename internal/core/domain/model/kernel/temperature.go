package kernel

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// TemperatureTolerance widens a product's storage temperature, in °C, on both sides.
const TemperatureTolerance = 2.0

// ErrTemperatureMismatch is returned when a position's climate does not suit a product.
var ErrTemperatureMismatch = errors.New("storage temperature does not suit the product")

// TemperatureRange is the climate of a storage row in °C, bounds included.
type TemperatureRange struct {
	lowest  float64
	highest float64
}

func NewTemperatureRange(lowest, highest float64) (TemperatureRange, error) {
	if lowest > highest {
		return TemperatureRange{}, errs.NewValueIsInvalidErrorWithCause("temperature",
			fmt.Errorf("lowest %.1f is above highest %.1f", lowest, highest))
	}
	return TemperatureRange{lowest: lowest, highest: highest}, nil
}

func (r TemperatureRange) Lowest() float64  { return r.lowest }
func (r TemperatureRange) Highest() float64 { return r.highest }

// Suits reports whether a product kept at celsius, give or take TemperatureTolerance,
// overlaps the range.
func (r TemperatureRange) Suits(celsius int) bool {
	low := float64(celsius) - TemperatureTolerance
	high := float64(celsius) + TemperatureTolerance
	return low <= r.highest && high >= r.lowest
}

func (r TemperatureRange) String() string {
	return fmt.Sprintf("%.1f..%.1f °C", r.lowest, r.highest)
}
