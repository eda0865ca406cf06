package kernel

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Level is the vertical tier of a rack position.
type Level int

const (
	// GroundLevel is the picking tier. Pickers draw stock only from ground positions.
	GroundLevel Level = 1
	// MaxLevel is the highest rack tier the warehouse uses.
	MaxLevel Level = 10
)

// ErrLocationIsNotConstructed is returned when a Location was not created by NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is a storage position in the warehouse identified by rack row, cell and level.
// Location is an immutable value object. The zero value is invalid.
//
// Example:
//
//	loc, err := kernel.NewLocation("A", "07", 1)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(loc.Code())        // Output: A-07-1
//	fmt.Println(loc.IsGroundTier()) // Output: true
type Location struct { //nolint:recvcheck //using for validation
	row   string
	cell  string
	level Level
	guard guard.ConstructorGuard
}

// NewLocation creates a validated storage position.
//
// Parameters:
//   - row: rack row designation, must not be blank
//   - cell: cell designation inside the row, must not be blank
//   - level: tier between GroundLevel and MaxLevel inclusive
//
// Returns:
//   - Location: a valid location
//   - error: joined validation errors for every invalid argument
func NewLocation(row string, cell string, level Level) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setRow(row), loc.setCell(cell), loc.setLevel(level)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks that the Location was created by NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Row() string {
	return l.row
}

func (l Location) Cell() string {
	return l.cell
}

func (l Location) Level() Level {
	return l.level
}

// IsGroundTier reports whether the position is directly reachable by pickers.
func (l Location) IsGroundTier() bool {
	return l.level == GroundLevel
}

// Code returns the printable position code "row-cell-level" shown on rack labels.
func (l Location) Code() string {
	return fmt.Sprintf("%s-%s-%d", l.row, l.cell, l.level)
}

func (l Location) String() string {
	return "Location(" + l.Code() + ")"
}

// IsEqual compares two locations by row, cell and level.
//
// Returns:
//   - bool: true when both designate the same position
//   - error: validation error if either location is a zero value
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.row == other.row && l.cell == other.cell && l.level == other.level, nil
}

func (l *Location) setRow(row string) error {
	row = strings.TrimSpace(row)
	if row == "" {
		return errs.NewValueIsRequiredError("row")
	}

	l.row = row
	return nil
}

func (l *Location) setCell(cell string) error {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return errs.NewValueIsRequiredError("cell")
	}

	l.cell = cell
	return nil
}

func (l *Location) setLevel(level Level) error {
	if level < GroundLevel || level > MaxLevel {
		return errs.NewValueIsOutOfRangeError("level", level, GroundLevel, MaxLevel)
	}

	l.level = level
	return nil
}
