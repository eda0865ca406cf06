package lot

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status of a lot on the picking floor.
type Status int

const (
	Unknown Status = iota
	// Wait: created with the order, no picker has opened it yet.
	Wait
	// Start: a picker opened the lot.
	Start
	// Packed: every item of the lot is picked.
	Packed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "unknown",
		Wait:    "wait",
		Start:   "start",
		Packed:  "packed",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Validate() error {
	if s < Wait || s > Packed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid lot status", s))
	}
	return nil
}
