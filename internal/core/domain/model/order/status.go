package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
type Status int

const (
	// Unknown is the zero value and never a valid persisted status.
	Unknown Status = iota

	// Created is set by order entry; items are not yet packed or reserved.
	Created

	// Processing means items are packed, reserved and grouped into lots waiting for pickers.
	Processing

	// Assembling means a picker claimed the order and picking is in progress.
	Assembling

	// Packed means every lot of the order is packed.
	Packed

	// Completed is terminal: the order was shipped.
	Completed

	// Cancelled is terminal: reservations were released.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Created:    "created",
		Processing: "processing",
		Assembling: "assembling",
		Packed:     "packed",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// StartProcessing moves a freshly entered order to Processing.
func (s Status) StartProcessing() (Status, error) {
	if s != Created {
		return s, transitionError(s, Processing)
	}
	return Processing, nil
}

// StartAssembling is idempotent for an order that is already being assembled.
func (s Status) StartAssembling() (Status, error) {
	if s != Processing && s != Assembling {
		return s, transitionError(s, Assembling)
	}
	return Assembling, nil
}

func (s Status) Pack() (Status, error) {
	if s != Assembling {
		return s, transitionError(s, Packed)
	}
	return Packed, nil
}

func (s Status) Complete() (Status, error) {
	if s != Packed {
		return s, transitionError(s, Completed)
	}
	return Completed, nil
}

func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s == Unknown {
		return s, transitionError(s, Cancelled)
	}
	return Cancelled, nil
}

func transitionError(from, to Status) error {
	return errs.NewStateTransitionError("order", from.String(), to.String())
}
