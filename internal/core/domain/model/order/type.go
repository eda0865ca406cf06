package order

import (
	"fmt"
	"strconv"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Type distinguishes inbound supplier orders from outbound customer orders.
type Type string

const (
	Supplier Type = "supplier"
	Customer Type = "customer"
)

const sequenceDigits = 7

func (t Type) Validate() error {
	switch t {
	case Supplier, Customer:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not an order type", string(t)))
	}
}

// NumberPrefix is the leading part of every order number of this type.
func (t Type) NumberPrefix() string {
	if t == Customer {
		return "600"
	}
	return "300"
}

// FormatNumber builds the order number for the given per-type sequence value.
func FormatNumber(t Type, sequence int) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	if sequence < 1 {
		return "", errs.NewValueIsOutOfRangeError("sequence", sequence, 1, 9_999_999)
	}
	return fmt.Sprintf("%s%0*d", t.NumberPrefix(), sequenceDigits, sequence), nil
}

// NextNumber returns the number following last, or the first number when last is empty.
func NextNumber(t Type, last string) (string, error) {
	if last == "" {
		return FormatNumber(t, 1)
	}

	prefix := t.NumberPrefix()
	if !strings.HasPrefix(last, prefix) {
		return "", errs.NewValueIsInvalidErrorWithCause("orderNumber",
			fmt.Errorf("%s does not start with %s", last, prefix))
	}

	seq, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("orderNumber", err)
	}
	return FormatNumber(t, seq+1)
}
