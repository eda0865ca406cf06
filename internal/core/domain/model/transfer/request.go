// Package transfer models relocation of whole pallets from upper storage tiers to ground-tier
// picking positions: pending requests and the history of confirmed moves.
package transfer

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrNoPickingLocation is returned when no ground-tier destination can be found for a SKU.
	ErrNoPickingLocation = errors.New("no picking location available")
	// ErrPalletNotFound is returned when the pallet is no longer at the request's source.
	ErrPalletNotFound = errors.New("pallet not found at transfer source")
	// ErrAlreadyConfirmed is returned when confirming a request twice.
	ErrAlreadyConfirmed = errors.New("transfer request is already confirmed")

	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")
)

// Request asks a warehouse worker to move one whole pallet to a picking position.
type Request struct {
	id          kernel.UUID
	sku         string
	palletID    string
	from        kernel.Location
	to          kernel.Location
	boxCount    int
	confirmed   bool
	createdAt   time.Time
	confirmedAt *time.Time

	isConstructed bool
}

func NewRequest(
	id kernel.UUID,
	sku, palletID string,
	from, to kernel.Location,
	boxCount int,
	createdAt time.Time,
) (*Request, error) {
	if err := errors.Join(id.Validate(), from.Validate(), to.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(sku) == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}
	if strings.TrimSpace(palletID) == "" {
		return nil, errs.NewValueIsRequiredError("palletId")
	}
	if boxCount <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("boxCount", boxCount, 1, math.MaxInt32)
	}
	if same, _ := from.IsEqual(to); same {
		return nil, errs.NewValueIsInvalidErrorWithCause("to",
			fmt.Errorf("destination %s equals source", to.Code()))
	}

	return &Request{
		id:            id,
		sku:           sku,
		palletID:      palletID,
		from:          from,
		to:            to,
		boxCount:      boxCount,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreRequest rebuilds a request loaded from storage.
func RestoreRequest(
	id kernel.UUID,
	sku, palletID string,
	from, to kernel.Location,
	boxCount int,
	createdAt time.Time,
	confirmedAt *time.Time,
) (*Request, error) {
	r, err := NewRequest(id, sku, palletID, from, to, boxCount, createdAt)
	if err != nil {
		return nil, err
	}
	r.confirmed = confirmedAt != nil
	r.confirmedAt = confirmedAt
	return r, nil
}

func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

func (r *Request) ID() kernel.UUID         { return r.id }
func (r *Request) SKU() string             { return r.sku }
func (r *Request) PalletID() string        { return r.palletID }
func (r *Request) From() kernel.Location   { return r.from }
func (r *Request) To() kernel.Location     { return r.to }
func (r *Request) BoxCount() int           { return r.boxCount }
func (r *Request) IsConfirmed() bool       { return r.confirmed }
func (r *Request) CreatedAt() time.Time    { return r.createdAt }
func (r *Request) ConfirmedAt() *time.Time { return r.confirmedAt }

// Confirm marks the move as done. A request can be confirmed once.
func (r *Request) Confirm(at time.Time) error {
	if r.confirmed {
		return fmt.Errorf("%w: %s", ErrAlreadyConfirmed, r.id)
	}
	r.confirmed = true
	r.confirmedAt = &at
	return nil
}
