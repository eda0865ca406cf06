package transfer

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// History is the append-only record of a confirmed pallet move.
type History struct {
	ID       int64
	SKU      string
	PalletID string
	From     kernel.Location
	To       kernel.Location
	BoxCount int
	MovedAt  time.Time
}

// NewHistory records the move described by a confirmed request.
func NewHistory(id int64, r *Request) History {
	movedAt := r.CreatedAt()
	if at := r.ConfirmedAt(); at != nil {
		movedAt = *at
	}

	return History{
		ID:       id,
		SKU:      r.SKU(),
		PalletID: r.PalletID(),
		From:     r.From(),
		To:       r.To(),
		BoxCount: r.BoxCount(),
		MovedAt:  movedAt,
	}
}
