// Package queries contains read operations for retrieving system state.
// Queries bypass the aggregates and return read models shaped for the HTTP views.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetPendingTransfersQueryIsNotConstructed = errors.New(
		"GetPendingTransfersQuery must be created via NewGetPendingTransfersQuery constructor",
	)
)

// GetPendingTransfersQuery lists unconfirmed transfer requests for the transfer UI.
// An empty SKU lists every SKU.
//
// Example:
//
//	query := NewGetPendingTransfersQuery("SKU-1")
//	transfers, err := NewGetPendingTransfersQueryHandler(db).Handle(ctx, query)
type GetPendingTransfersQuery struct { //nolint:recvcheck //using for validation
	sku   string
	guard guard.ConstructorGuard
}

func NewGetPendingTransfersQuery(sku string) GetPendingTransfersQuery {
	return GetPendingTransfersQuery{sku: sku, guard: guard.NewConstructorGuard()}
}

func (q GetPendingTransfersQuery) SKU() string {
	return q.sku
}

func (q GetPendingTransfersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingTransfersQueryIsNotConstructed)
}

// GetPendingTransfersQueryResponse is one move the floor still has to perform.
type GetPendingTransfersQueryResponse struct {
	ID        kernel.UUID
	SKU       string
	PalletID  string
	From      kernel.Location
	To        kernel.Location
	BoxCount  int
	CreatedAt time.Time
}
