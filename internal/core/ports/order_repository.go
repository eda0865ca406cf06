// Package ports defines the persistence contracts of the fulfillment core.
// Adapters implement them; command and query handlers depend only on these interfaces.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates together with
// their items.
type OrderRepository interface {
	// Add persists a new order and its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order and replaces its item set with the aggregate's items.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items. Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ClaimForPicker sets started_by to pickerID in a single conditional update, only when
	// started_by is unset or already equals pickerID.
	//
	// Returns false without error when another picker holds the order.
	//
	// Example:
	//   ok, err := repo.ClaimForPicker(ctx, orderID, pickerID)
	//   if err != nil {
	//       return err
	//   }
	//   if !ok {
	//       return order.ErrAlreadyClaimed
	//   }
	ClaimForPicker(ctx context.Context, id kernel.UUID, pickerID kernel.UUID) (bool, error)

	// LastNumber returns the highest order number issued for the type, or "" when none.
	LastNumber(ctx context.Context, t order.Type) (string, error)
}
