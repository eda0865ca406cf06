package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/transfer"
)

// TransferRepository persists pending transfer requests and the history of confirmed moves.
type TransferRepository interface {
	Add(ctx context.Context, request *transfer.Request) error
	Update(ctx context.Context, request *transfer.Request) error
	Get(ctx context.Context, id kernel.UUID) (*transfer.Request, error)

	// ListUnconfirmedBySKU returns pending requests of the SKU, oldest first.
	ListUnconfirmedBySKU(ctx context.Context, sku string) ([]*transfer.Request, error)

	AddHistory(ctx context.Context, history transfer.History) error
}
