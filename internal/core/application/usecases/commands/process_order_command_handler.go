package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// ErrNothingToProcess is returned when no item of the order could be reserved.
var ErrNothingToProcess = errors.New("no order item could be processed")

// ProcessOrderResult describes the allocation of a processed order.
type ProcessOrderResult struct {
	OrderNumber      string
	PalletsCount     int
	LotNumbers       []string
	ProcessedItems   int
	SkippedSKUs      []string
	RequiresTransfer bool
	TransfersCreated int
	// UnplannedSKUs are short at the picking tier with no transfer covering the gap.
	UnplannedSKUs []string
}

// ProcessOrderCommandHandler moves an order from created to processing.
//
// Inside one transaction it:
//   - converts kilogram asks of weight goods into box estimates
//   - packs items onto pallets by volume, clamped to stock on every tier
//   - reserves picking-tier stock and queues transfers for the shortfall
//   - creates one lot per pallet
//
// When not a single item could be reserved the transaction is rolled back, the order stays
// created and ErrNothingToProcess is returned.
type ProcessOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewProcessOrderCommandHandler(uowFactory UoWFactory) ProcessOrderCommandHandler {
	return ProcessOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ProcessOrderCommandHandler) Handle(ctx context.Context, cmd ProcessOrderCommand) (ProcessOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return ProcessOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ProcessOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ProcessOrderResult{}, err
	}
	if o.Status() != order.Created {
		return ProcessOrderResult{}, errs.NewStateTransitionError("order", o.Status().String(), order.Processing.String())
	}

	skus := distinctSKUs(o.Items())
	products, err := uow.CatalogRepository().GetMany(ctx, skus)
	if err != nil {
		return ProcessOrderResult{}, err
	}

	ledgers := newLedgerSet(uow.StockRepository())
	if err = ledgers.lock(ctx, skus); err != nil {
		return ProcessOrderResult{}, err
	}
	available := make(map[string]int, len(skus))
	pallets := make(map[string][]*inventory.Pallet, len(skus))
	for _, sku := range skus {
		ledger, err := ledgers.get(ctx, sku)
		if err != nil {
			return ProcessOrderResult{}, err
		}
		available[sku] = ledger.TotalAvailableAllLevels()

		if product, ok := products[sku]; ok && product.IsWeightBased() {
			if pallets[sku], err = uow.PalletRepository().ListBySKU(ctx, sku); err != nil {
				return ProcessOrderResult{}, err
			}
		}
	}

	adapter := services.NewWeightAdapter()
	for _, item := range o.Items() {
		if _, err := adapter.Adapt(item, products[item.SKU()], pallets[item.SKU()]); err != nil {
			return ProcessOrderResult{}, err
		}
	}

	packed, err := services.NewPalletPacker().Pack(o, products, available)
	if err != nil {
		return ProcessOrderResult{}, fmt.Errorf("pack order %s: %w", o.Number(), err)
	}

	reservation, err := reserveInventory(ctx, uow, ledgers, o, now)
	if err != nil {
		return ProcessOrderResult{}, fmt.Errorf("reserve order %s: %w", o.Number(), err)
	}
	if reservation.Processed == 0 {
		return ProcessOrderResult{}, fmt.Errorf("%w: order %s", ErrNothingToProcess, o.Number())
	}

	lots, err := services.NewLotBuilder().Build(o, now)
	if err != nil {
		return ProcessOrderResult{}, err
	}
	if err = o.StartProcessing(); err != nil {
		return ProcessOrderResult{}, err
	}

	if err = ledgers.save(ctx); err != nil {
		return ProcessOrderResult{}, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return ProcessOrderResult{}, err
	}

	result := ProcessOrderResult{
		OrderNumber:      o.Number(),
		PalletsCount:     o.PalletsCount(),
		LotNumbers:       make([]string, 0, len(lots)),
		ProcessedItems:   reservation.Processed,
		RequiresTransfer: o.RequiresTransfer(),
		TransfersCreated: reservation.TransfersCreated,
		UnplannedSKUs:    reservation.Unplanned,
	}
	for _, l := range lots {
		if err = uow.LotRepository().Add(ctx, l); err != nil {
			return ProcessOrderResult{}, err
		}
		result.LotNumbers = append(result.LotNumbers, l.Number())
	}
	for _, s := range packed.Skipped {
		result.SkippedSKUs = append(result.SkippedSKUs, s.SKU)
	}
	result.SkippedSKUs = append(result.SkippedSKUs, reservation.Skipped...)

	if err = uow.Commit(ctx); err != nil {
		return ProcessOrderResult{}, err
	}

	return result, nil
}

func distinctSKUs(items []*order.Item) []string {
	seen := make(map[string]struct{}, len(items))
	skus := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.SKU()]; ok {
			continue
		}
		seen[item.SKU()] = struct{}{}
		skus = append(skus, item.SKU())
	}
	return skus
}
