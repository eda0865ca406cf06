package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/domain/model/transfer"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// PickedPallet is the part of a pick taken from one pallet.
type PickedPallet struct {
	PalletID string
	Location string
	Boxes    int
	Weight   decimal.Decimal
}

// PickResult describes a performed pick.
type PickResult struct {
	SKU            string
	RequestedBoxes int
	PickedBoxes    int
	Weight         decimal.Decimal
	Pallets        []PickedPallet
	Underpicked    bool
	LotPacked      bool
	OrderPacked    bool
	// AlreadyPacked is set when the lot was packed before the call and nothing was picked.
	AlreadyPacked bool
}

// PerformPickingCommandHandler takes boxes from picking-tier pallets first-expired-first-out.
//
// Business rules:
//   - the order must be assembling and the SKU must belong to the lot
//   - picking is blocked while an unconfirmed transfer of the SKU exists
//   - when the picking tier holds fewer boxes than requested, transfers are queued and
//     committed, then picking.RequiresTransferError is returned
//   - each pallet touched yields one audit record
//   - the lot closes once every item has its boxes picked, the order packs with its last lot
//   - picking into a packed lot is a no-op
type PerformPickingCommandHandler struct {
	uowFactory UoWFactory
	ids        *snowflake.Node
}

func NewPerformPickingCommandHandler(uowFactory UoWFactory, ids *snowflake.Node) PerformPickingCommandHandler {
	return PerformPickingCommandHandler{
		uowFactory: uowFactory,
		ids:        ids,
	}
}

func (h PerformPickingCommandHandler) Handle(ctx context.Context, cmd PerformPickingCommand) (PickResult, error) {
	if err := cmd.Validate(); err != nil {
		return PickResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PickResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	result := PickResult{SKU: cmd.SKU(), RequestedBoxes: cmd.RequestedBoxes(), Weight: decimal.Zero}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return PickResult{}, err
	}
	l, err := uow.LotRepository().GetByNumber(ctx, cmd.LotNumber())
	if err != nil {
		return PickResult{}, err
	}
	if !l.OrderID().IsEqual(o.ID()) {
		return PickResult{}, errs.NewObjectNotFoundError("lot", cmd.LotNumber())
	}
	if l.IsPacked() {
		result.LotPacked = true
		result.AlreadyPacked = true
		result.OrderPacked = o.Status() == order.Packed
		return result, nil
	}
	if o.Status() != order.Assembling {
		return PickResult{}, errs.NewStateTransitionError("order", o.Status().String(), "picking")
	}

	item, ok := o.FindItem(cmd.SKU(), cmd.LotNumber())
	if !ok {
		return PickResult{}, errs.NewObjectNotFoundError("item", cmd.SKU())
	}

	pending, err := uow.TransferRepository().ListUnconfirmedBySKU(ctx, cmd.SKU())
	if err != nil {
		return PickResult{}, err
	}
	if len(pending) > 0 {
		return PickResult{}, fmt.Errorf("%w: %s has %d unconfirmed transfer(s)", picking.ErrTransferPending, cmd.SKU(), len(pending))
	}

	if _, err = uow.CatalogRepository().Get(ctx, cmd.SKU()); err != nil {
		return PickResult{}, err
	}

	ledgers := newLedgerSet(uow.StockRepository())
	ledger, err := ledgers.get(ctx, cmd.SKU())
	if err != nil {
		return PickResult{}, err
	}
	pallets, err := uow.PalletRepository().ListBySKU(ctx, cmd.SKU())
	if err != nil {
		return PickResult{}, err
	}
	onGround := 0
	for _, p := range pallets {
		if p.Location().IsGroundTier() {
			onGround += p.BoxCount()
		}
	}

	if onGround < cmd.RequestedBoxes() {
		return PickResult{}, h.requireTransfer(ctx, uow, cmd, onGround, now)
	}

	allocator := services.NewPickAllocator()
	plan, err := allocator.Allocate(cmd.RequestedBoxes(), pallets)
	if err != nil {
		return PickResult{}, err
	}

	pickedAt := make([]string, 0, len(plan.Lines))
	for _, line := range plan.Lines {
		pickedAt = append(pickedAt, line.Pallet.Location().Code())
	}
	if err = releaseAllocation(ledger, item.ConsumeReservation(plan.Picked, pickedAt...)); err != nil {
		return PickResult{}, err
	}

	for _, line := range plan.Lines {
		if _, err = ledger.Withdraw(line.Pallet.Location(), line.Boxes); err != nil {
			return PickResult{}, err
		}
		if err = uow.PalletRepository().Update(ctx, line.Pallet); err != nil {
			return PickResult{}, err
		}

		record, err := picking.NewRecord(picking.RecordState{
			ID:               h.ids.Generate().Int64(),
			OrderID:          o.ID(),
			LotNumber:        l.Number(),
			SKU:              item.SKU(),
			ProductName:      item.ProductName(),
			PalletID:         line.Pallet.ID(),
			Location:         line.Pallet.Location(),
			RequestedBoxes:   cmd.RequestedBoxes(),
			PickedBoxes:      line.Boxes,
			CalculatedWeight: line.Weight,
			WeightBased:      item.IsWeightBased(),
			Underpicked:      plan.Underpicked,
			PickerID:         cmd.PickerID(),
			PickedAt:         now,
		})
		if err != nil {
			return PickResult{}, err
		}
		if err = uow.PickRepository().Add(ctx, record); err != nil {
			return PickResult{}, err
		}

		result.Pallets = append(result.Pallets, PickedPallet{
			PalletID: line.Pallet.ID(),
			Location: line.Pallet.Location().Code(),
			Boxes:    line.Boxes,
			Weight:   line.Weight,
		})
		result.Weight = result.Weight.Add(line.Weight)
	}
	result.PickedBoxes = plan.Picked
	result.Underpicked = plan.Underpicked

	if err = ledgers.save(ctx); err != nil {
		return PickResult{}, err
	}

	records, err := uow.PickRepository().ListByLot(ctx, l.Number())
	if err != nil {
		return PickResult{}, err
	}
	if allocator.LotIsComplete(o.ItemsInLot(l.Number()), records) {
		if err = closeLot(ctx, uow.LotRepository(), o, l, records, cmd.PickerID(), now); err != nil {
			return PickResult{}, err
		}
		result.LotPacked = true
		result.OrderPacked = o.Status() == order.Packed
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return PickResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PickResult{}, err
	}

	return result, nil
}

// requireTransfer queues transfers for the missing boxes, commits them and reports the
// shortfall as picking.RequiresTransferError. Without a picking position nothing is queued
// but the shortfall is reported all the same.
func (h PerformPickingCommandHandler) requireTransfer(
	ctx context.Context,
	uow UoW,
	cmd PerformPickingCommand,
	onGround int,
	now time.Time,
) error {
	created := 0
	plan, err := createPendingTransfer(ctx, uow, cmd.SKU(), cmd.RequestedBoxes()-onGround, now)
	switch {
	case errors.Is(err, transfer.ErrNoPickingLocation):
	case err != nil:
		return err
	default:
		created = len(plan.Requests)
		if err = uow.Commit(ctx); err != nil {
			return err
		}
	}

	return &picking.RequiresTransferError{
		SKU:              cmd.SKU(),
		Available:        onGround,
		Required:         cmd.RequestedBoxes(),
		TransfersCreated: created,
	}
}
