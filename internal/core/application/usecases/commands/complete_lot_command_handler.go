package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/lot"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// CompleteLotResult reports the totals of a packed lot.
type CompleteLotResult struct {
	LotNumber     string
	BoxCount      int
	TotalWeight   decimal.Decimal
	OrderPacked   bool
	AlreadyPacked bool
}

// CompleteLotCommandHandler packs a lot whose items are all picked. A lot that is
// already packed is returned unchanged; a lot with outstanding boxes fails with
// lot.ErrNotFullyPicked.
type CompleteLotCommandHandler struct {
	uowFactory UoWFactory
}

func NewCompleteLotCommandHandler(uowFactory UoWFactory) CompleteLotCommandHandler {
	return CompleteLotCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CompleteLotCommandHandler) Handle(ctx context.Context, cmd CompleteLotCommand) (CompleteLotResult, error) {
	if err := cmd.Validate(); err != nil {
		return CompleteLotResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CompleteLotResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	l, err := uow.LotRepository().GetByNumber(ctx, cmd.LotNumber())
	if err != nil {
		return CompleteLotResult{}, err
	}
	o, err := uow.OrderRepository().Get(ctx, l.OrderID())
	if err != nil {
		return CompleteLotResult{}, err
	}
	if l, err = uow.LotRepository().GetByNumber(ctx, cmd.LotNumber()); err != nil {
		return CompleteLotResult{}, err
	}
	if l.IsPacked() {
		return CompleteLotResult{
			LotNumber:     l.Number(),
			BoxCount:      l.BoxCount(),
			TotalWeight:   l.TotalWeight(),
			OrderPacked:   o.Status() == order.Packed,
			AlreadyPacked: true,
		}, nil
	}

	records, err := uow.PickRepository().ListByLot(ctx, l.Number())
	if err != nil {
		return CompleteLotResult{}, err
	}
	if !services.NewPickAllocator().LotIsComplete(o.ItemsInLot(l.Number()), records) {
		return CompleteLotResult{}, fmt.Errorf("%w: %s", lot.ErrNotFullyPicked, l.Number())
	}

	if err = closeLot(ctx, uow.LotRepository(), o, l, records, cmd.PickerID(), time.Now().UTC()); err != nil {
		return CompleteLotResult{}, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return CompleteLotResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CompleteLotResult{}, err
	}

	return CompleteLotResult{
		LotNumber:   l.Number(),
		BoxCount:    l.BoxCount(),
		TotalWeight: l.TotalWeight(),
		OrderPacked: o.Status() == order.Packed,
	}, nil
}
