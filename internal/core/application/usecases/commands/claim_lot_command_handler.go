package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// LotItem is one SKU a picker has to collect for a lot.
type LotItem struct {
	SKU              string
	ProductName      string
	Quantity         int
	Boxes            int
	ReservedBoxes    int
	WeightBased      bool
	ReservationState string
}

// ClaimLotResult is the pick list handed to the picker.
type ClaimLotResult struct {
	LotNumber    string
	OrderID      kernel.UUID
	OrderNumber  string
	PalletNumber int
	LotStatus    string
	Items        []LotItem
}

// ClaimLotCommandHandler assigns the order of a lot to a picker.
//
// started_by is written by a single conditional update, so two pickers racing for the same
// order cannot both win: the loser gets order.ErrAlreadyClaimed. The same picker may claim
// further lots of the order.
type ClaimLotCommandHandler struct {
	uowFactory UoWFactory
}

func NewClaimLotCommandHandler(uowFactory UoWFactory) ClaimLotCommandHandler {
	return ClaimLotCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ClaimLotCommandHandler) Handle(ctx context.Context, cmd ClaimLotCommand) (ClaimLotResult, error) {
	if err := cmd.Validate(); err != nil {
		return ClaimLotResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ClaimLotResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lotRepo := uow.LotRepository()
	orderRepo := uow.OrderRepository()

	l, err := lotRepo.GetByNumber(ctx, cmd.LotNumber())
	if err != nil {
		return ClaimLotResult{}, err
	}
	o, err := orderRepo.Get(ctx, l.OrderID())
	if err != nil {
		return ClaimLotResult{}, err
	}
	if l, err = lotRepo.GetByNumber(ctx, cmd.LotNumber()); err != nil {
		return ClaimLotResult{}, err
	}

	if err = o.Claim(cmd.PickerID()); err != nil {
		return ClaimLotResult{}, err
	}
	claimed, err := orderRepo.ClaimForPicker(ctx, o.ID(), cmd.PickerID())
	if err != nil {
		return ClaimLotResult{}, err
	}
	if !claimed {
		return ClaimLotResult{}, fmt.Errorf("%w: order %s", order.ErrAlreadyClaimed, o.Number())
	}

	if err = l.Start(cmd.PickerID()); err != nil {
		return ClaimLotResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return ClaimLotResult{}, err
	}
	if err = lotRepo.Update(ctx, l); err != nil {
		return ClaimLotResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ClaimLotResult{}, err
	}

	result := ClaimLotResult{
		LotNumber:    l.Number(),
		OrderID:      o.ID(),
		OrderNumber:  o.Number(),
		PalletNumber: l.PalletNumber(),
		LotStatus:    l.Status().String(),
		Items:        make([]LotItem, 0),
	}
	for _, item := range o.ItemsInLot(l.Number()) {
		result.Items = append(result.Items, LotItem{
			SKU:              item.SKU(),
			ProductName:      item.ProductName(),
			Quantity:         item.Quantity(),
			Boxes:            item.BoxCount(),
			ReservedBoxes:    item.ReservedQuantity(),
			WeightBased:      item.IsWeightBased(),
			ReservationState: string(item.ReservationStatus()),
		})
	}
	return result, nil
}
