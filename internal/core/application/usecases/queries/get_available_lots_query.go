package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetAvailableLotsQueryIsNotConstructed = errors.New(
		"GetAvailableLotsQuery must be created via NewGetAvailableLotsQuery constructor",
	)
)

// GetAvailableLotsQuery lists lots a picker can open: lots in wait or start of orders
// that are processing or assembling.
type GetAvailableLotsQuery struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

func NewGetAvailableLotsQuery() GetAvailableLotsQuery {
	return GetAvailableLotsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAvailableLotsQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableLotsQueryIsNotConstructed)
}

// GetAvailableLotsQueryResponse is one lot row of the picker's worklist.
type GetAvailableLotsQueryResponse struct {
	LotNumber    string
	OrderID      kernel.UUID
	OrderNumber  string
	OrderType    string
	PalletNumber int
	Status       string
	PickerID     *kernel.UUID
	ItemCount    int
	BoxCount     int
}
