package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetCustomerStockQueryIsNotConstructed = errors.New(
		"GetCustomerStockQuery must be created via NewGetCustomerStockQuery constructor",
	)
)

// GetCustomerStockQuery reads everything delivered to one customer, per SKU.
type GetCustomerStockQuery struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetCustomerStockQuery(customerID kernel.UUID) (GetCustomerStockQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerStockQuery{}, err
	}
	return GetCustomerStockQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCustomerStockQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q GetCustomerStockQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerStockQueryIsNotConstructed)
}

// GetCustomerStockQueryResponse carries pieces for piece goods and kilograms for weight goods.
type GetCustomerStockQueryResponse struct {
	SKU         string
	ProductName string
	Kind        string
	Units       int
	Kilograms   decimal.Decimal
	UpdatedAt   time.Time
}
