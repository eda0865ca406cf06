package http

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	ports.OrderRepository
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) LastNumber(ctx context.Context, t order.Type) (string, error) {
	args := m.Called(ctx, t)
	return args.String(0), args.Error(1)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUoW satisfies every unit of work flavour. Repository accessors other than the order
// repository are never reached by the tests, which fail at Begin or earlier.
type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StockRepository() ports.StockRepository                 { return nil }
func (m *MockUoW) PalletRepository() ports.PalletRepository               { return nil }
func (m *MockUoW) LocationRepository() ports.LocationRepository           { return nil }
func (m *MockUoW) TransferRepository() ports.TransferRepository           { return nil }
func (m *MockUoW) LotRepository() ports.LotRepository                     { return nil }
func (m *MockUoW) PickRepository() ports.PickRepository                   { return nil }
func (m *MockUoW) CatalogRepository() ports.CatalogRepository             { return nil }
func (m *MockUoW) CustomerStockRepository() ports.CustomerStockRepository { return nil }

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct {
	mock.Mock
}

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockInventoryUoWFactory struct {
	mock.Mock
}

func (m *MockInventoryUoWFactory) Create() commands.InventoryUoW {
	args := m.Called()
	return args.Get(0).(commands.InventoryUoW)
}
