package commands_test

import (
	"fmt"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var received = time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC)

// warehouse wires every handler to one in-memory store.
type warehouse struct {
	t     *testing.T
	store *memoryStore
	ids   *snowflake.Node
	seq   int
}

func newWarehouse(t *testing.T) *warehouse {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return &warehouse{t: t, store: newMemoryStore(), ids: node}
}

func (w *warehouse) inventory() inventoryFactory {
	return inventoryFactory{store: w.store}
}

func (w *warehouse) loc(cell string, level kernel.Level) kernel.Location {
	w.t.Helper()
	l, err := kernel.NewLocation("A", cell, level)
	require.NoError(w.t, err)
	return l
}

func (w *warehouse) product(sku string, edge float64, kind catalog.PackagingKind, multiplicity int) {
	w.t.Helper()
	p, err := catalog.NewProduct(sku, "Product "+sku, catalog.Dimensions{Length: edge, Width: edge, Height: edge}, kind, multiplicity)
	require.NoError(w.t, err)
	w.store.committed.products[sku] = p
}

func (w *warehouse) assignPicking(sku string, loc kernel.Location) {
	w.store.committed.locations[loc.Code()] = loc
	w.store.committed.assigned[sku] = loc
}

func (w *warehouse) emptyLocation(loc kernel.Location) {
	w.store.committed.locations[loc.Code()] = loc
}

// receive stores a pallet through the receiving sync command.
func (w *warehouse) receive(sku string, loc kernel.Location, boxes int, weight string, expiry *time.Time) string {
	w.t.Helper()
	w.seq++
	id := fmt.Sprintf("04600000000000%04d", w.seq)
	cmd, err := commands.NewReceivePalletCommand(inventory.PalletState{
		ID:         id,
		SKU:        sku,
		Location:   loc,
		BoxCount:   boxes,
		NetWeight:  decimal.RequireFromString(weight),
		ExpiryDate: expiry,
		ReceivedAt: received.Add(time.Duration(w.seq) * time.Minute),
	})
	require.NoError(w.t, err)
	require.NoError(w.t, commands.NewReceivePalletCommandHandler(w.inventory()).Handle(w.t.Context(), cmd))
	return id
}

func (w *warehouse) createOrder(t order.Type, lines ...commands.OrderLine) kernel.UUID {
	w.t.Helper()
	var customerID *kernel.UUID
	if t == order.Customer {
		id := kernel.NewUUID()
		customerID = &id
	}
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, t, customerID, lines)
	require.NoError(w.t, err)

	_, err = commands.NewCreateOrderCommandHandler(orderFactory{w.store}).Handle(w.t.Context(), cmd)
	require.NoError(w.t, err)
	return id
}

func (w *warehouse) process(orderID kernel.UUID) (commands.ProcessOrderResult, error) {
	w.t.Helper()
	cmd, err := commands.NewProcessOrderCommand(orderID)
	require.NoError(w.t, err)
	return commands.NewProcessOrderCommandHandler(w.store).Handle(w.t.Context(), cmd)
}

func (w *warehouse) claim(lotNumber string, picker kernel.UUID) (commands.ClaimLotResult, error) {
	w.t.Helper()
	cmd, err := commands.NewClaimLotCommand(lotNumber, picker)
	require.NoError(w.t, err)
	return commands.NewClaimLotCommandHandler(w.store).Handle(w.t.Context(), cmd)
}

func (w *warehouse) pick(orderID kernel.UUID, lotNumber, sku string, boxes int, picker kernel.UUID) (commands.PickResult, error) {
	w.t.Helper()
	cmd, err := commands.NewPerformPickingCommand(orderID, lotNumber, sku, boxes, picker)
	require.NoError(w.t, err)
	return commands.NewPerformPickingCommandHandler(w.store, w.ids).Handle(w.t.Context(), cmd)
}

func (w *warehouse) confirmTransfer(id kernel.UUID) error {
	w.t.Helper()
	cmd, err := commands.NewConfirmTransferCommand(id)
	require.NoError(w.t, err)
	return commands.NewConfirmTransferCommandHandler(w.inventory(), w.ids).Handle(w.t.Context(), cmd)
}

func (w *warehouse) order(id kernel.UUID) *order.Order {
	w.t.Helper()
	o, ok := w.store.snapshot().orders[id]
	require.True(w.t, ok)
	return o
}

func (w *warehouse) ledger(sku string) *inventory.Ledger {
	w.t.Helper()
	rows := make([]*inventory.StockRecord, 0)
	for _, r := range w.store.snapshot().rows {
		if r.SKU() == sku {
			rows = append(rows, r)
		}
	}
	l, err := inventory.NewLedger(sku, rows)
	require.NoError(w.t, err)
	return l
}

func (w *warehouse) pendingTransfers(sku string) []kernel.UUID {
	ids := make([]kernel.UUID, 0)
	for id, r := range w.store.snapshot().transfers {
		if r.SKU() == sku && !r.IsConfirmed() {
			ids = append(ids, id)
		}
	}
	return ids
}

type orderFactory struct{ store *memoryStore }

func (f orderFactory) Create() commands.OrderUoW {
	return &memoryUoW{store: f.store}
}

func line(sku string, quantity int) commands.OrderLine {
	return commands.OrderLine{SKU: sku, Quantity: quantity, UnitPrice: decimal.NewFromInt(2)}
}

func daysAhead(n int) *time.Time {
	d := received.AddDate(0, 0, n)
	return &d
}
