package commands_test

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/customerstock"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/lot"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/domain/model/transfer"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// memoryData is one snapshot of the warehouse. Values are copies of the aggregates so that a
// rolled back unit of work leaves no trace.
type memoryData struct {
	orders    map[kernel.UUID]*order.Order
	rows      map[kernel.UUID]*inventory.StockRecord
	pallets   map[string]*inventory.Pallet
	locations map[string]kernel.Location
	assigned  map[string]kernel.Location
	climates  map[string]kernel.TemperatureRange
	transfers map[kernel.UUID]*transfer.Request
	history   []transfer.History
	lots      map[string]*lot.Lot
	picks     []*picking.Record
	products  map[string]*catalog.Product
	customer  map[string]*customerstock.Entry
}

func newMemoryData() memoryData {
	return memoryData{
		orders:    make(map[kernel.UUID]*order.Order),
		rows:      make(map[kernel.UUID]*inventory.StockRecord),
		pallets:   make(map[string]*inventory.Pallet),
		locations: make(map[string]kernel.Location),
		assigned:  make(map[string]kernel.Location),
		climates:  make(map[string]kernel.TemperatureRange),
		transfers: make(map[kernel.UUID]*transfer.Request),
		lots:      make(map[string]*lot.Lot),
		products:  make(map[string]*catalog.Product),
		customer:  make(map[string]*customerstock.Entry),
	}
}

func (d memoryData) clone() memoryData {
	return memoryData{
		orders:    maps.Clone(d.orders),
		rows:      maps.Clone(d.rows),
		pallets:   maps.Clone(d.pallets),
		locations: maps.Clone(d.locations),
		assigned:  maps.Clone(d.assigned),
		climates:  maps.Clone(d.climates),
		transfers: maps.Clone(d.transfers),
		history:   slices.Clone(d.history),
		lots:      maps.Clone(d.lots),
		picks:     slices.Clone(d.picks),
		products:  maps.Clone(d.products),
		customer:  maps.Clone(d.customer),
	}
}

// memoryStore is an in-memory warehouse with transactional units of work.
type memoryStore struct {
	mu        sync.Mutex
	committed memoryData
	commits   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{committed: newMemoryData()}
}

func (s *memoryStore) snapshot() memoryData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed.clone()
}

func (s *memoryStore) Create() commands.UoW {
	return &memoryUoW{store: s}
}

type inventoryFactory struct{ store *memoryStore }

func (f inventoryFactory) Create() commands.InventoryUoW {
	return &memoryUoW{store: f.store}
}

type memoryUoW struct {
	store *memoryStore
	tx    *memoryData
}

func (u *memoryUoW) Begin(context.Context) error {
	if u.tx == nil {
		data := u.store.snapshot()
		u.tx = &data
	}
	return nil
}

func (u *memoryUoW) Commit(context.Context) error {
	if u.tx == nil {
		return errs.NewValueIsInvalidError("transaction")
	}
	u.store.mu.Lock()
	u.store.committed = *u.tx
	u.store.commits++
	u.store.mu.Unlock()
	u.tx = nil
	return nil
}

func (u *memoryUoW) Rollback(context.Context) error {
	if u.tx == nil {
		return errs.NewValueIsInvalidError("transaction")
	}
	u.tx = nil
	return nil
}

func (u *memoryUoW) OrderRepository() ports.OrderRepository       { return memoryOrders{u} }
func (u *memoryUoW) StockRepository() ports.StockRepository       { return memoryStock{u} }
func (u *memoryUoW) PalletRepository() ports.PalletRepository     { return memoryPallets{u} }
func (u *memoryUoW) LocationRepository() ports.LocationRepository { return memoryLocations{u} }
func (u *memoryUoW) TransferRepository() ports.TransferRepository { return memoryTransfers{u} }
func (u *memoryUoW) LotRepository() ports.LotRepository           { return memoryLots{u} }
func (u *memoryUoW) PickRepository() ports.PickRepository         { return memoryPicks{u} }
func (u *memoryUoW) CatalogRepository() ports.CatalogRepository   { return memoryCatalog{u} }
func (u *memoryUoW) CustomerStockRepository() ports.CustomerStockRepository {
	return memoryCustomerStock{u}
}

// --- copies ---

func copyOrder(o *order.Order) *order.Order {
	items := make([]*order.Item, 0, len(o.Items()))
	for _, i := range o.Items() {
		items = append(items, copyItem(i))
	}
	restored, err := order.RestoreOrder(order.State{
		ID:               o.ID(),
		Number:           o.Number(),
		Type:             o.Type(),
		CustomerID:       o.CustomerID(),
		Status:           o.Status(),
		RequiresTransfer: o.RequiresTransfer(),
		PalletsCount:     o.PalletsCount(),
		StartedBy:        o.StartedBy(),
		CreatedAt:        o.CreatedAt(),
		Items:            items,
	})
	if err != nil {
		panic(err)
	}
	return restored
}

func copyItem(i *order.Item) *order.Item {
	restored, err := order.RestoreItem(order.ItemState{
		ID:                i.ID(),
		SKU:               i.SKU(),
		ProductName:       i.ProductName(),
		Quantity:          i.Quantity(),
		OriginalQuantity:  i.OriginalQuantity(),
		ReservedQuantity:  i.ReservedQuantity(),
		ReservedAt:        i.ReservedAt(),
		ReservationStatus: i.ReservationStatus(),
		PalletNumber:      i.PalletNumber(),
		LotNumber:         i.LotNumber(),
		Dimensions:        i.Dimensions(),
		Multiplicity:      i.Multiplicity(),
		WeightBased:       i.IsWeightBased(),
		UnitPrice:         i.UnitPrice(),
	})
	if err != nil {
		panic(err)
	}
	return restored
}

func copyRow(r *inventory.StockRecord) *inventory.StockRecord {
	restored, err := inventory.RestoreStockRecord(r.ID(), r.SKU(), r.Location(), r.Quantity(), r.Reserved(), r.CreatedAt())
	if err != nil {
		panic(err)
	}
	return restored
}

func copyPallet(p *inventory.Pallet) *inventory.Pallet {
	restored, err := inventory.NewPallet(inventory.PalletState{
		ID:            p.ID(),
		SKU:           p.SKU(),
		ProductName:   p.ProductName(),
		Location:      p.Location(),
		BoxCount:      p.BoxCount(),
		NetWeight:     p.NetWeight(),
		ExpiryDate:    p.ExpiryDate(),
		InvoiceNumber: p.InvoiceNumber(),
		ReceivedAt:    p.ReceivedAt(),
	})
	if err != nil {
		panic(err)
	}
	return restored
}

func copyRequest(r *transfer.Request) *transfer.Request {
	restored, err := transfer.RestoreRequest(r.ID(), r.SKU(), r.PalletID(), r.From(), r.To(), r.BoxCount(),
		r.CreatedAt(), r.ConfirmedAt())
	if err != nil {
		panic(err)
	}
	return restored
}

func copyLot(l *lot.Lot) *lot.Lot {
	restored, err := lot.RestoreLot(lot.State{
		ID:           l.ID(),
		Number:       l.Number(),
		OrderID:      l.OrderID(),
		PalletNumber: l.PalletNumber(),
		Status:       l.Status(),
		BoxCount:     l.BoxCount(),
		TotalWeight:  l.TotalWeight(),
		CompletedAt:  l.CompletedAt(),
		PickerID:     l.PickerID(),
		SKUs:         l.SKUs(),
	})
	if err != nil {
		panic(err)
	}
	return restored
}

func copyEntry(e *customerstock.Entry) *customerstock.Entry {
	restored, err := customerstock.RestoreEntry(e.CustomerID(), e.SKU(), e.ProductName(), e.Kind(),
		e.Units(), e.Kilograms(), e.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return restored
}

// --- repositories ---

type memoryOrders struct{ u *memoryUoW }

func (r memoryOrders) Add(_ context.Context, o *order.Order) error {
	r.u.tx.orders[o.ID()] = copyOrder(o)
	return nil
}

func (r memoryOrders) Update(_ context.Context, o *order.Order) error {
	if _, ok := r.u.tx.orders[o.ID()]; !ok {
		return errs.NewObjectNotFoundError("order", o.ID().String())
	}
	r.u.tx.orders[o.ID()] = copyOrder(o)
	return nil
}

func (r memoryOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.u.tx.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return copyOrder(o), nil
}

func (r memoryOrders) ClaimForPicker(_ context.Context, id kernel.UUID, pickerID kernel.UUID) (bool, error) {
	o, ok := r.u.tx.orders[id]
	if !ok {
		return false, nil
	}
	if o.StartedBy() != nil && !o.StartedBy().IsEqual(pickerID) {
		return false, nil
	}
	return true, nil
}

func (r memoryOrders) LastNumber(_ context.Context, t order.Type) (string, error) {
	last := ""
	for _, o := range r.u.tx.orders {
		if o.Type() == t && o.Number() > last {
			last = o.Number()
		}
	}
	return last, nil
}

type memoryStock struct{ u *memoryUoW }

func (r memoryStock) GetLedger(_ context.Context, sku string) (*inventory.Ledger, error) {
	rows := make([]*inventory.StockRecord, 0)
	for _, row := range r.u.tx.rows {
		if row.SKU() == sku {
			rows = append(rows, copyRow(row))
		}
	}
	return inventory.NewLedger(sku, rows)
}

func (r memoryStock) SaveLedger(_ context.Context, ledger *inventory.Ledger) error {
	for _, row := range ledger.Changed() {
		if row.IsEmpty() {
			delete(r.u.tx.rows, row.ID())
			continue
		}
		r.u.tx.rows[row.ID()] = copyRow(row)
	}
	return nil
}

type memoryPallets struct{ u *memoryUoW }

func (r memoryPallets) Add(_ context.Context, p *inventory.Pallet) error {
	r.u.tx.pallets[p.ID()] = copyPallet(p)
	return nil
}

func (r memoryPallets) Update(_ context.Context, p *inventory.Pallet) error {
	r.u.tx.pallets[p.ID()] = copyPallet(p)
	return nil
}

func (r memoryPallets) Delete(_ context.Context, id string) error {
	delete(r.u.tx.pallets, id)
	return nil
}

func (r memoryPallets) Get(_ context.Context, id string) (*inventory.Pallet, error) {
	p, ok := r.u.tx.pallets[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("pallet", id)
	}
	return copyPallet(p), nil
}

func (r memoryPallets) ListBySKU(_ context.Context, sku string) ([]*inventory.Pallet, error) {
	result := make([]*inventory.Pallet, 0)
	for _, p := range r.u.tx.pallets {
		if p.SKU() == sku && !p.IsEmpty() {
			result = append(result, copyPallet(p))
		}
	}
	slices.SortFunc(result, func(a, b *inventory.Pallet) int { return cmp.Compare(a.ID(), b.ID()) })
	return result, nil
}

type memoryLocations struct{ u *memoryUoW }

func (r memoryLocations) Ensure(_ context.Context, location kernel.Location) error {
	r.u.tx.locations[location.Code()] = location
	return nil
}

func (r memoryLocations) AssignedPickingLocation(_ context.Context, sku string) (*kernel.Location, error) {
	loc, ok := r.u.tx.assigned[sku]
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

func (r memoryLocations) AssignPickingLocation(_ context.Context, sku string, location kernel.Location) error {
	r.u.tx.locations[location.Code()] = location
	r.u.tx.assigned[sku] = location
	return nil
}

func (r memoryLocations) HeldByOtherSKU(_ context.Context, location kernel.Location, sku string) (bool, error) {
	for _, p := range r.u.tx.pallets {
		if p.IsAt(location) && p.BoxCount() > 0 && p.SKU() != sku {
			return true, nil
		}
	}
	for _, row := range r.u.tx.rows {
		if row.Location().Code() == location.Code() && row.SKU() != sku {
			return true, nil
		}
	}
	return false, nil
}

func (r memoryLocations) RowTemperature(_ context.Context, row string) (*kernel.TemperatureRange, error) {
	temperature, ok := r.u.tx.climates[row]
	if !ok {
		return nil, nil
	}
	return &temperature, nil
}

func (r memoryLocations) SetRowTemperature(_ context.Context, row string, temperature kernel.TemperatureRange) error {
	r.u.tx.climates[row] = temperature
	return nil
}

func (r memoryLocations) FindEmptyGroundLocation(_ context.Context) (*kernel.Location, error) {
	codes := slices.Sorted(maps.Keys(r.u.tx.locations))
	for _, code := range codes {
		loc := r.u.tx.locations[code]
		if !loc.IsGroundTier() {
			continue
		}
		occupied := false
		for _, p := range r.u.tx.pallets {
			if p.IsAt(loc) {
				occupied = true
			}
		}
		for _, row := range r.u.tx.rows {
			if row.Location().Code() == code {
				occupied = true
			}
		}
		if !occupied {
			return &loc, nil
		}
	}
	return nil, nil
}

type memoryTransfers struct{ u *memoryUoW }

func (r memoryTransfers) Add(_ context.Context, request *transfer.Request) error {
	r.u.tx.transfers[request.ID()] = copyRequest(request)
	return nil
}

func (r memoryTransfers) Update(_ context.Context, request *transfer.Request) error {
	r.u.tx.transfers[request.ID()] = copyRequest(request)
	return nil
}

func (r memoryTransfers) Get(_ context.Context, id kernel.UUID) (*transfer.Request, error) {
	request, ok := r.u.tx.transfers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("transfer", id.String())
	}
	return copyRequest(request), nil
}

func (r memoryTransfers) ListUnconfirmedBySKU(_ context.Context, sku string) ([]*transfer.Request, error) {
	result := make([]*transfer.Request, 0)
	for _, request := range r.u.tx.transfers {
		if request.SKU() == sku && !request.IsConfirmed() {
			result = append(result, copyRequest(request))
		}
	}
	slices.SortFunc(result, func(a, b *transfer.Request) int { return cmp.Compare(a.PalletID(), b.PalletID()) })
	return result, nil
}

func (r memoryTransfers) AddHistory(_ context.Context, history transfer.History) error {
	r.u.tx.history = append(r.u.tx.history, history)
	return nil
}

type memoryLots struct{ u *memoryUoW }

func (r memoryLots) Add(_ context.Context, l *lot.Lot) error {
	r.u.tx.lots[l.Number()] = copyLot(l)
	return nil
}

func (r memoryLots) Update(_ context.Context, l *lot.Lot) error {
	r.u.tx.lots[l.Number()] = copyLot(l)
	return nil
}

func (r memoryLots) GetByNumber(_ context.Context, number string) (*lot.Lot, error) {
	l, ok := r.u.tx.lots[number]
	if !ok {
		return nil, errs.NewObjectNotFoundError("lot", number)
	}
	return copyLot(l), nil
}

func (r memoryLots) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*lot.Lot, error) {
	result := make([]*lot.Lot, 0)
	for _, l := range r.u.tx.lots {
		if l.OrderID() == orderID {
			result = append(result, copyLot(l))
		}
	}
	slices.SortFunc(result, func(a, b *lot.Lot) int { return cmp.Compare(a.PalletNumber(), b.PalletNumber()) })
	return result, nil
}

type memoryPicks struct{ u *memoryUoW }

func (r memoryPicks) Add(_ context.Context, record *picking.Record) error {
	r.u.tx.picks = append(r.u.tx.picks, record)
	return nil
}

func (r memoryPicks) ListByLot(_ context.Context, lotNumber string) ([]*picking.Record, error) {
	result := make([]*picking.Record, 0)
	for _, record := range r.u.tx.picks {
		if record.LotNumber() == lotNumber {
			result = append(result, record)
		}
	}
	return result, nil
}

func (r memoryPicks) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*picking.Record, error) {
	result := make([]*picking.Record, 0)
	for _, record := range r.u.tx.picks {
		if record.OrderID() == orderID {
			result = append(result, record)
		}
	}
	return result, nil
}

type memoryCatalog struct{ u *memoryUoW }

func (r memoryCatalog) Get(_ context.Context, sku string) (*catalog.Product, error) {
	p, ok := r.u.tx.products[sku]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", sku)
	}
	return p, nil
}

func (r memoryCatalog) GetMany(_ context.Context, skus []string) (map[string]*catalog.Product, error) {
	result := make(map[string]*catalog.Product)
	for _, sku := range skus {
		if p, ok := r.u.tx.products[sku]; ok {
			result[sku] = p
		}
	}
	return result, nil
}

func (r memoryCatalog) Save(_ context.Context, p *catalog.Product) error {
	r.u.tx.products[p.SKU()] = p
	return nil
}

type memoryCustomerStock struct{ u *memoryUoW }

func customerKey(customerID kernel.UUID, sku string) string {
	return customerID.String() + "/" + sku
}

func (r memoryCustomerStock) Get(_ context.Context, customerID kernel.UUID, sku string) (*customerstock.Entry, error) {
	e, ok := r.u.tx.customer[customerKey(customerID, sku)]
	if !ok {
		return nil, errs.NewObjectNotFoundError("customer stock", sku)
	}
	return copyEntry(e), nil
}

func (r memoryCustomerStock) Save(_ context.Context, e *customerstock.Entry) error {
	r.u.tx.customer[customerKey(e.CustomerID(), e.SKU())] = copyEntry(e)
	return nil
}
