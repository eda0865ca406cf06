package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/lot"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/domain/model/transfer"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ledgerSet caches the ledgers loaded inside one unit of work so that several items of
// a SKU see each other's reservations.
type ledgerSet struct {
	repo  ports.StockRepository
	bySKU map[string]*inventory.Ledger
}

func newLedgerSet(repo ports.StockRepository) *ledgerSet {
	return &ledgerSet{repo: repo, bySKU: make(map[string]*inventory.Ledger)}
}

func (s *ledgerSet) get(ctx context.Context, sku string) (*inventory.Ledger, error) {
	if l, ok := s.bySKU[sku]; ok {
		return l, nil
	}
	l, err := s.repo.GetLedger(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("load ledger of %s: %w", sku, err)
	}
	s.bySKU[sku] = l
	return l, nil
}

// lock loads the ledgers of skus in sorted order, so that handlers touching several SKUs
// always take their locks in the same sequence.
func (s *ledgerSet) lock(ctx context.Context, skus []string) error {
	sorted := slices.Clone(skus)
	slices.Sort(sorted)
	for _, sku := range sorted {
		if _, err := s.get(ctx, sku); err != nil {
			return err
		}
	}
	return nil
}

func (s *ledgerSet) save(ctx context.Context) error {
	skus := make([]string, 0, len(s.bySKU))
	for sku := range s.bySKU {
		skus = append(skus, sku)
	}
	slices.Sort(skus)

	for _, sku := range skus {
		if err := s.repo.SaveLedger(ctx, s.bySKU[sku]); err != nil {
			return fmt.Errorf("save ledger of %s: %w", sku, err)
		}
	}
	return nil
}

// lockPallet loads a pallet under its SKU's ledger lock. The first read only resolves the
// SKU; the pallet is read again once the lock is held.
func lockPallet(
	ctx context.Context,
	pallets ports.PalletRepository,
	ledgers *ledgerSet,
	id string,
) (*inventory.Pallet, *inventory.Ledger, error) {
	pallet, err := pallets.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	ledger, err := ledgers.get(ctx, pallet.SKU())
	if err != nil {
		return nil, nil, err
	}
	if pallet, err = pallets.Get(ctx, id); err != nil {
		return nil, nil, err
	}
	return pallet, ledger, nil
}

// PickingAvailability is the outcome of checking whether the picking tier covers a request.
type PickingAvailability struct {
	SKU              string
	RequiredBoxes    int
	AvailableBoxes   int
	Available        bool
	TransferPending  bool
	TransfersCreated int
	PlannedBoxes     int
	Shortfall        int
}

// resolveDestination picks the SKU's assigned picking position unless another SKU holds it,
// falling back to any empty ground-tier position.
func resolveDestination(ctx context.Context, repos stockRepos, sku string) (kernel.Location, error) {
	locations := repos.LocationRepository()

	assigned, err := locations.AssignedPickingLocation(ctx, sku)
	if err != nil {
		return kernel.Location{}, err
	}
	if assigned != nil {
		held, err := locations.HeldByOtherSKU(ctx, *assigned, sku)
		if err != nil {
			return kernel.Location{}, err
		}
		if !held {
			return *assigned, nil
		}
	}

	empty, err := locations.FindEmptyGroundLocation(ctx)
	if err != nil {
		return kernel.Location{}, err
	}
	if empty == nil {
		return kernel.Location{}, fmt.Errorf("%w: %s", transfer.ErrNoPickingLocation, sku)
	}
	return *empty, nil
}

// createPendingTransfer queues whole-pallet moves from upper tiers until requiredBoxes are
// covered or no candidate pallet is left.
func createPendingTransfer(
	ctx context.Context,
	repos stockRepos,
	sku string,
	requiredBoxes int,
	now time.Time,
) (services.RelocationPlan, error) {
	if requiredBoxes <= 0 {
		return services.RelocationPlan{}, nil
	}

	destination, err := resolveDestination(ctx, repos, sku)
	if err != nil {
		return services.RelocationPlan{}, err
	}

	pallets, err := repos.PalletRepository().ListBySKU(ctx, sku)
	if err != nil {
		return services.RelocationPlan{}, err
	}
	pending, err := repos.TransferRepository().ListUnconfirmedBySKU(ctx, sku)
	if err != nil {
		return services.RelocationPlan{}, err
	}

	plan, err := services.NewRelocationPlanner().Plan(sku, requiredBoxes, pallets, pending, destination, now)
	if err != nil {
		return services.RelocationPlan{}, err
	}
	for _, request := range plan.Requests {
		if err := repos.TransferRepository().Add(ctx, request); err != nil {
			return services.RelocationPlan{}, err
		}
	}
	return plan, nil
}

// checkPickingAvailability compares the unreserved picking-tier stock with requiredBoxes and
// queues transfers for the deficit. A shortfall is reported in the result, not as an error.
func checkPickingAvailability(
	ctx context.Context,
	repos stockRepos,
	ledgers *ledgerSet,
	sku string,
	requiredBoxes int,
	now time.Time,
) (PickingAvailability, error) {
	result := PickingAvailability{SKU: sku, RequiredBoxes: requiredBoxes}

	pending, err := repos.TransferRepository().ListUnconfirmedBySKU(ctx, sku)
	if err != nil {
		return PickingAvailability{}, err
	}

	ledger, err := ledgers.get(ctx, sku)
	if err != nil {
		return PickingAvailability{}, err
	}
	result.AvailableBoxes = ledger.TotalAvailable()

	if len(pending) > 0 {
		result.TransferPending = true
		return result, nil
	}
	if result.AvailableBoxes >= requiredBoxes {
		result.Available = true
		return result, nil
	}

	plan, err := createPendingTransfer(ctx, repos, sku, requiredBoxes-result.AvailableBoxes, now)
	if err != nil {
		return PickingAvailability{}, err
	}
	result.TransfersCreated = len(plan.Requests)
	result.PlannedBoxes = plan.PlannedBoxes
	result.Shortfall = plan.Shortfall
	return result, nil
}

// ReservationReport summarizes reserveInventory.
type ReservationReport struct {
	Processed        int
	Skipped          []string
	TransfersCreated int
	// Unplanned lists SKUs short at the picking tier for which no transfer could be planned.
	Unplanned []string
}

// reserveInventory reserves picking-tier stock for every packed item of the order. Items
// short at the picking tier are reserved partially and the shortfall is queued as transfers.
func reserveInventory(
	ctx context.Context,
	repos stockRepos,
	ledgers *ledgerSet,
	o *order.Order,
	now time.Time,
) (ReservationReport, error) {
	report := ReservationReport{}

	for _, item := range o.Items() {
		ledger, err := ledgers.get(ctx, item.SKU())
		if err != nil {
			return ReservationReport{}, err
		}

		if ledger.TotalAvailableAllLevels() <= 0 {
			report.Skipped = append(report.Skipped, item.SKU())
			continue
		}
		item.ClampToBoxes(ledger.TotalAvailableAllLevels())

		needed := item.BoxCount()
		reservable := min(ledger.TotalAvailable(), needed)
		allocation, err := ledger.Reserve(reservable)
		if err != nil {
			return ReservationReport{}, err
		}
		if err := item.Reserve(allocation); err != nil {
			return ReservationReport{}, err
		}
		report.Processed++

		if reservable == needed {
			continue
		}

		o.MarkRequiresTransfer()
		plan, err := createPendingTransfer(ctx, repos, item.SKU(), needed-reservable, now)
		if errors.Is(err, transfer.ErrNoPickingLocation) {
			report.Unplanned = append(report.Unplanned, item.SKU())
			continue
		}
		if err != nil {
			return ReservationReport{}, err
		}
		report.TransfersCreated += len(plan.Requests)
		if plan.Shortfall > 0 {
			report.Unplanned = append(report.Unplanned, item.SKU())
		}
	}
	return report, nil
}

// unreserveInventory hands every outstanding item reservation back to the ledger.
func unreserveInventory(ctx context.Context, ledgers *ledgerSet, o *order.Order) error {
	if err := ledgers.lock(ctx, distinctSKUs(o.Items())); err != nil {
		return err
	}
	for _, item := range o.Items() {
		released := item.ReleaseReservation()
		if released.Total() == 0 {
			continue
		}
		ledger, err := ledgers.get(ctx, item.SKU())
		if err != nil {
			return err
		}
		if err := releaseAllocation(ledger, released); err != nil {
			return err
		}
	}
	return nil
}

// releaseAllocation hands an item's reservation back to the rows it was taken from. Boxes
// the ledger no longer holds reserved, because withdrawals clamped them away, are dropped.
func releaseAllocation(ledger *inventory.Ledger, allocation inventory.Allocation) error {
	if excess := allocation.Total() - ledger.TotalReserved(); excess > 0 {
		allocation.Take(excess)
	}
	return ledger.ReleaseAllocation(allocation)
}

// closeLot packs the lot from its pick records and packs the order once every lot is packed.
func closeLot(
	ctx context.Context,
	lots ports.LotRepository,
	o *order.Order,
	l *lot.Lot,
	records []*picking.Record,
	pickerID kernel.UUID,
	now time.Time,
) error {
	summaries := services.NewPickAllocator().Summarize(records)
	if err := l.Close(pickerID, now, summaries); err != nil {
		return err
	}
	if err := lots.Update(ctx, l); err != nil {
		return err
	}

	orderLots, err := lots.ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	for _, other := range orderLots {
		if other.Number() != l.Number() && !other.IsPacked() {
			return nil
		}
	}
	return o.Pack()
}
