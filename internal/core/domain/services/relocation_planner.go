package services

import (
	"cmp"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/transfer"
)

// RelocationPlan lists the transfers needed to bring a SKU down to the picking tier.
type RelocationPlan struct {
	Requests     []*transfer.Request
	PlannedBoxes int
	// Shortfall is what upper tiers could not cover.
	Shortfall int
}

// RelocationPlanner chooses upper-tier pallets to move to a picking position.
//
// Pallets are taken lowest level first, then earliest expiry. Pallets that already have an
// unconfirmed request are skipped. Whole pallets are always moved, so the plan may bring
// down more boxes than required.
type RelocationPlanner struct{}

func NewRelocationPlanner() RelocationPlanner {
	return RelocationPlanner{}
}

func (RelocationPlanner) Plan(
	sku string,
	requiredBoxes int,
	candidates []*inventory.Pallet,
	pending []*transfer.Request,
	destination kernel.Location,
	now time.Time,
) (RelocationPlan, error) {
	plan := RelocationPlan{Requests: make([]*transfer.Request, 0)}
	if requiredBoxes <= 0 {
		return plan, nil
	}

	pallets := make([]*inventory.Pallet, 0, len(candidates))
	for _, p := range candidates {
		if p.SKU() != sku || p.IsEmpty() || p.Location().IsGroundTier() || hasPendingRequest(pending, p.ID()) {
			continue
		}
		pallets = append(pallets, p)
	}
	slices.SortStableFunc(pallets, func(a, b *inventory.Pallet) int {
		if c := cmp.Compare(a.Location().Level(), b.Location().Level()); c != 0 {
			return c
		}
		switch {
		case a.ExpiresBefore(b):
			return -1
		case b.ExpiresBefore(a):
			return 1
		}
		return 0
	})

	for _, p := range pallets {
		if plan.PlannedBoxes >= requiredBoxes {
			break
		}
		request, err := transfer.NewRequest(kernel.NewUUID(), sku, p.ID(), p.Location(), destination, p.BoxCount(), now)
		if err != nil {
			return RelocationPlan{}, err
		}
		plan.Requests = append(plan.Requests, request)
		plan.PlannedBoxes += p.BoxCount()
	}
	plan.Shortfall = max(requiredBoxes-plan.PlannedBoxes, 0)

	return plan, nil
}

func hasPendingRequest(pending []*transfer.Request, palletID string) bool {
	return slices.ContainsFunc(pending, func(r *transfer.Request) bool {
		return !r.IsConfirmed() && r.PalletID() == palletID
	})
}
