// Package services provides domain services for the fulfillment flow that span several
// aggregates: packing order lines onto pallets, adapting weight goods to boxes, building
// lots, planning pallet relocation and allocating picks.
//
// The package includes:
//   - PalletPacker: greedy first-fit packing of order lines by volume
//   - WeightAdapter: kilogram asks to estimated box counts
//   - LotBuilder: one lot per packed pallet
//   - RelocationPlanner: upper-tier pallets to move to a picking position
//   - PickAllocator: FEFO picks, lot completion and pick summaries
//
// Services are stateless and never touch storage; command handlers load the aggregates
// and persist the results.
package services
