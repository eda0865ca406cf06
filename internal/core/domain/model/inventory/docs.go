// Package inventory models stock on hand: per-location ledger rows (StockRecord), the per-SKU
// Ledger that reserves and releases against them, and received Pallets.
//
// All counters are boxes. A ledger row mirrors the boxes of one SKU at one storage location;
// the receiving workflow and picking keep it in step with the pallets stored there.
package inventory
