// Package kernel holds the value objects shared by every aggregate of the
// fulfillment domain.
//
// The package includes:
//   - UUID: identifier of orders, items, lots, ledger rows and transfer requests
//   - Location: a warehouse storage position (row, cell, level) and its tier
//
// Values are immutable and validated on construction. The zero value of each type is
// invalid and is rejected by Validate.
package kernel
