// Package order contains the Order aggregate of the fulfillment domain and its line items.
//
// An order is created by order entry in the Created status and is then driven through
//
//	Created → Processing → Assembling → Packed → Completed
//
// with Cancelled reachable from every non-terminal status. Processing splits the line items
// into one item per (SKU, pallet), reserves stock for them and stamps lot numbers on them.
// The first picker that opens a lot claims the whole order (started_by) and moves it to
// Assembling. The order becomes Packed when its last lot is packed.
//
// Items keep the originally requested quantity next to the working quantity so clamping to
// availability or converting kilograms to boxes never loses the customer's ask.
package order
