package order

// ReservationStatus tells how much of an item's box requirement is reserved at the picking tier.
type ReservationStatus string

const (
	Unreserved ReservationStatus = "unreserved"
	Partial    ReservationStatus = "partial"
	Full       ReservationStatus = "full"
)
