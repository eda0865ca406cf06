package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response. The shortfall fields are set only when a
// pick needs a transfer first.
type Error struct {
	Code             int    `json:"code"`
	Message          string `json:"message"`
	Available        *int   `json:"available,omitempty"`
	Required         *int   `json:"required,omitempty"`
	TransfersCreated *int   `json:"transfersCreated,omitempty"`
}

type Location struct {
	Row   string `json:"row"   validate:"required"`
	Cell  string `json:"cell"  validate:"required"`
	Level int    `json:"level" validate:"min=1,max=10"`
}

type OrderLine struct {
	SKU         string          `json:"sku"         validate:"required"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"    validate:"min=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type NewOrder struct {
	ID         *uuid.UUID  `json:"id"`
	Type       string      `json:"type"       validate:"required,oneof=supplier customer"`
	CustomerID *uuid.UUID  `json:"customerId"`
	Lines      []OrderLine `json:"lines"      validate:"required,min=1,dive"`
}

type CreatedOrder struct {
	ID     uuid.UUID `json:"id"`
	Number string    `json:"number"`
}

type ProcessedOrder struct {
	OrderNumber      string   `json:"orderNumber"`
	PalletsCount     int      `json:"palletsCount"`
	LotNumbers       []string `json:"lotNumbers"`
	ProcessedItems   int      `json:"processedItems"`
	SkippedSKUs      []string `json:"skippedSkus"`
	RequiresTransfer bool     `json:"requiresTransfer"`
	TransfersCreated int      `json:"transfersCreated"`
	UnplannedSKUs    []string `json:"unplannedSkus"`
}

type Lot struct {
	LotNumber    string     `json:"lotNumber"`
	OrderID      uuid.UUID  `json:"orderId"`
	OrderNumber  string     `json:"orderNumber"`
	OrderType    string     `json:"orderType"`
	PalletNumber int        `json:"palletNumber"`
	Status       string     `json:"status"`
	PickerID     *uuid.UUID `json:"pickerId,omitempty"`
	ItemCount    int        `json:"itemCount"`
	BoxCount     int        `json:"boxCount"`
}

type PickerRequest struct {
	PickerID uuid.UUID `json:"pickerId" validate:"required"`
}

type LotItem struct {
	SKU              string `json:"sku"`
	ProductName      string `json:"productName"`
	Quantity         int    `json:"quantity"`
	Boxes            int    `json:"boxes"`
	ReservedBoxes    int    `json:"reservedBoxes"`
	WeightBased      bool   `json:"weightBased"`
	ReservationState string `json:"reservationState"`
}

type ClaimedLot struct {
	LotNumber    string    `json:"lotNumber"`
	OrderID      uuid.UUID `json:"orderId"`
	OrderNumber  string    `json:"orderNumber"`
	PalletNumber int       `json:"palletNumber"`
	LotStatus    string    `json:"lotStatus"`
	Items        []LotItem `json:"items"`
}

type PickRequest struct {
	OrderID  uuid.UUID `json:"orderId"  validate:"required"`
	SKU      string    `json:"sku"      validate:"required"`
	Boxes    int       `json:"boxes"    validate:"min=1"`
	PickerID uuid.UUID `json:"pickerId" validate:"required"`
}

type PickedPallet struct {
	PalletID string          `json:"palletId"`
	Location string          `json:"location"`
	Boxes    int             `json:"boxes"`
	Weight   decimal.Decimal `json:"weight"`
}

type PickResult struct {
	SKU            string          `json:"sku"`
	RequestedBoxes int             `json:"requestedBoxes"`
	PickedBoxes    int             `json:"pickedBoxes"`
	Weight         decimal.Decimal `json:"weight"`
	Pallets        []PickedPallet  `json:"pallets"`
	Underpicked    bool            `json:"underpicked"`
	LotPacked      bool            `json:"lotPacked"`
	OrderPacked    bool            `json:"orderPacked"`
	AlreadyPacked  bool            `json:"alreadyPacked"`
}

type CompletedLot struct {
	LotNumber     string          `json:"lotNumber"`
	BoxCount      int             `json:"boxCount"`
	TotalWeight   decimal.Decimal `json:"totalWeight"`
	OrderPacked   bool            `json:"orderPacked"`
	AlreadyPacked bool            `json:"alreadyPacked"`
}

type Transfer struct {
	ID        uuid.UUID `json:"id"`
	SKU       string    `json:"sku"`
	PalletID  string    `json:"palletId"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	BoxCount  int       `json:"boxCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type TransferFailure struct {
	TransferID uuid.UUID `json:"transferId"`
	Error      string    `json:"error"`
}

type ConfirmAllResult struct {
	Confirmed []uuid.UUID       `json:"confirmed"`
	Failed    []TransferFailure `json:"failed"`
}

type Availability struct {
	SKU              string `json:"sku"`
	RequiredBoxes    int    `json:"requiredBoxes"`
	AvailableBoxes   int    `json:"availableBoxes"`
	Available        bool   `json:"available"`
	TransferPending  bool   `json:"transferPending"`
	TransfersCreated int    `json:"transfersCreated"`
	PlannedBoxes     int    `json:"plannedBoxes"`
	Shortfall        int    `json:"shortfall"`
}

type NewPallet struct {
	ID            string          `json:"id"            validate:"required"`
	SKU           string          `json:"sku"           validate:"required"`
	ProductName   string          `json:"productName"`
	Location      Location        `json:"location"`
	BoxCount      int             `json:"boxCount"      validate:"min=0"`
	NetWeight     decimal.Decimal `json:"netWeight"`
	ExpiryDate    *time.Time      `json:"expiryDate"`
	InvoiceNumber string          `json:"invoiceNumber"`
}

type PalletAdjustment struct {
	Location  Location        `json:"location"`
	BoxCount  int             `json:"boxCount"  validate:"min=0"`
	NetWeight decimal.Decimal `json:"netWeight"`
}

type CustomerStock struct {
	SKU         string          `json:"sku"`
	ProductName string          `json:"productName"`
	Kind        string          `json:"kind"`
	Units       int             `json:"units"`
	Kilograms   decimal.Decimal `json:"kilograms"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type Product struct {
	Name          string  `json:"name"          validate:"required"`
	Kind          string  `json:"kind"          validate:"required,oneof=piece weight"`
	Multiplicity  int     `json:"multiplicity"  validate:"min=0"`
	Length        float64 `json:"length"        validate:"min=0"`
	Width         float64 `json:"width"         validate:"min=0"`
	Height        float64 `json:"height"        validate:"min=0"`
	Temperature   *int    `json:"temperature"`
	ShelfLifeDays *int    `json:"shelfLifeDays"`
}

type WarehouseStock struct {
	SKU           string                   `json:"sku"`
	ProductName   string                   `json:"productName"`
	PalletCount   int                      `json:"palletCount"`
	TotalBoxes    int                      `json:"totalBoxes"`
	TotalWeight   decimal.Decimal          `json:"totalWeight"`
	ReservedBoxes int                      `json:"reservedBoxes"`
	Locations     []WarehouseStockLocation `json:"locations"`
}

type WarehouseStockLocation struct {
	Location string `json:"location"`
	Boxes    int    `json:"boxes"`
	Reserved int    `json:"reserved"`
}

// RowTemperature is the climate of a rack row in °C.
type RowTemperature struct {
	Min *float64 `json:"min" validate:"required"`
	Max *float64 `json:"max" validate:"required"`
}

// GetWarehouseStockParams are the query parameters of GET /api/v1/stock.
type GetWarehouseStockParams struct {
	SKU *string
}

// GetPendingTransfersParams are the query parameters of GET /api/v1/transfers.
type GetPendingTransfersParams struct {
	SKU *string
}

// CheckPickingAvailabilityParams are the query parameters of GET /api/v1/availability/{sku}.
type CheckPickingAvailabilityParams struct {
	Quantity int
}
