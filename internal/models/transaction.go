package models

import "time"

type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeSale     TransactionType = "sale"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPending PaymentStatus = "pending"
)

// Transaction - one purchase or sale event. Quantities are in quintals
// (1 quintal = 100 kg). TotalAmount is the gross invoice amount: for a
// sale it is quantity*rate; for a purchase the labour deduction
// (bags * labour_cost_per_bag) is already subtracted at creation time.
// Internal expenses (labour/transport/mandi) never reduce a sale's
// party-facing total, only the computed profit.
type Transaction struct {
	ID            uint            `gorm:"primaryKey"`
	Date          time.Time       `gorm:"index;not null"`
	Type          TransactionType `gorm:"size:20;not null;index"`
	InvoiceNumber int             `gorm:"index"`

	GrainID     uint `gorm:"index;not null"`
	Grain       Grain
	ContactID   uint `gorm:"index;not null"`
	Contact     Contact
	WarehouseID uint `gorm:"index;not null"`
	Warehouse   Warehouse

	QuantityQuintal    float64 `gorm:"not null"`
	NumberOfBags       int     `gorm:"default:0"`
	RatePerQuintal     float64 `gorm:"not null"`
	TotalAmount        float64 `gorm:"not null"`
	ExtraLooseQuantity float64 `gorm:"default:0"` // loose kg not packed in bags

	TaxPercentage       float64       `gorm:"default:0"`
	CostPricePerQuintal float64       `gorm:"default:0"` // acquisition cost, internal only
	AmountPaid          float64       `gorm:"default:0"` // cumulative
	PaymentStatus       PaymentStatus `gorm:"size:20;default:pending"`
	Notes               string        `gorm:"size:500"`

	// Sale dispatch metadata
	TransporterName string `gorm:"size:100"`
	Destination     string `gorm:"size:100"`
	DriverName      string `gorm:"size:100"`
	VehicleNumber   string `gorm:"size:30"`
	SaleGroupID     string `gorm:"size:40;index"` // links warehouse-allocation rows of one bulk sale

	// Settlement / deductions (sale only)
	ShortageQuantity float64 `gorm:"default:0"` // quintals lost or disputed
	DeductionAmount  float64 `gorm:"default:0"` // flat monetary deduction (quality claim etc)
	DeductionNote    string  `gorm:"size:255"`

	// Cost fields (reduce profit, not the invoice)
	LabourCostPerBag    float64 `gorm:"default:3"`
	TransportCostPerQtl float64 `gorm:"default:0"`
	MandiCost           float64 `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
