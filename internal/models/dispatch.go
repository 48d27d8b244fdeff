package models

import "time"

type DispatchStatus string

const (
	DispatchStatusPaid    DispatchStatus = "paid"
	DispatchStatusPending DispatchStatus = "pending"
)

// DispatchRecord - freight ledger for one bulk sale, keyed by the sale
// group. GrossFreight is derived once from TotalWeight*Rate at creation
// and treated as fixed; later edits touch only the four payment and
// deduction fields, and their sum may never exceed GrossFreight.
type DispatchRecord struct {
	ID          uint   `gorm:"primaryKey"`
	SaleGroupID string `gorm:"size:40;uniqueIndex;not null"`

	TransporterName string `gorm:"size:100"`
	VehicleNumber   string `gorm:"size:30"`
	DriverName      string `gorm:"size:100"`

	TotalWeight  float64 `gorm:"default:0"` // quintals
	Rate         float64 `gorm:"default:0"` // currency per quintal
	GrossFreight float64 `gorm:"default:0"`

	AdvancePaid       float64 `gorm:"default:0"`
	DeliveryPaid      float64 `gorm:"default:0"`
	ShortageDeduction float64 `gorm:"default:0"`
	OtherDeduction    float64 `gorm:"default:0"`
	DeductionNote     string  `gorm:"size:255"`

	Status    DispatchStatus `gorm:"size:20;default:pending"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
