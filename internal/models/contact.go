package models

import "time"

type ContactType string

const (
	ContactTypeSupplier ContactType = "supplier"
	ContactTypeBuyer    ContactType = "buyer"
)

// Contact - supplier or buyer party. The first two characters of GSTNumber
// encode the party's GST state code.
type Contact struct {
	ID        uint        `gorm:"primaryKey"`
	Name      string      `gorm:"size:100;not null;index"`
	Type      ContactType `gorm:"size:20;not null;index"`
	Phone     string      `gorm:"size:20"`
	GSTNumber string      `gorm:"size:20"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
