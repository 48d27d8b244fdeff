package models

import "time"

// PaymentRecord - one payment against a transaction. Immutable once
// created; the transaction's AmountPaid is the running sum over these.
type PaymentRecord struct {
	ID            uint `gorm:"primaryKey"`
	TransactionID uint `gorm:"index;not null"`
	Transaction   Transaction
	Amount        float64   `gorm:"not null"`
	Date          time.Time `gorm:"index;not null"`
	Notes         string    `gorm:"size:255"`
	CreatedAt     time.Time
}
