package models

import "time"

// Grain - traded commodity (Wheat, Chana, Soyabean...)
type Grain struct {
	ID             uint    `gorm:"primaryKey"`
	Name           string  `gorm:"size:100;uniqueIndex;not null"`
	HindiName      string  `gorm:"size:100"`
	StandardBharti float64 `gorm:"default:60"` // kg packed per bag, default for this grain
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
