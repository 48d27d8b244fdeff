package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID          uint        `gorm:"primaryKey"`
	UserID      uint        `gorm:"index"`
	Username    string      `gorm:"size:50"`
	EntityType  string      `gorm:"size:50;index;not null"` // transaction, payment, dispatch, ...
	EntityID    uint        `gorm:"index"`
	Action      AuditAction `gorm:"size:20;not null"`
	Description string      `gorm:"size:500"`
	BeforeData  string      `gorm:"type:jsonb"`
	AfterData   string      `gorm:"type:jsonb"`
	CreatedAt   time.Time
}
