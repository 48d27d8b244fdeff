package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleWorker UserRole = "worker"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Username     string   `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	Permissions  string   `gorm:"type:text;default:'[]'"` // JSON list of allowed modules
	TokenVersion int      `gorm:"default:1"`               // bumped on password reset to invalidate tokens
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
