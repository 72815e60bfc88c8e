package models

import "time"

type AuditAction string

const (
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionConvert AuditAction = "convert"
)

// AuditLog records every mutation with before/after snapshots as JSON.
type AuditLog struct {
	ID          uint  `gorm:"primaryKey"`
	CompanyID   *uint `gorm:"index"`
	UserID      uint  `gorm:"index;not null"`
	UserName    string `gorm:"size:100;not null"`
	EntityType  string `gorm:"size:50;index;not null"`
	EntityID    uint   `gorm:"index;not null"`
	Action      AuditAction `gorm:"size:20;not null"`
	Description string      `gorm:"size:255"`
	BeforeData  string      `gorm:"type:jsonb"`
	AfterData   string      `gorm:"type:jsonb"`
	CreatedAt   time.Time
}
