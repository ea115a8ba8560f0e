package models

import "time"

// AuditLog represents the audit_logs table
// Used for security tracking and admin action logging
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProfileID *uint     `gorm:"index" json:"profile_id"`
	Action    string    `gorm:"size:100;not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Profile   *Profile  `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
}

// TableName specifies the table name for AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
