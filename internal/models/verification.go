package models

import "time"

// EmailVerificationCode represents the email_verification_codes table.
// A transient single-use credential issued before account creation.
type EmailVerificationCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"not null;size:255;index" json:"email"`
	Code      string    `gorm:"not null;size:6" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for EmailVerificationCode model
func (EmailVerificationCode) TableName() string {
	return "email_verification_codes"
}
