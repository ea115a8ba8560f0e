package models

import "time"

// Role values stored on a profile.
const (
	RoleAdmin   = "admin"
	RolePatient = "patient"
)

// Profile represents the profiles table
type Profile struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Email           string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash    string    `gorm:"not null;size:255" json:"-"`
	FullName        string    `gorm:"not null;size:255" json:"full_name"`
	Role            string    `gorm:"type:enum('admin','patient');default:'patient'" json:"role"`
	Phone           *string   `gorm:"size:30" json:"phone,omitempty"`
	DateOfBirth     *string   `gorm:"size:10" json:"date_of_birth,omitempty"`
	Address         *string   `gorm:"size:500" json:"address,omitempty"`
	ProfilePhotoURL *string   `gorm:"size:500" json:"profile_photo_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName specifies the table name for Profile model
func (Profile) TableName() string {
	return "profiles"
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProfileID uint      `gorm:"not null;index" json:"profile_id"`
	TokenHash string    `gorm:"not null;size:255;index" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	Profile   Profile   `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
}

// TableName specifies the table name for RefreshToken model
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
