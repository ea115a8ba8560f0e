package models

import "time"

// Doctor represents the doctors table
type Doctor struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	FullName          string    `gorm:"not null;size:255" json:"full_name"`
	Specialization    string    `gorm:"not null;size:255" json:"specialization"`
	Email             string    `gorm:"not null;size:255" json:"email"`
	Phone             string    `gorm:"not null;size:30" json:"phone"`
	LicenseNumber     string    `gorm:"not null;size:100" json:"license_number"`
	YearsOfExperience *int      `json:"years_of_experience,omitempty"`
	ConsultationFee   *float64  `json:"consultation_fee,omitempty"`
	Available         bool      `gorm:"default:true" json:"available"`
	CreatedAt         time.Time `json:"created_at"`
}

// TableName specifies the table name for Doctor model
func (Doctor) TableName() string {
	return "doctors"
}
