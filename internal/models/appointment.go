package models

import "time"

// Appointment status values. Pending, approved and completed rows count
// toward slot exclusivity; cancelled rows never block a slot.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ActiveStatuses are the statuses that occupy a booking slot.
var ActiveStatuses = []string{StatusPending, StatusApproved, StatusCompleted}

// Appointment represents the appointments table.
// AppointmentDate is a calendar date in "2006-01-02" form and
// AppointmentTime is one of the fixed hourly slot labels ("08:00".."16:00").
type Appointment struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	PatientID          uint       `gorm:"not null;index" json:"patient_id"`
	DoctorID           uint       `gorm:"not null;index:idx_slot" json:"doctor_id"`
	AppointmentDate    string     `gorm:"not null;size:10;index:idx_slot" json:"appointment_date"`
	AppointmentTime    string     `gorm:"not null;size:5;index:idx_slot" json:"appointment_time"`
	AppointmentType    string     `gorm:"type:enum('consultation','follow_up','emergency','routine_checkup');default:'consultation'" json:"appointment_type"`
	Reason             string     `gorm:"not null;type:text" json:"reason"`
	Status             string     `gorm:"type:enum('pending','approved','completed','cancelled');default:'pending';index" json:"status"`
	Notes              *string    `gorm:"type:text" json:"notes,omitempty"`
	ApprovedBy         *uint      `json:"approved_by,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	DocumentURL        *string    `gorm:"size:500" json:"document_url,omitempty"`
	DocumentFileName   *string    `gorm:"size:255" json:"document_file_name,omitempty"`
	DocumentUploadedAt *time.Time `json:"document_uploaded_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`

	// Relationships
	Patient *Profile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}
