package models

import "time"

// MedicalRecord represents the medical_records table
type MedicalRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PatientID    uint      `gorm:"not null;index" json:"patient_id"`
	DoctorID     uint      `gorm:"not null;index" json:"doctor_id"`
	VisitDate    string    `gorm:"not null;size:10" json:"visit_date"`
	Diagnosis    string    `gorm:"not null;type:text" json:"diagnosis"`
	Prescription *string   `gorm:"type:text" json:"prescription,omitempty"`
	LabResults   *string   `gorm:"type:text" json:"lab_results,omitempty"`
	Notes        *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// Relationships
	Patient *Profile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TableName specifies the table name for MedicalRecord model
func (MedicalRecord) TableName() string {
	return "medical_records"
}
