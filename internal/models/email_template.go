package models

import "time"

// EmailTemplate represents the email_templates table.
// Subject and Body may contain {{variable}} placeholders.
type EmailTemplate struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TemplateName string    `gorm:"uniqueIndex;not null;size:100" json:"template_name"`
	Subject      string    `gorm:"not null;size:255" json:"subject"`
	Body         string    `gorm:"not null;type:text" json:"body"`
	SenderName   string    `gorm:"not null;size:255" json:"sender_name"`
	SenderEmail  string    `gorm:"not null;size:255" json:"sender_email"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for EmailTemplate model
func (EmailTemplate) TableName() string {
	return "email_templates"
}
