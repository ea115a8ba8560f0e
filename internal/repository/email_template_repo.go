package repository

import (
	"errors"

	"clinic-appointment-backend/internal/models"

	"gorm.io/gorm"
)

type EmailTemplateRepository struct {
	db *gorm.DB
}

func NewEmailTemplateRepo(db *gorm.DB) *EmailTemplateRepository {
	return &EmailTemplateRepository{db: db}
}

// FindByName finds an email template by its unique name
func (r *EmailTemplateRepository) FindByName(name string) (*models.EmailTemplate, error) {
	var template models.EmailTemplate
	err := r.db.Where("template_name = ?", name).First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("email template not found")
		}
		return nil, err
	}
	return &template, nil
}

// SeedDefaults inserts the built-in templates when they do not exist yet
func (r *EmailTemplateRepository) SeedDefaults(senderName, senderEmail string) error {
	defaults := []models.EmailTemplate{
		{
			TemplateName: "verification_code",
			Subject:      "Your verification code",
			Body:         "Hello,\n\nYour verification code is {{code}}. It expires in 10 minutes.\n\nIf you did not request this code, please ignore this email.",
		},
		{
			TemplateName: "password_reset",
			Subject:      "Reset your password",
			Body:         "Hello,\n\nYour password reset code is {{code}}. It expires in 10 minutes.\n\nIf you did not request a password reset, please ignore this email.",
		},
		{
			TemplateName: "appointment_pending",
			Subject:      "Appointment request received",
			Body:         "Dear {{full_name}},\n\nYour appointment request with Dr. {{doctor_name}} ({{specialization}}) on {{appointment_date}} at {{appointment_time}} has been received and is awaiting approval.\n\nReason: {{appointment_reason}}",
		},
		{
			TemplateName: "appointment_approved",
			Subject:      "Your appointment has been approved",
			Body:         "Dear {{full_name}},\n\nYour appointment with Dr. {{doctor_name}} ({{specialization}}) on {{appointment_date}} at {{appointment_time}} has been approved.\n\nReason: {{appointment_reason}}\n\nPlease arrive 10 minutes early.",
		},
		{
			TemplateName: "appointment_cancelled",
			Subject:      "Your appointment has been cancelled",
			Body:         "Dear {{full_name}},\n\nYour appointment with Dr. {{doctor_name}} ({{specialization}}) on {{appointment_date}} at {{appointment_time}} has been cancelled.\n\nReason: {{appointment_reason}}\n\nYou can book a new appointment at any time.",
		},
	}

	for i := range defaults {
		defaults[i].SenderName = senderName
		defaults[i].SenderEmail = senderEmail

		err := r.db.Where("template_name = ?", defaults[i].TemplateName).
			FirstOrCreate(&defaults[i]).Error
		if err != nil {
			return err
		}
	}

	return nil
}
