package service

import (
	"context"
	"log"
	"strings"

	"clinic-appointment-backend/internal/models"
)

// Mailer delivers a rendered message to a recipient
type Mailer interface {
	Send(fromName, from, to, subject, body string) error
}

// TemplateStore loads email templates by name
type TemplateStore interface {
	FindByName(name string) (*models.EmailTemplate, error)
}

// Notifier enqueues a templated notification for best-effort delivery.
// Failures are logged and never reach the caller.
type Notifier interface {
	Enqueue(templateName, recipient string, variables map[string]string)
}

type emailJob struct {
	templateName string
	recipient    string
	variables    map[string]string
}

// NotificationService renders email templates and dispatches them
// asynchronously. Delivery is at-most-once: a full queue or a failed send
// drops the message with a log line, it never blocks or fails the caller.
type NotificationService struct {
	templates TemplateStore
	mailer    Mailer
	queue     chan emailJob
}

func NewNotificationService(templates TemplateStore, mailer Mailer) *NotificationService {
	return &NotificationService{
		templates: templates,
		mailer:    mailer,
		queue:     make(chan emailJob, 64),
	}
}

// Enqueue queues a notification for delivery without blocking the caller
func (s *NotificationService) Enqueue(templateName, recipient string, variables map[string]string) {
	job := emailJob{
		templateName: templateName,
		recipient:    recipient,
		variables:    variables,
	}

	select {
	case s.queue <- job:
	default:
		log.Printf("Notification queue full, dropping %s email to %s", templateName, recipient)
	}
}

// Start runs the delivery worker until the context is cancelled
func (s *NotificationService) Start(ctx context.Context) {
	log.Println("Notification worker started")

	for {
		select {
		case <-ctx.Done():
			log.Println("Notification worker stopped")
			return
		case job := <-s.queue:
			s.deliver(job)
		}
	}
}

func (s *NotificationService) deliver(job emailJob) {
	template, err := s.templates.FindByName(job.templateName)
	if err != nil {
		log.Printf("Error loading email template %s: %v", job.templateName, err)
		return
	}

	subject := RenderTemplate(template.Subject, job.variables)
	body := RenderTemplate(template.Body, job.variables)

	if err := s.mailer.Send(template.SenderName, template.SenderEmail, job.recipient, subject, body); err != nil {
		log.Printf("Error sending %s email to %s: %v", job.templateName, job.recipient, err)
	}
}

// RenderTemplate substitutes {{key}} placeholders with the given variables
func RenderTemplate(text string, variables map[string]string) string {
	for key, value := range variables {
		text = strings.ReplaceAll(text, "{{"+key+"}}", value)
	}
	return text
}
