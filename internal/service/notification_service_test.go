package service

import (
	"errors"
	"testing"

	"clinic-appointment-backend/internal/models"
)

type fakeTemplateStore struct {
	templates map[string]*models.EmailTemplate
}

func (f *fakeTemplateStore) FindByName(name string) (*models.EmailTemplate, error) {
	template, ok := f.templates[name]
	if !ok {
		return nil, errors.New("email template not found")
	}
	return template, nil
}

type sentMail struct {
	fromName string
	from     string
	to       string
	subject  string
	body     string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(fromName, from, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{fromName, from, to, subject, body})
	return nil
}

func TestRenderTemplate(t *testing.T) {
	cases := []struct {
		text     string
		vars     map[string]string
		expected string
	}{
		{
			text:     "Hello {{name}}",
			vars:     map[string]string{"name": "Pat"},
			expected: "Hello Pat",
		},
		{
			text:     "{{a}} and {{b}}",
			vars:     map[string]string{"a": "x", "b": "y"},
			expected: "x and y",
		},
		{
			text:     "{{a}} twice {{a}}",
			vars:     map[string]string{"a": "x"},
			expected: "x twice x",
		},
		{
			text:     "no placeholders",
			vars:     map[string]string{"a": "x"},
			expected: "no placeholders",
		},
		{
			text:     "unknown {{missing}} stays",
			vars:     map[string]string{},
			expected: "unknown {{missing}} stays",
		},
	}

	for _, c := range cases {
		if got := RenderTemplate(c.text, c.vars); got != c.expected {
			t.Fatalf("RenderTemplate(%q) = %q, expected %q", c.text, got, c.expected)
		}
	}
}

func TestDeliverRendersAndSends(t *testing.T) {
	templates := &fakeTemplateStore{templates: map[string]*models.EmailTemplate{
		"appointment_approved": {
			TemplateName: "appointment_approved",
			Subject:      "Approved: {{appointment_date}}",
			Body:         "Dear {{full_name}}, see you at {{appointment_time}}.",
			SenderName:   "Clinic",
			SenderEmail:  "noreply@clinic.local",
		},
	}}
	mailer := &fakeMailer{}
	svc := NewNotificationService(templates, mailer)

	svc.deliver(emailJob{
		templateName: "appointment_approved",
		recipient:    "pat@example.com",
		variables: map[string]string{
			"full_name":        "Pat Doe",
			"appointment_date": "Sunday, June 1, 2025",
			"appointment_time": "10:00",
		},
	})

	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mailer.sent))
	}
	mail := mailer.sent[0]
	if mail.to != "pat@example.com" {
		t.Fatalf("unexpected recipient: %s", mail.to)
	}
	if mail.subject != "Approved: Sunday, June 1, 2025" {
		t.Fatalf("unexpected subject: %q", mail.subject)
	}
	if mail.body != "Dear Pat Doe, see you at 10:00." {
		t.Fatalf("unexpected body: %q", mail.body)
	}
	if mail.fromName != "Clinic" || mail.from != "noreply@clinic.local" {
		t.Fatalf("unexpected sender: %s <%s>", mail.fromName, mail.from)
	}
}

func TestDeliverSwallowsFailures(t *testing.T) {
	templates := &fakeTemplateStore{templates: map[string]*models.EmailTemplate{}}
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := NewNotificationService(templates, mailer)

	// Neither a missing template nor a failing mailer may panic or error
	// out; delivery is best-effort.
	svc.deliver(emailJob{templateName: "missing", recipient: "pat@example.com"})

	templates.templates["verification_code"] = &models.EmailTemplate{
		TemplateName: "verification_code",
		Subject:      "Code",
		Body:         "{{code}}",
	}
	svc.deliver(emailJob{
		templateName: "verification_code",
		recipient:    "pat@example.com",
		variables:    map[string]string{"code": "123456"},
	})
}
