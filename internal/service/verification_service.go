package service

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"clinic-appointment-backend/internal/models"
)

const codeTTL = 10 * time.Minute

// VerificationStore is the persistence surface for verification codes
type VerificationStore interface {
	Create(code *models.EmailVerificationCode) error
	FindUnused(email, code string) (*models.EmailVerificationCode, error)
	MarkUsed(id uint) error
	HasVerified(email string) (bool, error)
}

// VerificationService gates account creation behind a single-use,
// time-boxed emailed code.
type VerificationService struct {
	codes    VerificationStore
	notifier Notifier
	debug    bool
	now      func() time.Time
}

func NewVerificationService(codes VerificationStore, notifier Notifier, debug bool) *VerificationService {
	return &VerificationService{
		codes:    codes,
		notifier: notifier,
		debug:    debug,
		now:      time.Now,
	}
}

// Issue generates a fresh 6-digit code for the email, valid for ten
// minutes, and emails it best-effort. Re-issuing before use is allowed.
func (s *VerificationService) Issue(email string) error {
	return s.issue(email, "verification_code")
}

// IssueReset issues a code for a password reset. Same code mechanics,
// different email template.
func (s *VerificationService) IssueReset(email string) error {
	return s.issue(email, "password_reset")
}

func (s *VerificationService) issue(email, templateName string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	row := &models.EmailVerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(codeTTL),
	}
	if err := s.codes.Create(row); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	if s.debug {
		log.Printf("Verification code for %s: %s", email, code)
	}

	s.notifier.Enqueue(templateName, email, map[string]string{
		"code": code,
	})

	return nil
}

// Verify consumes a code. ErrInvalidCode when no matching unused row
// exists (including previously consumed ones), ErrExpiredCode when the
// match is past its expiry.
func (s *VerificationService) Verify(email, code string) error {
	if email == "" || code == "" {
		return fmt.Errorf("%w: email and code are required", ErrValidation)
	}

	row, err := s.codes.FindUnused(email, code)
	if err != nil {
		return ErrInvalidCode
	}

	if s.now().After(row.ExpiresAt) {
		return ErrExpiredCode
	}

	if err := s.codes.MarkUsed(row.ID); err != nil {
		return fmt.Errorf("failed to consume verification code: %w", err)
	}

	return nil
}

// HasVerified reports whether the email completed verification
func (s *VerificationService) HasVerified(email string) (bool, error) {
	return s.codes.HasVerified(email)
}

// generateCode returns a uniformly random 6-digit numeric code
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
