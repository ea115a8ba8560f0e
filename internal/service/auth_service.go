package service

import (
	"errors"
	"fmt"
	"time"

	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/repository"
	"clinic-appointment-backend/pkg/utils"

	"gorm.io/gorm"
)

const minPasswordLength = 6

type AuthService struct {
	profileRepo  *repository.ProfileRepository
	auditRepo    *repository.AuditRepository
	verification *VerificationService
}

func NewAuthService(
	profileRepo *repository.ProfileRepository,
	auditRepo *repository.AuditRepository,
	verification *VerificationService,
) *AuthService {
	return &AuthService{
		profileRepo:  profileRepo,
		auditRepo:    auditRepo,
		verification: verification,
	}
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Profile      ProfileResponse `json:"profile"`
}

type ProfileResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Login authenticates a profile by email and password and returns tokens
func (s *AuthService) Login(email, password string) (*LoginResponse, error) {
	profile, err := s.profileRepo.FindByEmail(email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if !utils.ComparePassword(profile.PasswordHash, password) {
		return nil, errors.New("invalid credentials")
	}

	response, err := s.issueTokens(profile)
	if err != nil {
		return nil, err
	}

	profileIDPtr := &profile.ID
	_ = s.auditRepo.CreateAuditLog(profileIDPtr, "login", fmt.Sprintf("Profile %s logged in", email))

	return response, nil
}

// RegisterInput carries a sign-up request. The email must have completed
// code verification before registration is accepted.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    *string
}

// Register creates a new patient profile and returns tokens
func (s *AuthService) Register(input RegisterInput) (*LoginResponse, error) {
	if existing, err := s.profileRepo.FindByEmail(input.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	verified, err := s.verification.HasVerified(input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email verification: %w", err)
	}
	if !verified {
		return nil, ErrEmailNotVerified
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Self-service sign-up always creates a patient; admins are seeded.
	profile := &models.Profile{
		Email:        input.Email,
		PasswordHash: passwordHash,
		FullName:     input.FullName,
		Role:         models.RolePatient,
		Phone:        input.Phone,
	}

	if err := s.profileRepo.Create(profile); err != nil {
		// A concurrent registration can slip past the lookup above; the
		// unique index on email is the authoritative check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	response, err := s.issueTokens(profile)
	if err != nil {
		return nil, err
	}

	profileIDPtr := &profile.ID
	_ = s.auditRepo.CreateAuditLog(profileIDPtr, "registration", fmt.Sprintf("Profile %s registered", input.Email))

	return response, nil
}

// ForgotPassword emails a reset code to the account's address. An unknown
// email succeeds without sending anything so the endpoint cannot be used
// to probe which addresses have accounts.
func (s *AuthService) ForgotPassword(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	if _, err := s.profileRepo.FindByEmail(email); err != nil {
		return nil
	}

	return s.verification.IssueReset(email)
}

// ResetPassword consumes a reset code and replaces the profile's password.
// All outstanding refresh tokens are revoked so existing sessions cannot
// outlive the old credential.
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	if err := s.verification.Verify(email, code); err != nil {
		return err
	}

	profile, err := s.profileRepo.FindByEmail(email)
	if err != nil {
		return ErrInvalidCode
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.profileRepo.Update(profile.ID, map[string]interface{}{
		"password_hash": passwordHash,
	}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.profileRepo.RevokeAllRefreshTokens(profile.ID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	profileIDPtr := &profile.ID
	_ = s.auditRepo.CreateAuditLog(profileIDPtr, "password_reset", fmt.Sprintf("Profile %s reset their password", email))

	return nil
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	tokenHash := utils.HashRefreshToken(refreshToken)

	token, err := s.profileRepo.FindRefreshTokenByHash(tokenHash)
	if err != nil {
		return "", errors.New("invalid or revoked refresh token")
	}

	if time.Now().After(token.ExpiresAt) {
		return "", errors.New("refresh token expired")
	}

	accessToken, err := utils.GenerateAccessToken(token.Profile.ID, token.Profile.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(refreshToken string) error {
	tokenHash := utils.HashRefreshToken(refreshToken)

	if err := s.profileRepo.RevokeRefreshTokenByHash(tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// SeedAdmin ensures the configured administrator account exists
func (s *AuthService) SeedAdmin(email, password, fullName string) error {
	if email == "" || password == "" {
		return nil
	}

	if existing, err := s.profileRepo.FindByEmail(email); err == nil && existing != nil {
		return nil
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.Profile{
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Role:         models.RoleAdmin,
	}
	return s.profileRepo.Create(admin)
}

func (s *AuthService) issueTokens(profile *models.Profile) (*LoginResponse, error) {
	accessToken, err := utils.GenerateAccessToken(profile.ID, profile.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenHash := utils.HashRefreshToken(refreshToken)
	refreshTokenModel := &models.RefreshToken{
		ProfileID: profile.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(utils.GetRefreshTokenExpiry()),
	}

	if err := s.profileRepo.CreateRefreshToken(refreshTokenModel); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Profile: ProfileResponse{
			ID:       profile.ID,
			Email:    profile.Email,
			FullName: profile.FullName,
			Role:     profile.Role,
		},
	}, nil
}
