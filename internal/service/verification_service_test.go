package service

import (
	"errors"
	"testing"
	"time"

	"clinic-appointment-backend/internal/models"
)

type fakeVerificationStore struct {
	rows   map[uint]*models.EmailVerificationCode
	nextID uint
}

func newFakeVerificationStore() *fakeVerificationStore {
	return &fakeVerificationStore{rows: make(map[uint]*models.EmailVerificationCode), nextID: 1}
}

func (f *fakeVerificationStore) Create(code *models.EmailVerificationCode) error {
	code.ID = f.nextID
	f.nextID++
	code.CreatedAt = time.Now()
	f.rows[code.ID] = code
	return nil
}

func (f *fakeVerificationStore) FindUnused(email, code string) (*models.EmailVerificationCode, error) {
	var latest *models.EmailVerificationCode
	for _, row := range f.rows {
		if row.Email == email && row.Code == code && !row.Used {
			if latest == nil || row.ID > latest.ID {
				latest = row
			}
		}
	}
	if latest == nil {
		return nil, errors.New("verification code not found")
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeVerificationStore) MarkUsed(id uint) error {
	row, ok := f.rows[id]
	if !ok {
		return errors.New("verification code not found")
	}
	row.Used = true
	return nil
}

func (f *fakeVerificationStore) HasVerified(email string) (bool, error) {
	for _, row := range f.rows {
		if row.Email == email && row.Used {
			return true, nil
		}
	}
	return false, nil
}

func newTestVerificationService() (*VerificationService, *fakeVerificationStore, *fakeNotifier) {
	store := newFakeVerificationStore()
	notifier := &fakeNotifier{}
	svc := NewVerificationService(store, notifier, false)
	return svc, store, notifier
}

// issuedCode issues a code for the email and digs it out of the store
func issuedCode(t *testing.T, svc *VerificationService, store *fakeVerificationStore, email string) string {
	t.Helper()
	if err := svc.Issue(email); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	for _, row := range store.rows {
		if row.Email == email && !row.Used {
			return row.Code
		}
	}
	t.Fatal("no code stored")
	return ""
}

func TestIssueStoresCodeAndNotifies(t *testing.T) {
	svc, store, notifier := newTestVerificationService()

	code := issuedCode(t, svc, store, "a@example.com")

	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("non-numeric code: %q", code)
		}
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}
	if notifier.sent[0].template != "verification_code" {
		t.Fatalf("unexpected template: %s", notifier.sent[0].template)
	}
	if notifier.sent[0].variables["code"] != code {
		t.Fatal("notification does not carry the issued code")
	}
}

func TestIssueResetUsesResetTemplate(t *testing.T) {
	svc, _, notifier := newTestVerificationService()

	if err := svc.IssueReset("a@example.com"); err != nil {
		t.Fatalf("IssueReset returned error: %v", err)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}
	if notifier.sent[0].template != "password_reset" {
		t.Fatalf("unexpected template: %s", notifier.sent[0].template)
	}
}

func TestVerifyConsumesCodeExactlyOnce(t *testing.T) {
	svc, store, _ := newTestVerificationService()

	code := issuedCode(t, svc, store, "a@example.com")

	if err := svc.Verify("a@example.com", code); err != nil {
		t.Fatalf("first Verify: %v", err)
	}

	// A consumed code is indistinguishable from an unknown one.
	if err := svc.Verify("a@example.com", code); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode on reuse, got %v", err)
	}

	verified, err := svc.HasVerified("a@example.com")
	if err != nil {
		t.Fatalf("HasVerified: %v", err)
	}
	if !verified {
		t.Fatal("expected email to be verified after consuming a code")
	}
}

func TestVerifyWrongCode(t *testing.T) {
	svc, store, _ := newTestVerificationService()

	issuedCode(t, svc, store, "a@example.com")

	if err := svc.Verify("a@example.com", "000000"); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
	if err := svc.Verify("b@example.com", "000000"); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode for unknown email, got %v", err)
	}
}

func TestVerifyExpiredCode(t *testing.T) {
	svc, store, _ := newTestVerificationService()

	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	code := issuedCode(t, svc, store, "a@example.com")

	// One second past expiry.
	svc.now = func() time.Time { return issued.Add(codeTTL + time.Second) }

	if err := svc.Verify("a@example.com", code); !errors.Is(err, ErrExpiredCode) {
		t.Fatalf("expected ErrExpiredCode, got %v", err)
	}

	verified, err := svc.HasVerified("a@example.com")
	if err != nil {
		t.Fatalf("HasVerified: %v", err)
	}
	if verified {
		t.Fatal("expired code must not count as verification")
	}
}

func TestReissueBeforeUseIsAllowed(t *testing.T) {
	svc, store, _ := newTestVerificationService()

	first := issuedCode(t, svc, store, "a@example.com")
	if err := svc.Issue("a@example.com"); err != nil {
		t.Fatalf("re-issue: %v", err)
	}

	// The first code still works until consumed.
	if err := svc.Verify("a@example.com", first); err != nil {
		t.Fatalf("Verify with first code after re-issue: %v", err)
	}
}

func TestVerifyValidation(t *testing.T) {
	svc, _, _ := newTestVerificationService()

	if err := svc.Verify("", "123456"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty email, got %v", err)
	}
	if err := svc.Issue(""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty email, got %v", err)
	}
}
