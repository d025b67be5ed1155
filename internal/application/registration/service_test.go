package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pcichat/accounts-api/internal/domain"
	"github.com/pcichat/accounts-api/internal/pkg/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

type mockPendingStore struct{ mock.Mock }

func (m *mockPendingStore) Put(ctx context.Context, p *domain.PendingRegistration) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockPendingStore) Get(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	args := m.Called(ctx, email)
	if p, _ := args.Get(0).(*domain.PendingRegistration); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPendingStore) Delete(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

// fixedCodes always generates the same code.
type fixedCodes struct{ code string }

func (f fixedCodes) Generate() (string, error) { return f.code, nil }

// --- builder ---

func newService(us *mockUserStore, ps *mockPendingStore, ml *mockMailer) Service {
	return NewService(ServiceDeps{
		UserRepo:      us,
		PendingRepo:   ps,
		Mailer:        ml,
		Codes:         fixedCodes{code: "482913"},
		AllowedDomain: "princeton.com",
	})
}

// --- SubmitRegistration ---

func TestSubmitRegistration_MalformedEmail(t *testing.T) {
	svc := newService(nil, nil, nil)
	out := svc.SubmitRegistration(context.Background(), "not-an-email", "secret1")
	assert.Equal(t, domain.OutcomeInvalidData, out)
}

func TestSubmitRegistration_ShortPassword(t *testing.T) {
	svc := newService(nil, nil, nil)
	out := svc.SubmitRegistration(context.Background(), "a@princeton.com", "12345")
	assert.Equal(t, domain.OutcomeInvalidData, out)
}

func TestSubmitRegistration_WrongDomain_NoPendingTouched(t *testing.T) {
	ps := &mockPendingStore{}
	svc := newService(nil, ps, nil)
	out := svc.SubmitRegistration(context.Background(), "a@gmail.com", "secret1")
	assert.Equal(t, domain.OutcomeInvalidEmailDomain, out)
	ps.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestSubmitRegistration_DomainDistinctFromFormat(t *testing.T) {
	// Well-formed but wrong domain must not collapse into invalid_data.
	svc := newService(nil, nil, nil)
	assert.NotEqual(t,
		svc.SubmitRegistration(context.Background(), "a@gmail.com", "secret1"),
		svc.SubmitRegistration(context.Background(), "nope", "secret1"))
}

func TestSubmitRegistration_ExistingAccount_NoOverwrite(t *testing.T) {
	us := &mockUserStore{}
	ps := &mockPendingStore{}
	us.On("GetByEmail", mock.Anything, "a@princeton.com").Return(&domain.User{Email: "a@princeton.com"}, nil)

	svc := newService(us, ps, nil)
	out := svc.SubmitRegistration(context.Background(), "a@princeton.com", "secret1")

	assert.Equal(t, domain.OutcomeUserExists, out)
	ps.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	us.AssertExpectations(t)
}

func TestSubmitRegistration_UserLookupFailure_MapsToFailed(t *testing.T) {
	us := &mockUserStore{}
	ps := &mockPendingStore{}
	us.On("GetByEmail", mock.Anything, "a@princeton.com").Return(nil, errors.New("store unreachable"))

	svc := newService(us, ps, nil)
	out := svc.SubmitRegistration(context.Background(), "a@princeton.com", "secret1")

	assert.Equal(t, domain.OutcomeFailed, out)
	ps.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestSubmitRegistration_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	ps := &mockPendingStore{}
	ml := &mockMailer{}

	us.On("GetByEmail", mock.Anything, "a@princeton.com").Return(nil, domain.ErrNotFound)
	var stored *domain.PendingRegistration
	ps.On("Put", mock.Anything, mock.MatchedBy(func(p *domain.PendingRegistration) bool {
		stored = p
		return true
	})).Return(nil)
	ml.On("SendEmail", "a@princeton.com", mock.Anything, mock.Anything).Return(nil)

	svc := newService(us, ps, ml)
	out := svc.SubmitRegistration(context.Background(), "a@princeton.com", "secret1")

	require.Equal(t, domain.OutcomeOTPSent, out)
	require.NotNil(t, stored)
	assert.Equal(t, "a@princeton.com", stored.Email)
	assert.Equal(t, "482913", stored.OTP)
	// Plaintext is never persisted; the stored hash verifies the password.
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, password.Verify("secret1", stored.PasswordHash))
	// Expiry ~ now + 15 minutes.
	assert.InDelta(t, time.Now().Add(15*time.Minute).Unix(), stored.ExpiresAt, 5)
	ml.AssertExpectations(t)
}

func TestSubmitRegistration_NormalizesEmail(t *testing.T) {
	us := &mockUserStore{}
	ps := &mockPendingStore{}
	ml := &mockMailer{}

	us.On("GetByEmail", mock.Anything, "a@princeton.com").Return(nil, domain.ErrNotFound)
	ps.On("Put", mock.Anything, mock.MatchedBy(func(p *domain.PendingRegistration) bool {
		return p.Email == "a@princeton.com"
	})).Return(nil)
	ml.On("SendEmail", "a@princeton.com", mock.Anything, mock.Anything).Return(nil)

	svc := newService(us, ps, ml)
	out := svc.SubmitRegistration(context.Background(), "  A@Princeton.COM ", "secret1")

	assert.Equal(t, domain.OutcomeOTPSent, out)
	ps.AssertExpectations(t)
}

func TestSubmitRegistration_NotifierFailure_SurfacedAndPendingRetained(t *testing.T) {
	us := &mockUserStore{}
	ps := &mockPendingStore{}
	ml := &mockMailer{}

	us.On("GetByEmail", mock.Anything, "a@princeton.com").Return(nil, domain.ErrNotFound)
	ps.On("Put", mock.Anything, mock.Anything).Return(nil)
	ml.On("SendEmail", "a@princeton.com", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	svc := newService(us, ps, ml)
	out := svc.SubmitRegistration(context.Background(), "a@princeton.com", "secret1")

	assert.Equal(t, domain.OutcomeNotifyFailed, out)
	// The record is kept; a resubmission supersedes it.
	ps.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// --- SubmitOTP ---

func pendingRecord(email, code string, expiresIn time.Duration) *domain.PendingRegistration {
	hash, _ := password.Hash("secret1")
	return &domain.PendingRegistration{
		Email:        email,
		PasswordHash: hash,
		OTP:          code,
		ExpiresAt:    time.Now().Add(expiresIn).Unix(),
	}
}

func TestSubmitOTP_NoPendingRecord(t *testing.T) {
	ps := &mockPendingStore{}
	ps.On("Get", mock.Anything, "a@princeton.com").Return(nil, domain.ErrNotFound)

	svc := newService(nil, ps, nil)
	out := svc.SubmitOTP(context.Background(), "a@princeton.com", "482913")
	assert.Equal(t, domain.OutcomeInvalidOTP, out)
}

func TestSubmitOTP_WrongCode(t *testing.T) {
	us := &mockUserStore{}
	ps := &mockPendingStore{}
	ps.On("Get", mock.Anything, "a@princeton.com").Return(pendingRecord("a@princeton.com", "482913", 10*time.Minute), nil)

	svc := newService(us, ps, nil)
	out := svc.SubmitOTP(context.Background(), "a@princeton.com", "000000")

	assert.Equal(t, domain.OutcomeInvalidOTP, out)
	us.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitOTP_ExpiredCode(t *testing.T) {
	us := &mockUserStore{}
	ps := &mockPendingStore{}
	ps.On("Get", mock.Anything, "a@princeton.com").Return(pendingRecord("a@princeton.com", "482913", -1*time.Minute), nil)

	svc := newService(us, ps, nil)
	out := svc.SubmitOTP(context.Background(), "a@princeton.com", "482913")

	assert.Equal(t, domain.OutcomeInvalidOTP, out)
	us.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitOTP_WrongAndExpiredAreIndistinguishable(t *testing.T) {
	ps := &mockPendingStore{}
	ps.On("Get", mock.Anything, "a@princeton.com").
		Return(pendingRecord("a@princeton.com", "482913", 10*time.Minute), nil).Once()
	ps.On("Get", mock.Anything, "a@princeton.com").
		Return(pendingRecord("a@princeton.com", "482913", -1*time.Minute), nil).Once()

	svc := newService(nil, ps, nil)
	wrong := svc.SubmitOTP(context.Background(), "a@princeton.com", "000000")
	expired := svc.SubmitOTP(context.Background(), "a@princeton.com", "482913")
	assert.Equal(t, wrong, expired)
}

func TestSubmitOTP_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	ps := &mockPendingStore{}

	rec := pendingRecord("a@princeton.com", "482913", 10*time.Minute)
	ps.On("Get", mock.Anything, "a@princeton.com").Return(rec, nil)
	var created *domain.User
	us.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		created = u
		return true
	})).Return(nil)
	ps.On("Delete", mock.Anything, "a@princeton.com").Return(nil)

	svc := newService(us, ps, nil)
	out := svc.SubmitOTP(context.Background(), "a@princeton.com", "482913")

	require.Equal(t, domain.OutcomeSuccess, out)
	require.NotNil(t, created)
	assert.Equal(t, "a@princeton.com", created.Email)
	assert.True(t, created.Verified)
	// The hash computed at submission time is carried over, never rehashed.
	assert.Equal(t, rec.PasswordHash, created.PasswordHash)
	assert.NotEmpty(t, created.UserID)
	ps.AssertCalled(t, "Delete", mock.Anything, "a@princeton.com")
}

func TestSubmitOTP_CreateConflict_PendingRetainedForRetry(t *testing.T) {
	us := &mockUserStore{}
	ps := &mockPendingStore{}

	ps.On("Get", mock.Anything, "a@princeton.com").Return(pendingRecord("a@princeton.com", "482913", 10*time.Minute), nil)
	us.On("Create", mock.Anything, mock.Anything).Return(domain.ErrConflict)

	svc := newService(us, ps, nil)
	out := svc.SubmitOTP(context.Background(), "a@princeton.com", "482913")

	assert.Equal(t, domain.OutcomeFailed, out)
	ps.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
