package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pcichat/accounts-api/internal/domain"
	"github.com/pcichat/accounts-api/internal/pkg/id"
	"github.com/pcichat/accounts-api/internal/pkg/password"
	"github.com/pcichat/accounts-api/internal/pkg/validate"
)

// otpTTL bounds how long a verification code stays valid.
const otpTTL = 15 * time.Minute

const emailSubject = "Your PCIChat verification code"

// Service is the registration state machine: an (email, password) submission
// becomes a verified account only after the submitter proves control of the
// address with a time-boxed code. Every operation returns a closed Outcome;
// collaborator errors are logged and mapped, never propagated.
type Service interface {
	SubmitRegistration(ctx context.Context, email, pass string) domain.Outcome
	SubmitOTP(ctx context.Context, email, code string) domain.Outcome
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

type pendingStore interface {
	Put(ctx context.Context, p *domain.PendingRegistration) error
	Get(ctx context.Context, email string) (*domain.PendingRegistration, error)
	Delete(ctx context.Context, email string) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type codeGenerator interface {
	Generate() (string, error)
}

type service struct {
	users         userStore
	pending       pendingStore
	mailer        mailer
	codes         codeGenerator
	allowedDomain string
}

type ServiceDeps struct {
	UserRepo      userStore
	PendingRepo   pendingStore
	Mailer        mailer
	Codes         codeGenerator
	AllowedDomain string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:         deps.UserRepo,
		pending:       deps.PendingRepo,
		mailer:        deps.Mailer,
		codes:         deps.Codes,
		allowedDomain: deps.AllowedDomain,
	}
}

// registrationForm mirrors the shape rules of the original signup form:
// a parseable address and a password of at least 6 characters.
type registrationForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func (s *service) SubmitRegistration(ctx context.Context, email, pass string) domain.Outcome {
	email = normalizeEmail(email)

	if err := validate.Struct(&registrationForm{Email: email, Password: pass}); err != nil {
		return domain.OutcomeInvalidData
	}
	if !strings.HasSuffix(email, "@"+s.allowedDomain) {
		return domain.OutcomeInvalidEmailDomain
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.OutcomeUserExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		slog.Error("user lookup failed", "email", email, "err", err)
		return domain.OutcomeFailed
	}

	hash, err := password.Hash(pass)
	if err != nil {
		slog.Error("password hash failed", "err", err)
		return domain.OutcomeFailed
	}

	code, err := s.codes.Generate()
	if err != nil {
		slog.Error("otp generation failed", "err", err)
		return domain.OutcomeFailed
	}

	// Upsert: a resubmission for the same address supersedes the previous
	// pending record, invalidating its code.
	p := &domain.PendingRegistration{
		Email:        email,
		PasswordHash: hash,
		OTP:          code,
		ExpiresAt:    time.Now().Add(otpTTL).Unix(),
	}
	if err := s.pending.Put(ctx, p); err != nil {
		slog.Error("store pending registration failed", "email", email, "err", err)
		return domain.OutcomeFailed
	}

	body := fmt.Sprintf("Your verification code is: %s\r\n\r\nThis code will expire in %d minutes.",
		code, int(otpTTL.Minutes()))
	if err := s.mailer.SendEmail(email, emailSubject, body); err != nil {
		// The pending record stays; the next submission overwrites it.
		slog.Error("send verification email failed", "email", email, "err", err)
		return domain.OutcomeNotifyFailed
	}

	return domain.OutcomeOTPSent
}

func (s *service) SubmitOTP(ctx context.Context, email, code string) domain.Outcome {
	email = normalizeEmail(email)

	// Absent record, wrong code, and expired code all collapse into the same
	// outcome so the caller can't probe which factor failed.
	p, err := s.pending.Get(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Error("pending registration lookup failed", "email", email, "err", err)
		}
		return domain.OutcomeInvalidOTP
	}
	if p.OTP != code || time.Now().Unix() >= p.ExpiresAt {
		return domain.OutcomeInvalidOTP
	}

	now := time.Now().UTC()
	u := &domain.User{
		Email:        email,
		UserID:       id.New(),
		PasswordHash: p.PasswordHash, // hashed at submission time, never rehashed
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// Covers the uniqueness race between two concurrent verifications.
		// The pending record is retained so the submitter can retry.
		slog.Error("create user failed", "email", email, "err", err)
		return domain.OutcomeFailed
	}

	if err := s.pending.Delete(ctx, email); err != nil {
		slog.Warn("failed to delete consumed pending registration", "email", email, "err", err)
	}

	return domain.OutcomeSuccess
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
