package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pcichat/accounts-api/internal/domain"
	"github.com/pcichat/accounts-api/internal/pkg/validate"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResult struct {
	Bearer string
	User   *domain.User
}

// Service validates sign-in submissions against the same email policy as
// registration, then hands the credentials to the verifier. It never hashes
// or compares passwords itself.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, domain.Outcome)
	GetCurrent(ctx context.Context, email string) (*domain.User, error)
}

// credentialVerifier is the external credential-verification collaborator.
// Its failure reasons are already merged; Login passes them through as a
// single failed outcome.
type credentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*domain.User, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type tokenSigner interface {
	Sign(userID, email string) (string, error)
}

type service struct {
	verifier      credentialVerifier
	users         userStore
	signer        tokenSigner
	allowedDomain string
}

type ServiceDeps struct {
	Verifier      credentialVerifier
	UserRepo      userStore
	Signer        tokenSigner
	AllowedDomain string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		verifier:      deps.Verifier,
		users:         deps.UserRepo,
		signer:        deps.Signer,
		allowedDomain: deps.AllowedDomain,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, domain.Outcome) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validate.Struct(&req); err != nil {
		return nil, domain.OutcomeInvalidData
	}
	if !strings.HasSuffix(req.Email, "@"+s.allowedDomain) {
		return nil, domain.OutcomeInvalidEmailDomain
	}

	u, err := s.verifier.Verify(ctx, req.Email, req.Password)
	if err != nil {
		return nil, domain.OutcomeFailed
	}

	if s.signer == nil {
		slog.Error("no session token signer configured")
		return nil, domain.OutcomeFailed
	}
	bearer, err := s.signer.Sign(u.UserID, u.Email)
	if err != nil {
		slog.Error("sign session token failed", "email", u.Email, "err", err)
		return nil, domain.OutcomeFailed
	}

	return &LoginResult{Bearer: bearer, User: u}, domain.OutcomeSuccess
}

func (s *service) GetCurrent(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}
