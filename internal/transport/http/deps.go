package http

import (
	"context"

	"github.com/pcichat/accounts-api/internal/domain"
)

// UserRepository is the minimal interface the router requires from the user store.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

// PendingRepository is the minimal interface the router requires from the
// pending-registration store.
type PendingRepository interface {
	Put(ctx context.Context, p *domain.PendingRegistration) error
	Get(ctx context.Context, email string) (*domain.PendingRegistration, error)
	Delete(ctx context.Context, email string) error
}

// Mailer is the minimal interface the router requires from the notifier.
type Mailer interface {
	SendEmail(to, subject, body string) error
}
