package session

import (
	"context"
	"fmt"

	"github.com/pcichat/accounts-api/internal/domain"
	"github.com/pcichat/accounts-api/internal/pkg/password"
)

// storeVerifier checks submitted credentials against the user store.
// "No such account" and "wrong password" produce the same error.
type storeVerifier struct {
	users userStore
}

func NewStoreVerifier(users userStore) credentialVerifier {
	return &storeVerifier{users: users}
}

func (v *storeVerifier) Verify(ctx context.Context, email, pass string) (*domain.User, error) {
	u, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !password.Verify(pass, u.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return u, nil
}
