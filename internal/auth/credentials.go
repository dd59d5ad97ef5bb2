package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-todo-api/internal/model"
)

// AccountFinder is the lookup half of the storage collaborator. It must
// return model.ErrUserNotFound (possibly wrapped) when the identity is absent.
type AccountFinder interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
}

// CredentialStore checks presented passwords against stored hashes. It never
// persists anything itself.
type CredentialStore struct {
	hasher    *PasswordHasher
	accounts  AccountFinder
	dummyHash string
}

func NewCredentialStore(hasher *PasswordHasher, accounts AccountFinder) (*CredentialStore, error) {
	if hasher == nil || accounts == nil {
		return nil, errors.New("credential store requires a hasher and an account finder")
	}

	// Burned on unknown usernames so both failure paths pay one bcrypt compare.
	dummy, err := hasher.Hash("timing-equalizer-not-a-password")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &CredentialStore{hasher: hasher, accounts: accounts, dummyHash: dummy}, nil
}

// Authenticate returns the account for identity when password matches.
// Failures carry an internal kind (ErrAccountNotFound, ErrPasswordMismatch,
// ErrAccountInactive); callers collapse them with External.
func (s *CredentialStore) Authenticate(ctx context.Context, identity string, password string) (model.User, error) {
	identity = strings.TrimSpace(identity)

	user, err := s.accounts.FindByUsername(ctx, identity)
	if errors.Is(err, model.ErrUserNotFound) {
		s.hasher.Verify(password, s.dummyHash)
		return model.User{}, ErrAccountNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("look up account: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return model.User{}, ErrPasswordMismatch
	}
	if !user.IsActive {
		return model.User{}, ErrAccountInactive
	}

	return user, nil
}

// Hasher exposes the hasher used for account creation and password changes.
func (s *CredentialStore) Hasher() *PasswordHasher {
	return s.hasher
}
