package service

import (
	"context"
	"strings"

	"github.com/composersite/catalog/internal/store"
)

// PasswordService checks download passwords.
type PasswordService struct {
	store store.PasswordStore
}

func NewPasswordService(store store.PasswordStore) *PasswordService {
	return &PasswordService{store: store}
}

// Verify compares password with the work's override when workID names a
// work that has one, otherwise with the site default. The comparison
// ignores case.
func (p *PasswordService) Verify(ctx context.Context, password, workID string) error {
	if password == "" {
		return ErrPasswordRequired
	}

	var expected string
	if workID != "" {
		override, err := p.store.GetWorkPasswordOverride(ctx, workID)
		if err != nil {
			return err
		}
		expected = override
	}

	if expected == "" {
		fallback, err := p.store.GetDefaultAssetPassword(ctx)
		if err != nil {
			return err
		}
		expected = fallback
	}

	if expected == "" {
		return ErrPasswordNotConfigured
	}
	if strings.ToLower(password) != strings.ToLower(expected) {
		return ErrIncorrectPassword
	}

	return nil
}
