// Package validation checks preconditions against stored accounts
// before mutations are allowed to proceed.
package validation

import (
	"context"
	"errors"
	"fmt"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/interfaces"
	"github.com/beehive/dashboard/internal/models"
)

// Guard implements interfaces.ValidationGuard.
type Guard struct {
	store  interfaces.BankStore
	logger *common.Logger
}

// NewGuard creates a new validation guard.
func NewGuard(store interfaces.BankStore, logger *common.Logger) *Guard {
	return &Guard{store: store, logger: logger}
}

// AccountExists fetches the account or fails with ErrNotFound.
func (g *Guard) AccountExists(ctx context.Context, accountID string) (*models.Account, error) {
	return g.store.GetAccount(ctx, accountID)
}

// IBANUnique fails with ErrConflict if any account already carries the
// given IBAN.
func (g *Guard) IBANUnique(ctx context.Context, iban string) error {
	_, err := g.store.GetAccountByIBAN(ctx, iban)
	if err == nil {
		return fmt.Errorf("IBAN already in use: %w", models.ErrConflict)
	}
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	return err
}

// IBANUniqueForUpdate is a no-op when the IBAN is unchanged; otherwise
// it checks uniqueness against all other accounts.
func (g *Guard) IBANUniqueForUpdate(ctx context.Context, accountID, newIBAN, currentIBAN string) error {
	if newIBAN == currentIBAN {
		return nil
	}
	existing, err := g.store.GetAccountByIBAN(ctx, newIBAN)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != accountID {
		return fmt.Errorf("IBAN already in use: %w", models.ErrConflict)
	}
	return nil
}

var _ interfaces.ValidationGuard = (*Guard)(nil)
