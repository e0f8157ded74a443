// Package account manages bank accounts.
package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/interfaces"
	"github.com/beehive/dashboard/internal/models"
)

// Service implements interfaces.AccountService.
type Service struct {
	store  interfaces.BankStore
	guard  interfaces.ValidationGuard
	logger *common.Logger
}

// NewService creates a new account service.
func NewService(store interfaces.BankStore, guard interfaces.ValidationGuard, logger *common.Logger) *Service {
	return &Service{store: store, guard: guard, logger: logger}
}

// CreateAccount validates and persists a new account.
func (s *Service) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	if account.UserID == "" {
		account.UserID = common.ResolveUserID(ctx)
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.guard.IBANUnique(ctx, account.IBAN); err != nil {
		return nil, err
	}

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if err := s.store.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info().
		Str("account_id", account.ID).
		Str("user_id", account.UserID).
		Msg("Account created")
	return account, nil
}

// GetAccount returns the account with the given id.
func (s *Service) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.store.GetAccount(ctx, id)
}

// ListAccounts returns all accounts owned by the user, ordered by
// display priority.
func (s *Service) ListAccounts(ctx context.Context, userID string) ([]*models.Account, error) {
	return s.store.ListAccountsByUser(ctx, userID)
}

// UpdateAccount applies changes to an existing account. The balance is
// never taken from the request; only the balance engine mutates it.
func (s *Service) UpdateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	existing, err := s.guard.AccountExists(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.guard.IBANUniqueForUpdate(ctx, account.ID, account.IBAN, existing.IBAN); err != nil {
		return nil, err
	}

	existing.Name = account.Name
	existing.IBAN = account.IBAN
	existing.Type = account.Type
	existing.Priority = account.Priority
	if err := s.store.SaveAccount(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.logger.Info().Str("account_id", existing.ID).Msg("Account updated")
	return existing, nil
}

// DeleteAccount removes the account and everything recorded against it.
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	if _, err := s.guard.AccountExists(ctx, id); err != nil {
		return err
	}

	movements, err := s.store.ListMovementsByAccount(ctx, id)
	if err != nil {
		return err
	}
	for _, m := range movements {
		if err := s.store.DeleteMovement(ctx, m.ID); err != nil {
			return fmt.Errorf("failed to delete movement '%s': %w", m.ID, err)
		}
	}

	planned, err := s.store.ListPlannedByAccount(ctx, id)
	if err != nil {
		return err
	}
	for _, p := range planned {
		if err := s.store.DeletePlanned(ctx, p.ID); err != nil {
			return fmt.Errorf("failed to delete planned '%s': %w", p.ID, err)
		}
	}

	if err := s.store.DeleteAccount(ctx, id); err != nil {
		return err
	}

	s.logger.Info().
		Str("account_id", id).
		Int("movements", len(movements)).
		Int("planned", len(planned)).
		Msg("Account deleted")
	return nil
}

var _ interfaces.AccountService = (*Service)(nil)
