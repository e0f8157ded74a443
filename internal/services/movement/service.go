// Package movement manages account movements and keeps account
// balances in step with their CONFIRMED lifecycle.
package movement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/interfaces"
	"github.com/beehive/dashboard/internal/models"
)

// Service implements interfaces.MovementService.
type Service struct {
	store  interfaces.BankStore
	guard  interfaces.ValidationGuard
	engine interfaces.BalanceEngine
	logger *common.Logger
}

// NewService creates a new movement service.
func NewService(store interfaces.BankStore, guard interfaces.ValidationGuard, engine interfaces.BalanceEngine, logger *common.Logger) *Service {
	return &Service{store: store, guard: guard, engine: engine, logger: logger}
}

// CreateMovement validates and persists a new movement. A CONFIRMED
// movement is applied to the account balance before it is saved; if the
// application fails the movement is not recorded.
func (s *Service) CreateMovement(ctx context.Context, movement *models.Movement) (*models.Movement, error) {
	if err := movement.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.guard.AccountExists(ctx, movement.AccountID); err != nil {
		return nil, err
	}

	if movement.Status == models.StatusConfirmed {
		if _, err := s.engine.Apply(ctx, movement.AccountID, movement.Amount, movement.Type); err != nil {
			return nil, err
		}
	}

	if movement.ID == "" {
		movement.ID = uuid.NewString()
	}
	if err := s.store.SaveMovement(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to create movement: %w", err)
	}

	s.logger.Info().
		Str("movement_id", movement.ID).
		Str("account_id", movement.AccountID).
		Str("type", string(movement.Type)).
		Float64("amount", movement.Amount).
		Msg("Movement created")
	return movement, nil
}

// GetMovement returns the movement with the given id.
func (s *Service) GetMovement(ctx context.Context, id string) (*models.Movement, error) {
	return s.store.GetMovement(ctx, id)
}

// ListMovements returns the account's movements ordered by date
// descending. An account with no movements yields an empty list.
func (s *Service) ListMovements(ctx context.Context, accountID string) ([]*models.Movement, error) {
	if _, err := s.guard.AccountExists(ctx, accountID); err != nil {
		return nil, err
	}
	return s.store.ListMovementsByAccount(ctx, accountID)
}

// FilterMovements returns the account's movements narrowed by type,
// status and date range, ordered by date descending. When both range
// bounds are set the store query is range-scoped; the remaining fields
// are matched in memory.
func (s *Service) FilterMovements(ctx context.Context, accountID string, filter models.MovementFilter) ([]*models.Movement, error) {
	if _, err := s.guard.AccountExists(ctx, accountID); err != nil {
		return nil, err
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown movement type '%s'", models.ErrInvalidInput, filter.Type)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown movement status '%s'", models.ErrInvalidInput, filter.Status)
	}

	var movements []*models.Movement
	var err error
	if filter.From != nil && filter.To != nil {
		movements, err = s.store.ListMovementsByAccountInRange(ctx, accountID, *filter.From, *filter.To)
	} else {
		movements, err = s.store.ListMovementsByAccount(ctx, accountID)
	}
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.Movement, 0, len(movements))
	for _, m := range movements {
		if filter.Matches(m) {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

// UpdateMovement edits an existing movement, reversing the old
// financial effect and applying the new one. The owning account cannot
// change; all balance adjustments target the movement's stored account.
func (s *Service) UpdateMovement(ctx context.Context, details *models.Movement) (*models.Movement, error) {
	existing, err := s.store.GetMovement(ctx, details.ID)
	if err != nil {
		return nil, err
	}

	details.AccountID = existing.AccountID
	if err := details.Validate(); err != nil {
		return nil, err
	}

	oldConfirmed := existing.Status == models.StatusConfirmed
	newConfirmed := details.Status == models.StatusConfirmed
	switch {
	case oldConfirmed && newConfirmed:
		_, err = s.engine.UpdateTransaction(ctx, existing.AccountID, existing.Amount, existing.Type, details.Amount, details.Type)
	case oldConfirmed:
		_, err = s.engine.Reverse(ctx, existing.AccountID, existing.Amount, existing.Type)
	case newConfirmed:
		_, err = s.engine.Apply(ctx, existing.AccountID, details.Amount, details.Type)
	}
	if err != nil {
		return nil, err
	}

	existing.Category = details.Category
	existing.Description = details.Description
	existing.Date = details.Date
	existing.Amount = details.Amount
	existing.Type = details.Type
	existing.Status = details.Status
	if err := s.store.SaveMovement(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update movement: %w", err)
	}

	s.logger.Info().
		Str("movement_id", existing.ID).
		Float64("amount", existing.Amount).
		Str("status", string(existing.Status)).
		Msg("Movement updated")
	return existing, nil
}

// DeleteMovement removes a movement. A CONFIRMED movement's effect is
// reversed from the account balance first; if that fails the movement
// stays.
func (s *Service) DeleteMovement(ctx context.Context, id string) error {
	movement, err := s.store.GetMovement(ctx, id)
	if err != nil {
		return err
	}

	if movement.Status == models.StatusConfirmed {
		if _, err := s.engine.Reverse(ctx, movement.AccountID, movement.Amount, movement.Type); err != nil {
			return err
		}
	}

	if err := s.store.DeleteMovement(ctx, id); err != nil {
		return err
	}

	s.logger.Info().
		Str("movement_id", id).
		Str("account_id", movement.AccountID).
		Msg("Movement deleted")
	return nil
}

var _ interfaces.MovementService = (*Service)(nil)
