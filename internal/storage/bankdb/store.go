// Package bankdb implements BankStore using BadgerHold.
// It persists accounts, movements and planned entries in a single
// embedded store, keyed by entity id.
package bankdb

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/models"
)

// Store implements interfaces.BankStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore creates a new BankStore backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create bank db path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open bank db at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("BankDB opened")
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.db.Close()
}

// --- Accounts ---

func (s *Store) GetAccount(_ context.Context, id string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Get(id, &account); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("account '%s': %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account '%s': %w", id, err)
	}
	return &account, nil
}

func (s *Store) GetAccountByIBAN(_ context.Context, iban string) (*models.Account, error) {
	var accounts []models.Account
	if err := s.db.Find(&accounts, badgerhold.Where("IBAN").Eq(iban)); err != nil {
		return nil, fmt.Errorf("failed to query account by IBAN: %w", err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("account with IBAN '%s': %w", iban, models.ErrNotFound)
	}
	return &accounts[0], nil
}

func (s *Store) ListAccountsByUser(_ context.Context, userID string) ([]*models.Account, error) {
	var accounts []models.Account
	if err := s.db.Find(&accounts, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list accounts for user '%s': %w", userID, err)
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Priority != accounts[j].Priority {
			return accounts[i].Priority < accounts[j].Priority
		}
		return accounts[i].Name < accounts[j].Name
	})
	out := make([]*models.Account, len(accounts))
	for i := range accounts {
		out[i] = &accounts[i]
	}
	return out, nil
}

func (s *Store) SaveAccount(_ context.Context, account *models.Account) error {
	now := time.Now()
	var existing models.Account
	if err := s.db.Get(account.ID, &existing); err == nil {
		account.CreatedAt = existing.CreatedAt
	} else if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	if err := s.db.Upsert(account.ID, account); err != nil {
		return fmt.Errorf("failed to save account '%s': %w", account.ID, err)
	}
	s.logger.Debug().Str("account_id", account.ID).Msg("Account saved")
	return nil
}

func (s *Store) DeleteAccount(_ context.Context, id string) error {
	if err := s.db.Delete(id, models.Account{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("account '%s': %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to delete account '%s': %w", id, err)
	}
	s.logger.Debug().Str("account_id", id).Msg("Account deleted")
	return nil
}

// --- Movements ---

func (s *Store) GetMovement(_ context.Context, id string) (*models.Movement, error) {
	var movement models.Movement
	if err := s.db.Get(id, &movement); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("movement '%s': %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movement '%s': %w", id, err)
	}
	return &movement, nil
}

func (s *Store) ListMovementsByAccount(_ context.Context, accountID string) ([]*models.Movement, error) {
	var movements []models.Movement
	if err := s.db.Find(&movements, badgerhold.Where("AccountID").Eq(accountID).Index("AccountID")); err != nil {
		return nil, fmt.Errorf("failed to list movements for account '%s': %w", accountID, err)
	}
	sortMovementsByDateDesc(movements)
	return movementPtrs(movements), nil
}

func (s *Store) ListMovementsByAccountInRange(_ context.Context, accountID string, start, end time.Time) ([]*models.Movement, error) {
	var movements []models.Movement
	query := badgerhold.Where("AccountID").Eq(accountID).Index("AccountID").
		And("Date").Ge(start).And("Date").Le(end)
	if err := s.db.Find(&movements, query); err != nil {
		return nil, fmt.Errorf("failed to query movements for account '%s': %w", accountID, err)
	}
	sortMovementsByDateDesc(movements)
	return movementPtrs(movements), nil
}

func (s *Store) ListMovementsForUserInRange(ctx context.Context, userID string, start, end time.Time) ([]*models.Movement, error) {
	accountIDs, err := s.accountIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(accountIDs) == 0 {
		return []*models.Movement{}, nil
	}

	var movements []models.Movement
	query := badgerhold.Where("AccountID").In(accountIDs...).
		And("Date").Ge(start).And("Date").Le(end)
	if err := s.db.Find(&movements, query); err != nil {
		return nil, fmt.Errorf("failed to query movements for user '%s': %w", userID, err)
	}
	sortMovementsByDateDesc(movements)
	return movementPtrs(movements), nil
}

func (s *Store) SaveMovement(_ context.Context, movement *models.Movement) error {
	now := time.Now()
	var existing models.Movement
	if err := s.db.Get(movement.ID, &existing); err == nil {
		movement.CreatedAt = existing.CreatedAt
	} else if movement.CreatedAt.IsZero() {
		movement.CreatedAt = now
	}
	movement.UpdatedAt = now

	if err := s.db.Upsert(movement.ID, movement); err != nil {
		return fmt.Errorf("failed to save movement '%s': %w", movement.ID, err)
	}
	s.logger.Debug().Str("movement_id", movement.ID).Msg("Movement saved")
	return nil
}

func (s *Store) DeleteMovement(_ context.Context, id string) error {
	if err := s.db.Delete(id, models.Movement{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("movement '%s': %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to delete movement '%s': %w", id, err)
	}
	return nil
}

// --- Planned entries ---

func (s *Store) GetPlanned(_ context.Context, id string) (*models.Planned, error) {
	var planned models.Planned
	if err := s.db.Get(id, &planned); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("planned '%s': %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get planned '%s': %w", id, err)
	}
	return &planned, nil
}

func (s *Store) ListPlannedByAccount(_ context.Context, accountID string) ([]*models.Planned, error) {
	var planned []models.Planned
	if err := s.db.Find(&planned, badgerhold.Where("AccountID").Eq(accountID).Index("AccountID")); err != nil {
		return nil, fmt.Errorf("failed to list planned for account '%s': %w", accountID, err)
	}
	sortPlannedByNextExecution(planned)
	return plannedPtrs(planned), nil
}

func (s *Store) ListPlannedForUser(ctx context.Context, userID string) ([]*models.Planned, error) {
	accountIDs, err := s.accountIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(accountIDs) == 0 {
		return []*models.Planned{}, nil
	}

	var planned []models.Planned
	if err := s.db.Find(&planned, badgerhold.Where("AccountID").In(accountIDs...)); err != nil {
		return nil, fmt.Errorf("failed to list planned for user '%s': %w", userID, err)
	}
	sortPlannedByNextExecution(planned)
	return plannedPtrs(planned), nil
}

func (s *Store) ListPlannedForUserInRange(ctx context.Context, userID string, start, end time.Time) ([]*models.Planned, error) {
	accountIDs, err := s.accountIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(accountIDs) == 0 {
		return []*models.Planned{}, nil
	}

	var planned []models.Planned
	query := badgerhold.Where("AccountID").In(accountIDs...).
		And("NextExecution").Ge(start).And("NextExecution").Le(end)
	if err := s.db.Find(&planned, query); err != nil {
		return nil, fmt.Errorf("failed to query planned for user '%s': %w", userID, err)
	}
	sortPlannedByNextExecution(planned)
	return plannedPtrs(planned), nil
}

func (s *Store) ListPlannedDueBefore(_ context.Context, cutoff time.Time) ([]*models.Planned, error) {
	var planned []models.Planned
	if err := s.db.Find(&planned, badgerhold.Where("NextExecution").Le(cutoff)); err != nil {
		return nil, fmt.Errorf("failed to query due planned entries: %w", err)
	}
	sortPlannedByNextExecution(planned)
	return plannedPtrs(planned), nil
}

func (s *Store) SavePlanned(_ context.Context, planned *models.Planned) error {
	now := time.Now()
	var existing models.Planned
	if err := s.db.Get(planned.ID, &existing); err == nil {
		planned.CreatedAt = existing.CreatedAt
	} else if planned.CreatedAt.IsZero() {
		planned.CreatedAt = now
	}
	planned.UpdatedAt = now

	if err := s.db.Upsert(planned.ID, planned); err != nil {
		return fmt.Errorf("failed to save planned '%s': %w", planned.ID, err)
	}
	s.logger.Debug().Str("planned_id", planned.ID).Msg("Planned entry saved")
	return nil
}

func (s *Store) DeletePlanned(_ context.Context, id string) error {
	if err := s.db.Delete(id, models.Planned{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("planned '%s': %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to delete planned '%s': %w", id, err)
	}
	return nil
}

// --- helpers ---

func (s *Store) accountIDsForUser(ctx context.Context, userID string) ([]interface{}, error) {
	accounts, err := s.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]interface{}, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
	}
	return ids, nil
}

func sortMovementsByDateDesc(movements []models.Movement) {
	sort.Slice(movements, func(i, j int) bool {
		return movements[i].Date.After(movements[j].Date)
	})
}

func sortPlannedByNextExecution(planned []models.Planned) {
	sort.Slice(planned, func(i, j int) bool {
		return planned[i].NextExecution.Before(planned[j].NextExecution)
	})
}

func movementPtrs(movements []models.Movement) []*models.Movement {
	out := make([]*models.Movement, len(movements))
	for i := range movements {
		out[i] = &movements[i]
	}
	return out
}

func plannedPtrs(planned []models.Planned) []*models.Planned {
	out := make([]*models.Planned, len(planned))
	for i := range planned {
		out[i] = &planned[i]
	}
	return out
}
