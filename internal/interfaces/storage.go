// Package interfaces defines the contracts between the BeeHive services
// and their collaborators. Services depend on these interfaces rather
// than concrete implementations.
package interfaces

import (
	"context"
	"time"

	"github.com/beehive/dashboard/internal/models"
)

// StorageManager provides access to the storage areas and owns their
// lifecycle.
type StorageManager interface {
	BankStore() BankStore
	Close() error
}

// BankStore persists accounts, movements and planned entries. Lookups
// for unknown ids return an error wrapping models.ErrNotFound.
type BankStore interface {
	// Accounts
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	GetAccountByIBAN(ctx context.Context, iban string) (*models.Account, error)
	ListAccountsByUser(ctx context.Context, userID string) ([]*models.Account, error)
	SaveAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, id string) error

	// Movements
	GetMovement(ctx context.Context, id string) (*models.Movement, error)
	ListMovementsByAccount(ctx context.Context, accountID string) ([]*models.Movement, error)
	ListMovementsByAccountInRange(ctx context.Context, accountID string, start, end time.Time) ([]*models.Movement, error)
	ListMovementsForUserInRange(ctx context.Context, userID string, start, end time.Time) ([]*models.Movement, error)
	SaveMovement(ctx context.Context, movement *models.Movement) error
	DeleteMovement(ctx context.Context, id string) error

	// Planned entries
	GetPlanned(ctx context.Context, id string) (*models.Planned, error)
	ListPlannedByAccount(ctx context.Context, accountID string) ([]*models.Planned, error)
	ListPlannedForUser(ctx context.Context, userID string) ([]*models.Planned, error)
	ListPlannedForUserInRange(ctx context.Context, userID string, start, end time.Time) ([]*models.Planned, error)
	ListPlannedDueBefore(ctx context.Context, cutoff time.Time) ([]*models.Planned, error)
	SavePlanned(ctx context.Context, planned *models.Planned) error
	DeletePlanned(ctx context.Context, id string) error
}
