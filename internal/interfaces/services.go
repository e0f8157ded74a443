package interfaces

import (
	"context"
	"time"

	"github.com/beehive/dashboard/internal/models"
)

// BalanceEngine keeps account balances consistent with the CONFIRMED
// movements applied to them.
type BalanceEngine interface {
	Apply(ctx context.Context, accountID string, amount float64, movementType models.MovementType) (*models.Account, error)
	Reverse(ctx context.Context, accountID string, amount float64, movementType models.MovementType) (*models.Account, error)
	UpdateTransaction(ctx context.Context, accountID string, oldAmount float64, oldType models.MovementType, newAmount float64, newType models.MovementType) (*models.Account, error)
}

// ValidationGuard checks preconditions against stored accounts.
type ValidationGuard interface {
	AccountExists(ctx context.Context, accountID string) (*models.Account, error)
	IBANUnique(ctx context.Context, iban string) error
	IBANUniqueForUpdate(ctx context.Context, accountID, newIBAN, currentIBAN string) error
}

// AccountService manages bank accounts.
type AccountService interface {
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]*models.Account, error)
	UpdateAccount(ctx context.Context, account *models.Account) (*models.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// MovementService manages account movements and keeps balances in step
// with their CONFIRMED lifecycle.
type MovementService interface {
	CreateMovement(ctx context.Context, movement *models.Movement) (*models.Movement, error)
	GetMovement(ctx context.Context, id string) (*models.Movement, error)
	ListMovements(ctx context.Context, accountID string) ([]*models.Movement, error)
	FilterMovements(ctx context.Context, accountID string, filter models.MovementFilter) ([]*models.Movement, error)
	UpdateMovement(ctx context.Context, movement *models.Movement) (*models.Movement, error)
	DeleteMovement(ctx context.Context, id string) error
}

// PlannedService manages planned (anticipated) entries.
type PlannedService interface {
	CreatePlanned(ctx context.Context, planned *models.Planned) (*models.Planned, error)
	GetPlanned(ctx context.Context, id string) (*models.Planned, error)
	ListPlanned(ctx context.Context, accountID string) ([]*models.Planned, error)
	ListPlannedForUser(ctx context.Context, userID string) ([]*models.Planned, error)
	UpdatePlanned(ctx context.Context, planned *models.Planned) (*models.Planned, error)
	DeletePlanned(ctx context.Context, id string) error
	RollForward(ctx context.Context, now time.Time) (int, error)
}

// StatisticsService produces the landing dashboard summary.
type StatisticsService interface {
	LandingStatistics(ctx context.Context, userID string) (*models.LandingStatistics, error)
	BalanceTrendChart(ctx context.Context, userID string) ([]byte, error)
}

// AnalyticsService produces comparative analytics for a time window.
type AnalyticsService interface {
	CalculateAnalytics(ctx context.Context, userID string, filter models.TimeFilter) (*models.AnalyticsStatistics, error)
}
