// Package balance keeps account balances consistent with the CONFIRMED
// movements applied to them. Every mutation is serialized per account
// and persisted as a single write, so a failed step never leaves a
// partial balance behind.
package balance

import (
	"context"
	"fmt"
	"sync"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/interfaces"
	"github.com/beehive/dashboard/internal/models"
)

// Engine implements interfaces.BalanceEngine.
type Engine struct {
	store  interfaces.BankStore
	logger *common.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewEngine creates a new balance engine.
func NewEngine(store interfaces.BankStore, logger *common.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// lockAccount returns the mutex guarding the given account, creating it
// on first use. Balance mutations are read-modify-write on the stored
// balance, so concurrent mutations on the same account must serialize.
func (e *Engine) lockAccount(accountID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[accountID] = lock
	}
	return lock
}

// Apply records the effect of a confirmed movement on the account
// balance. An EXPENSE larger than the balance fails with
// ErrInsufficientFunds and leaves the balance unchanged.
func (e *Engine) Apply(ctx context.Context, accountID string, amount float64, movementType models.MovementType) (*models.Account, error) {
	lock := e.lockAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	account, err := e.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := applyEffect(account, amount, movementType); err != nil {
		return nil, err
	}
	if err := e.store.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to persist balance: %w", err)
	}

	e.logger.Debug().
		Str("account_id", accountID).
		Str("type", string(movementType)).
		Float64("amount", amount).
		Float64("balance", account.Balance).
		Msg("Movement applied to balance")
	return account, nil
}

// Reverse undoes the effect of a previously applied movement. Reversing
// an INCOME larger than the balance fails with ErrInsufficientFunds.
func (e *Engine) Reverse(ctx context.Context, accountID string, amount float64, movementType models.MovementType) (*models.Account, error) {
	lock := e.lockAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	account, err := e.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := reverseEffect(account, amount, movementType); err != nil {
		return nil, err
	}
	if err := e.store.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to persist balance: %w", err)
	}

	e.logger.Debug().
		Str("account_id", accountID).
		Str("type", string(movementType)).
		Float64("amount", amount).
		Float64("balance", account.Balance).
		Msg("Movement reversed from balance")
	return account, nil
}

// UpdateTransaction reverses the old movement effect and applies the
// new one. Both steps run against one in-memory snapshot and persist in
// a single write: if either step fails nothing is saved.
func (e *Engine) UpdateTransaction(ctx context.Context, accountID string, oldAmount float64, oldType models.MovementType, newAmount float64, newType models.MovementType) (*models.Account, error) {
	lock := e.lockAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	account, err := e.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := reverseEffect(account, oldAmount, oldType); err != nil {
		return nil, err
	}
	if err := applyEffect(account, newAmount, newType); err != nil {
		return nil, err
	}
	if err := e.store.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to persist balance: %w", err)
	}

	e.logger.Debug().
		Str("account_id", accountID).
		Float64("balance", account.Balance).
		Msg("Movement update applied to balance")
	return account, nil
}

func applyEffect(account *models.Account, amount float64, movementType models.MovementType) error {
	switch movementType {
	case models.MovementIncome:
		account.Balance += amount
	case models.MovementExpense:
		if account.Balance < amount {
			return fmt.Errorf("cannot apply expense of %.2f to balance %.2f: %w", amount, account.Balance, models.ErrInsufficientFunds)
		}
		account.Balance -= amount
	default:
		return fmt.Errorf("%w: unknown movement type %q", models.ErrInvalidInput, movementType)
	}
	return nil
}

func reverseEffect(account *models.Account, amount float64, movementType models.MovementType) error {
	switch movementType {
	case models.MovementIncome:
		if account.Balance < amount {
			return fmt.Errorf("cannot reverse income of %.2f from balance %.2f: %w", amount, account.Balance, models.ErrInsufficientFunds)
		}
		account.Balance -= amount
	case models.MovementExpense:
		account.Balance += amount
	default:
		return fmt.Errorf("%w: unknown movement type %q", models.ErrInvalidInput, movementType)
	}
	return nil
}

var _ interfaces.BalanceEngine = (*Engine)(nil)
