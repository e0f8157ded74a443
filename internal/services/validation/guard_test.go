package validation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/models"
	"github.com/beehive/dashboard/internal/storage/bankdb"
)

func newTestGuard(t *testing.T) (*Guard, *bankdb.Store) {
	t.Helper()
	logger := common.NewSilentLogger()
	store, err := bankdb.NewStore(logger, t.TempDir())
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewGuard(store, logger), store
}

func seedAccount(t *testing.T, store *bankdb.Store, iban string) *models.Account {
	t.Helper()
	acc := &models.Account{
		ID:      uuid.NewString(),
		UserID:  "user-1",
		Name:    "Checking",
		IBAN:    iban,
		Balance: 100,
		Type:    models.AccountCurrent,
	}
	if err := store.SaveAccount(context.Background(), acc); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	return acc
}

func TestAccountExists(t *testing.T) {
	guard, store := newTestGuard(t)
	acc := seedAccount(t, store, strings.Repeat("A", models.IBANLength))

	got, err := guard.AccountExists(context.Background(), acc.ID)
	if err != nil {
		t.Fatalf("AccountExists: %v", err)
	}
	if got.ID != acc.ID {
		t.Errorf("got account %s, want %s", got.ID, acc.ID)
	}

	_, err = guard.AccountExists(context.Background(), "missing")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIBANUnique(t *testing.T) {
	guard, store := newTestGuard(t)
	taken := strings.Repeat("A", models.IBANLength)
	free := strings.Repeat("B", models.IBANLength)
	seedAccount(t, store, taken)

	if err := guard.IBANUnique(context.Background(), free); err != nil {
		t.Errorf("unused IBAN rejected: %v", err)
	}
	if err := guard.IBANUnique(context.Background(), taken); !errors.Is(err, models.ErrConflict) {
		t.Errorf("expected ErrConflict for taken IBAN, got %v", err)
	}
}

func TestIBANUniqueForUpdate(t *testing.T) {
	guard, store := newTestGuard(t)
	mine := strings.Repeat("A", models.IBANLength)
	theirs := strings.Repeat("B", models.IBANLength)
	free := strings.Repeat("C", models.IBANLength)
	acc := seedAccount(t, store, mine)
	other := &models.Account{
		ID:      uuid.NewString(),
		UserID:  "user-2",
		Name:    "Other",
		IBAN:    theirs,
		Balance: 0,
		Type:    models.AccountSavings,
	}
	if err := store.SaveAccount(context.Background(), other); err != nil {
		t.Fatalf("failed to seed other account: %v", err)
	}

	ctx := context.Background()
	if err := guard.IBANUniqueForUpdate(ctx, acc.ID, mine, mine); err != nil {
		t.Errorf("unchanged IBAN rejected: %v", err)
	}
	if err := guard.IBANUniqueForUpdate(ctx, acc.ID, free, mine); err != nil {
		t.Errorf("free IBAN rejected: %v", err)
	}
	if err := guard.IBANUniqueForUpdate(ctx, acc.ID, theirs, mine); !errors.Is(err, models.ErrConflict) {
		t.Errorf("expected ErrConflict for another account's IBAN, got %v", err)
	}
}
