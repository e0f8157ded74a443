package account

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/models"
	"github.com/beehive/dashboard/internal/services/validation"
	"github.com/beehive/dashboard/internal/storage/bankdb"
)

func newTestService(t *testing.T) (*Service, *bankdb.Store) {
	t.Helper()
	logger := common.NewSilentLogger()
	store, err := bankdb.NewStore(logger, t.TempDir())
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	guard := validation.NewGuard(store, logger)
	return NewService(store, guard, logger), store
}

func iban(c byte) string {
	return strings.Repeat(string(c), models.IBANLength)
}

func TestCreateAccount(t *testing.T) {
	svc, _ := newTestService(t)

	acc, err := svc.CreateAccount(context.Background(), &models.Account{
		UserID:  "user-1",
		Name:    "Checking",
		IBAN:    iban('A'),
		Balance: 500,
		Type:    models.AccountCurrent,
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if acc.ID == "" {
		t.Error("account id not assigned")
	}

	got, err := svc.GetAccount(context.Background(), acc.ID)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if got.Balance != 500 {
		t.Errorf("balance = %v, want 500", got.Balance)
	}
}

func TestCreateAccountDuplicateIBAN(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, &models.Account{
		UserID: "user-1", Name: "First", IBAN: iban('A'), Type: models.AccountCurrent,
	}); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	_, err := svc.CreateAccount(ctx, &models.Account{
		UserID: "user-2", Name: "Second", IBAN: iban('A'), Type: models.AccountSavings,
	})
	if !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCreateAccountInvalidInput(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateAccount(context.Background(), &models.Account{
		UserID: "user-1", Name: "Bad", IBAN: "short", Type: models.AccountCurrent,
	})
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateAccountResolvesUserFromContext(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := common.WithUserContext(context.Background(), &common.UserContext{UserID: "ctx-user"})

	acc, err := svc.CreateAccount(ctx, &models.Account{
		Name: "Checking", IBAN: iban('A'), Type: models.AccountCurrent,
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if acc.UserID != "ctx-user" {
		t.Errorf("user id = %q, want ctx-user", acc.UserID)
	}
}

func TestUpdateAccountKeepsBalance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	acc, err := svc.CreateAccount(ctx, &models.Account{
		UserID: "user-1", Name: "Checking", IBAN: iban('A'), Balance: 750, Type: models.AccountCurrent,
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	updated, err := svc.UpdateAccount(ctx, &models.Account{
		ID: acc.ID, UserID: "user-1", Name: "Renamed", IBAN: iban('B'),
		Balance: 999999, Type: models.AccountSavings, Priority: 3,
	})
	if err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	if updated.Name != "Renamed" || updated.IBAN != iban('B') || updated.Priority != 3 {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Balance != 750 {
		t.Errorf("balance overwritten by update: %v", updated.Balance)
	}
}

func TestUpdateAccountIBANConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateAccount(ctx, &models.Account{
		UserID: "user-1", Name: "First", IBAN: iban('A'), Type: models.AccountCurrent,
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if _, err := svc.CreateAccount(ctx, &models.Account{
		UserID: "user-1", Name: "Second", IBAN: iban('B'), Type: models.AccountCurrent,
	}); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	_, err = svc.UpdateAccount(ctx, &models.Account{
		ID: first.ID, UserID: "user-1", Name: "First", IBAN: iban('B'), Type: models.AccountCurrent,
	})
	if !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	acc, err := svc.CreateAccount(ctx, &models.Account{
		UserID: "user-1", Name: "Checking", IBAN: iban('A'), Type: models.AccountCurrent,
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	mov := &models.Movement{
		ID: uuid.NewString(), AccountID: acc.ID, Type: models.MovementExpense,
		Amount: 10, Date: time.Now(), Status: models.StatusPending,
	}
	if err := store.SaveMovement(ctx, mov); err != nil {
		t.Fatalf("SaveMovement: %v", err)
	}
	pln := &models.Planned{
		ID: uuid.NewString(), AccountID: acc.ID, Type: models.MovementExpense,
		Amount: 10, Recurrence: models.RecurrenceMonthly,
		NextExecution: time.Now().AddDate(0, 0, 7), Status: models.StatusPending,
	}
	if err := store.SavePlanned(ctx, pln); err != nil {
		t.Fatalf("SavePlanned: %v", err)
	}

	if err := svc.DeleteAccount(ctx, acc.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	if _, err := store.GetAccount(ctx, acc.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("account still present after delete")
	}
	if _, err := store.GetMovement(ctx, mov.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("movement survived account delete")
	}
	if _, err := store.GetPlanned(ctx, pln.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("planned entry survived account delete")
	}
}

func TestDeleteAccountNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.DeleteAccount(context.Background(), "missing")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
