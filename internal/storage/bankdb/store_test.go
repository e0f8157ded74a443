package bankdb

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := common.NewSilentLogger()
	store, err := NewStore(logger, t.TempDir())
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testAccount(userID string) *models.Account {
	return &models.Account{
		ID:      uuid.NewString(),
		UserID:  userID,
		Name:    "Checking",
		IBAN:    strings.Repeat("A", models.IBANLength),
		Balance: 1000,
		Type:    models.AccountCurrent,
	}
}

func TestAccountRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	acc := testAccount("user-1")
	if err := store.SaveAccount(ctx, acc); err != nil {
		t.Fatalf("SaveAccount: %v", err)
	}

	got, err := store.GetAccount(ctx, acc.ID)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if got.Name != acc.Name || got.Balance != acc.Balance || got.UserID != acc.UserID {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps not set on save")
	}
}

func TestGetAccountNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetAccount(context.Background(), "missing")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetAccountByIBAN(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	acc := testAccount("user-1")
	if err := store.SaveAccount(ctx, acc); err != nil {
		t.Fatalf("SaveAccount: %v", err)
	}

	got, err := store.GetAccountByIBAN(ctx, acc.IBAN)
	if err != nil {
		t.Fatalf("GetAccountByIBAN: %v", err)
	}
	if got.ID != acc.ID {
		t.Errorf("got account %s, want %s", got.ID, acc.ID)
	}

	if _, err := store.GetAccountByIBAN(ctx, strings.Repeat("Z", models.IBANLength)); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown IBAN, got %v", err)
	}
}

func TestListAccountsByUserOrdersByPriority(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testAccount("user-1")
	first.Name = "Savings"
	first.IBAN = strings.Repeat("B", models.IBANLength)
	first.Priority = 2
	second := testAccount("user-1")
	second.Priority = 1
	other := testAccount("user-2")
	other.IBAN = strings.Repeat("C", models.IBANLength)

	for _, a := range []*models.Account{first, second, other} {
		if err := store.SaveAccount(ctx, a); err != nil {
			t.Fatalf("SaveAccount: %v", err)
		}
	}

	accounts, err := store.ListAccountsByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListAccountsByUser: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].ID != second.ID {
		t.Errorf("expected priority 1 account first, got %s", accounts[0].Name)
	}
}

func TestSaveAccountPreservesCreatedAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	acc := testAccount("user-1")
	if err := store.SaveAccount(ctx, acc); err != nil {
		t.Fatalf("SaveAccount: %v", err)
	}
	created := acc.CreatedAt

	time.Sleep(10 * time.Millisecond)
	acc.Balance = 900
	if err := store.SaveAccount(ctx, acc); err != nil {
		t.Fatalf("SaveAccount update: %v", err)
	}

	got, err := store.GetAccount(ctx, acc.ID)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed on update: %v -> %v", created, got.CreatedAt)
	}
	if !got.UpdatedAt.After(created) {
		t.Errorf("UpdatedAt not advanced: %v", got.UpdatedAt)
	}
}

func TestMovementRangeQueries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	acc := testAccount("user-1")
	if err := store.SaveAccount(ctx, acc); err != nil {
		t.Fatalf("SaveAccount: %v", err)
	}

	base := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	dates := []time.Time{
		base.AddDate(0, 0, -10),
		base.AddDate(0, 0, -2),
		base,
		base.AddDate(0, 0, 5),
	}
	for i, d := range dates {
		m := &models.Movement{
			ID:        uuid.NewString(),
			AccountID: acc.ID,
			Category:  models.CategoryGroceries,
			Type:      models.MovementExpense,
			Amount:    float64(10 * (i + 1)),
			Date:      d,
			Status:    models.StatusConfirmed,
		}
		if err := store.SaveMovement(ctx, m); err != nil {
			t.Fatalf("SaveMovement: %v", err)
		}
	}

	inRange, err := store.ListMovementsByAccountInRange(ctx, acc.ID, base.AddDate(0, 0, -5), base)
	if err != nil {
		t.Fatalf("ListMovementsByAccountInRange: %v", err)
	}
	if len(inRange) != 2 {
		t.Fatalf("expected 2 movements in range, got %d", len(inRange))
	}
	if inRange[0].Date.Before(inRange[1].Date) {
		t.Error("movements not sorted by date descending")
	}

	forUser, err := store.ListMovementsForUserInRange(ctx, "user-1", base.AddDate(0, 0, -30), base.AddDate(0, 0, 30))
	if err != nil {
		t.Fatalf("ListMovementsForUserInRange: %v", err)
	}
	if len(forUser) != 4 {
		t.Fatalf("expected 4 movements for user, got %d", len(forUser))
	}

	empty, err := store.ListMovementsForUserInRange(ctx, "nobody", base.AddDate(0, 0, -30), base)
	if err != nil {
		t.Fatalf("ListMovementsForUserInRange (no accounts): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no movements for unknown user, got %d", len(empty))
	}
}

func TestPlannedQueries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	acc := testAccount("user-1")
	if err := store.SaveAccount(ctx, acc); err != nil {
		t.Fatalf("SaveAccount: %v", err)
	}

	base := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	for i, offset := range []int{2, 10, 40} {
		p := &models.Planned{
			ID:            uuid.NewString(),
			AccountID:     acc.ID,
			Category:      models.CategoryRent,
			Type:          models.MovementExpense,
			Amount:        float64(100 * (i + 1)),
			Recurrence:    models.RecurrenceMonthly,
			NextExecution: base.AddDate(0, 0, offset),
			Status:        models.StatusPending,
		}
		if err := store.SavePlanned(ctx, p); err != nil {
			t.Fatalf("SavePlanned: %v", err)
		}
	}

	inRange, err := store.ListPlannedForUserInRange(ctx, "user-1", base, base.AddDate(0, 0, 30))
	if err != nil {
		t.Fatalf("ListPlannedForUserInRange: %v", err)
	}
	if len(inRange) != 2 {
		t.Fatalf("expected 2 planned entries in range, got %d", len(inRange))
	}
	if !inRange[0].NextExecution.Before(inRange[1].NextExecution) {
		t.Error("planned entries not sorted by next execution ascending")
	}

	due, err := store.ListPlannedDueBefore(ctx, base.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("ListPlannedDueBefore: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("expected 1 due planned entry, got %d", len(due))
	}
}

func TestDeleteMovementNotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.DeleteMovement(context.Background(), "missing")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
