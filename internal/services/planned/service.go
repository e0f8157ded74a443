// Package planned manages planned (anticipated) entries. Planned
// entries never mutate account balances; projection logic consumes them.
package planned

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/interfaces"
	"github.com/beehive/dashboard/internal/models"
)

// Service implements interfaces.PlannedService.
type Service struct {
	store  interfaces.BankStore
	guard  interfaces.ValidationGuard
	logger *common.Logger
}

// NewService creates a new planned service.
func NewService(store interfaces.BankStore, guard interfaces.ValidationGuard, logger *common.Logger) *Service {
	return &Service{store: store, guard: guard, logger: logger}
}

// CreatePlanned validates and persists a new planned entry.
func (s *Service) CreatePlanned(ctx context.Context, planned *models.Planned) (*models.Planned, error) {
	if err := planned.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.guard.AccountExists(ctx, planned.AccountID); err != nil {
		return nil, err
	}

	if planned.ID == "" {
		planned.ID = uuid.NewString()
	}
	if err := s.store.SavePlanned(ctx, planned); err != nil {
		return nil, fmt.Errorf("failed to create planned entry: %w", err)
	}

	s.logger.Info().
		Str("planned_id", planned.ID).
		Str("account_id", planned.AccountID).
		Str("recurrence", string(planned.Recurrence)).
		Msg("Planned entry created")
	return planned, nil
}

// GetPlanned returns the planned entry with the given id.
func (s *Service) GetPlanned(ctx context.Context, id string) (*models.Planned, error) {
	return s.store.GetPlanned(ctx, id)
}

// ListPlanned returns the account's planned entries ordered by next
// execution date.
func (s *Service) ListPlanned(ctx context.Context, accountID string) ([]*models.Planned, error) {
	if _, err := s.guard.AccountExists(ctx, accountID); err != nil {
		return nil, err
	}
	return s.store.ListPlannedByAccount(ctx, accountID)
}

// ListPlannedForUser returns every planned entry across the user's
// accounts.
func (s *Service) ListPlannedForUser(ctx context.Context, userID string) ([]*models.Planned, error) {
	return s.store.ListPlannedForUser(ctx, userID)
}

// UpdatePlanned edits an existing planned entry. The owning account
// cannot change.
func (s *Service) UpdatePlanned(ctx context.Context, details *models.Planned) (*models.Planned, error) {
	existing, err := s.store.GetPlanned(ctx, details.ID)
	if err != nil {
		return nil, err
	}

	details.AccountID = existing.AccountID
	if err := details.Validate(); err != nil {
		return nil, err
	}

	existing.Category = details.Category
	existing.Type = details.Type
	existing.Amount = details.Amount
	existing.Description = details.Description
	existing.Recurrence = details.Recurrence
	existing.Schedule = details.Schedule
	existing.NextExecution = details.NextExecution
	existing.EndDate = details.EndDate
	existing.Status = details.Status
	if err := s.store.SavePlanned(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update planned entry: %w", err)
	}

	s.logger.Info().Str("planned_id", existing.ID).Msg("Planned entry updated")
	return existing, nil
}

// DeletePlanned removes a planned entry.
func (s *Service) DeletePlanned(ctx context.Context, id string) error {
	if _, err := s.store.GetPlanned(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeletePlanned(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("planned_id", id).Msg("Planned entry deleted")
	return nil
}

// RollForward advances overdue active entries to their next occurrence
// and cancels entries that have passed their end date. It returns the
// number of entries changed. Balances are never touched here.
func (s *Service) RollForward(ctx context.Context, now time.Time) (int, error) {
	due, err := s.store.ListPlannedDueBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, p := range due {
		if !p.Status.IsActive() {
			continue
		}

		next, ok := nextOccurrence(p, now)
		if !ok {
			// No automatic advance for this entry; leave it for the
			// user to reschedule.
			continue
		}

		if p.EndDate != nil && next.After(*p.EndDate) {
			p.Status = models.StatusCancelled
		} else {
			p.NextExecution = next
		}
		if err := s.store.SavePlanned(ctx, p); err != nil {
			return changed, fmt.Errorf("failed to roll planned '%s': %w", p.ID, err)
		}
		changed++
	}

	if changed > 0 {
		s.logger.Info().Int("count", changed).Msg("Planned entries rolled forward")
	}
	return changed, nil
}

// nextOccurrence computes the first occurrence strictly after now.
// CUSTOM entries carry a free-form schedule expression and are not
// advanced automatically.
func nextOccurrence(p *models.Planned, now time.Time) (time.Time, bool) {
	next := p.NextExecution
	for !next.After(now) {
		switch p.Recurrence {
		case models.RecurrenceDaily:
			next = next.AddDate(0, 0, 1)
		case models.RecurrenceWeekly:
			next = next.AddDate(0, 0, 7)
		case models.RecurrenceMonthly:
			next = next.AddDate(0, 1, 0)
		default:
			return time.Time{}, false
		}
	}
	return next, true
}

var _ interfaces.PlannedService = (*Service)(nil)
