// Package statistics produces the landing dashboard summary: aggregate
// balances, current-month totals, the 29-day balance trend and upcoming
// payments.
package statistics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/interfaces"
	"github.com/beehive/dashboard/internal/models"
)

// trendHalfWindowDays is the number of days shown on each side of today
// in the balance trend.
const trendHalfWindowDays = 14

// upcomingWindowDays bounds the upcoming payments horizon.
const upcomingWindowDays = 30

// upcomingLimit caps the number of upcoming payments returned.
const upcomingLimit = 10

// Service implements interfaces.StatisticsService.
type Service struct {
	store  interfaces.BankStore
	logger *common.Logger

	now func() time.Time
}

// NewService creates a new statistics service.
func NewService(store interfaces.BankStore, logger *common.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// LandingStatistics computes the dashboard summary for a user. A user
// with no accounts gets an all-zero result with empty lists.
func (s *Service) LandingStatistics(ctx context.Context, userID string) (*models.LandingStatistics, error) {
	accounts, err := s.store.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return &models.LandingStatistics{
			BalanceTrend:     []models.BalanceTrendPoint{},
			UpcomingPayments: []models.UpcomingPayment{},
		}, nil
	}

	totalBalance := 0.0
	for _, a := range accounts {
		totalBalance += a.Balance
	}

	today := dateOnly(s.now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	trendStart := today.AddDate(0, 0, -trendHalfWindowDays)
	trendEnd := endOfDay(today.AddDate(0, 0, trendHalfWindowDays))

	var (
		monthMovements  []*models.Movement
		monthPlanned    []*models.Planned
		trendMovements  []*models.Movement
		trendPlanned    []*models.Planned
		upcomingPlanned []*models.Planned
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		monthMovements, err = s.store.ListMovementsForUserInRange(gctx, userID, monthStart, monthEnd)
		return err
	})
	g.Go(func() error {
		var err error
		monthPlanned, err = s.store.ListPlannedForUserInRange(gctx, userID, monthStart, monthEnd)
		return err
	})
	g.Go(func() error {
		var err error
		trendMovements, err = s.store.ListMovementsForUserInRange(gctx, userID, trendStart, trendEnd)
		return err
	})
	g.Go(func() error {
		var err error
		trendPlanned, err = s.store.ListPlannedForUserInRange(gctx, userID, trendStart, trendEnd)
		return err
	})
	g.Go(func() error {
		var err error
		upcomingPlanned, err = s.store.ListPlannedForUserInRange(gctx, userID, today, endOfDay(today.AddDate(0, 0, upcomingWindowDays)))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	income, expenses := 0.0, 0.0
	for _, m := range monthMovements {
		if m.Status != models.StatusConfirmed {
			continue
		}
		switch m.Type {
		case models.MovementIncome:
			income += m.Amount
		case models.MovementExpense:
			expenses += m.Amount
		}
	}

	expectedImpact := s.expectedImpact(monthMovements, monthPlanned, today)
	trend := s.balanceTrend(totalBalance, trendMovements, trendPlanned, today)
	upcoming := s.upcomingPayments(upcomingPlanned, today)

	s.logger.Debug().
		Str("user_id", userID).
		Float64("balance", totalBalance).
		Float64("income", income).
		Float64("expenses", expenses).
		Msg("Landing statistics calculated")

	return &models.LandingStatistics{
		Balance:          totalBalance,
		Income:           income,
		Expenses:         expenses,
		ExpectedImpact:   expectedImpact,
		AccountCount:     len(accounts),
		BalanceTrend:     trend,
		UpcomingPayments: upcoming,
	}, nil
}

// expectedImpact is the signed sum of active planned entries in the
// month window plus the signed sum of active movements dated strictly
// after today through month end.
func (s *Service) expectedImpact(monthMovements []*models.Movement, monthPlanned []*models.Planned, today time.Time) float64 {
	impact := 0.0
	for _, p := range monthPlanned {
		if !p.Status.IsActive() {
			continue
		}
		impact += signedAmount(p.Amount, p.Type)
	}
	for _, m := range monthMovements {
		if !m.Status.IsActive() {
			continue
		}
		if !dateOnly(m.Date).After(today) {
			continue
		}
		impact += signedAmount(m.Amount, m.Type)
	}
	return impact
}

// balanceTrend builds the 29-day series around today. Past values are
// reconstructed by undoing confirmed movements between the day and
// today; future values project confirmed movements and active planned
// entries forward from the current balance.
func (s *Service) balanceTrend(currentBalance float64, movements []*models.Movement, planned []*models.Planned, today time.Time) []models.BalanceTrendPoint {
	confirmed := make([]*models.Movement, 0, len(movements))
	for _, m := range movements {
		if m.Status == models.StatusConfirmed {
			confirmed = append(confirmed, m)
		}
	}
	active := make([]*models.Planned, 0, len(planned))
	for _, p := range planned {
		if p.Status.IsActive() {
			active = append(active, p)
		}
	}

	trend := make([]models.BalanceTrendPoint, 0, 2*trendHalfWindowDays+1)
	for offset := -trendHalfWindowDays; offset <= trendHalfWindowDays; offset++ {
		date := today.AddDate(0, 0, offset)
		isToday := offset == 0
		isFuture := offset > 0

		value := currentBalance
		switch {
		case offset < 0:
			// Undo everything that happened after this day, up to and
			// including today.
			for _, m := range confirmed {
				d := dateOnly(m.Date)
				if d.After(date) && !d.After(today) {
					value -= signedAmount(m.Amount, m.Type)
				}
			}
		case isFuture:
			for _, m := range confirmed {
				d := dateOnly(m.Date)
				if d.After(today) && !d.After(date) {
					value += signedAmount(m.Amount, m.Type)
				}
			}
			for _, p := range active {
				d := dateOnly(p.NextExecution)
				if d.After(today) && !d.After(date) {
					value += signedAmount(p.Amount, p.Type)
				}
			}
		}

		point := models.BalanceTrendPoint{
			Date:     date.Format("Jan 2"),
			FullDate: date.Format("2006-01-02"),
			IsToday:  isToday,
			IsFuture: isFuture,
		}
		v := value
		if offset < 0 {
			point.Actual = &v
		} else {
			point.Projected = &v
		}
		trend = append(trend, point)
	}
	return trend
}

// upcomingPayments returns active planned entries due strictly after
// today within the next 30 days, soonest first, capped at 10.
func (s *Service) upcomingPayments(planned []*models.Planned, today time.Time) []models.UpcomingPayment {
	payments := make([]models.UpcomingPayment, 0, upcomingLimit)
	for _, p := range planned {
		if !p.Status.IsActive() {
			continue
		}
		if !dateOnly(p.NextExecution).After(today) {
			continue
		}
		category := string(models.CategoryOther)
		if p.Category != "" {
			category = string(p.Category)
		}
		payments = append(payments, models.UpcomingPayment{
			ID:          p.ID,
			Description: p.Description,
			Amount:      p.Amount,
			Type:        string(p.Type),
			Date:        p.NextExecution.Format("2006-01-02"),
			Category:    category,
		})
		if len(payments) == upcomingLimit {
			break
		}
	}
	return payments
}

func signedAmount(amount float64, movementType models.MovementType) float64 {
	if movementType == models.MovementIncome {
		return amount
	}
	return -amount
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

var _ interfaces.StatisticsService = (*Service)(nil)
