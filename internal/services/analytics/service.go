// Package analytics derives filtered, comparative analytics for a time
// window: current vs previous period totals, chart series and the
// expense category breakdown.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/interfaces"
	"github.com/beehive/dashboard/internal/models"
)

// breakdownLimit caps the number of category breakdown entries.
const breakdownLimit = 6

// Service implements interfaces.AnalyticsService.
type Service struct {
	store  interfaces.BankStore
	logger *common.Logger

	now func() time.Time
}

// NewService creates a new analytics service.
func NewService(store interfaces.BankStore, logger *common.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// dateRange is an inclusive day range.
type dateRange struct {
	start time.Time
	end   time.Time
}

// CalculateAnalytics computes comparative analytics for the filter
// window. Only CONFIRMED movements outside the TRANSFER category count.
func (s *Service) CalculateAnalytics(ctx context.Context, userID string, filter models.TimeFilter) (*models.AnalyticsStatistics, error) {
	if !filter.Valid() {
		return nil, fmt.Errorf("%w: unknown time filter %q", models.ErrInvalidInput, filter)
	}

	today := dateOnly(s.now())
	current := rangeForFilter(filter, today)
	previous := previousRange(filter, current)

	var currentMovements, previousMovements []*models.Movement
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		currentMovements, err = s.store.ListMovementsForUserInRange(gctx, userID, current.start, endOfDay(current.end))
		return err
	})
	g.Go(func() error {
		var err error
		previousMovements, err = s.store.ListMovementsForUserInRange(gctx, userID, previous.start, endOfDay(previous.end))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	currentMovements = countable(currentMovements)
	previousMovements = countable(previousMovements)

	totalIncome, totalExpenses := sumByType(currentMovements)
	prevIncome, prevExpenses := sumByType(previousMovements)

	stats := &models.AnalyticsStatistics{
		TotalIncome:       totalIncome,
		TotalExpenses:     totalExpenses,
		NetBalance:        totalIncome - totalExpenses,
		IncomeChange:      percentageChange(prevIncome, totalIncome),
		ExpenseChange:     percentageChange(prevExpenses, totalExpenses),
		ChartData:         buildChartData(filter, current, currentMovements),
		CategoryBreakdown: buildCategoryBreakdown(currentMovements),
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("filter", string(filter)).
		Float64("income", totalIncome).
		Float64("expenses", totalExpenses).
		Msg("Analytics calculated")
	return stats, nil
}

// countable keeps only CONFIRMED movements outside TRANSFER.
func countable(movements []*models.Movement) []*models.Movement {
	out := make([]*models.Movement, 0, len(movements))
	for _, m := range movements {
		if m.Status != models.StatusConfirmed {
			continue
		}
		if m.Category == models.CategoryTransfer {
			continue
		}
		out = append(out, m)
	}
	return out
}

func sumByType(movements []*models.Movement) (income, expenses float64) {
	for _, m := range movements {
		switch m.Type {
		case models.MovementIncome:
			income += m.Amount
		case models.MovementExpense:
			expenses += math.Abs(m.Amount)
		}
	}
	return income, expenses
}

// percentageChange is ((new-old)/old)*100 rounded to one decimal. A
// zero baseline yields 100.0 when the new value is positive, else 0.0.
func percentageChange(old, current float64) float64 {
	if old == 0 {
		if current > 0 {
			return 100.0
		}
		return 0.0
	}
	return math.Round((current-old)/old*1000) / 10
}

// rangeForFilter computes the current window: the day itself, the
// Monday-to-Sunday week, the calendar month or the calendar year
// containing today.
func rangeForFilter(filter models.TimeFilter, today time.Time) dateRange {
	switch filter {
	case models.FilterDay:
		return dateRange{start: today, end: today}
	case models.FilterWeek:
		// Monday start; Go's Sunday is weekday 0.
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return dateRange{start: start, end: start.AddDate(0, 0, 6)}
	case models.FilterMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return dateRange{start: start, end: start.AddDate(0, 1, -1)}
	default: // year
		start := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location())
		return dateRange{start: start, end: time.Date(today.Year(), 12, 31, 0, 0, 0, 0, today.Location())}
	}
}

// previousRange computes the immediately preceding equivalent period.
func previousRange(filter models.TimeFilter, current dateRange) dateRange {
	switch filter {
	case models.FilterDay:
		prev := current.start.AddDate(0, 0, -1)
		return dateRange{start: prev, end: prev}
	case models.FilterWeek:
		return dateRange{start: current.start.AddDate(0, 0, -7), end: current.end.AddDate(0, 0, -7)}
	case models.FilterMonth:
		start := current.start.AddDate(0, -1, 0)
		return dateRange{start: start, end: start.AddDate(0, 1, -1)}
	default: // year
		start := current.start.AddDate(-1, 0, 0)
		return dateRange{start: start, end: time.Date(start.Year(), 12, 31, 0, 0, 0, 0, start.Location())}
	}
}

func buildChartData(filter models.TimeFilter, current dateRange, movements []*models.Movement) []models.ChartDataPoint {
	switch filter {
	case models.FilterDay:
		return dayChart(current.start, movements)
	case models.FilterWeek:
		return weekChart(current, movements)
	case models.FilterMonth:
		return monthChart(current, movements)
	default:
		return yearChart(current, movements)
	}
}

// dayChart buckets the day into five fixed 6-hour slots. The final
// "24h" slot starts at midnight of the next day and stays empty.
func dayChart(day time.Time, movements []*models.Movement) []models.ChartDataPoint {
	labels := []string{"00h", "06h", "12h", "18h", "24h"}
	points := make([]models.ChartDataPoint, len(labels))
	for i, label := range labels {
		points[i].Label = label
	}

	for _, m := range movements {
		hour := m.Date.Hour()
		bucket := hour / 6
		if bucket > 3 {
			bucket = 3
		}
		addToPoint(&points[bucket], m)
	}
	return points
}

// weekChart produces one point per day, labeled by abbreviated weekday.
func weekChart(r dateRange, movements []*models.Movement) []models.ChartDataPoint {
	var points []models.ChartDataPoint
	for day := r.start; !day.After(r.end); day = day.AddDate(0, 0, 1) {
		point := models.ChartDataPoint{Label: day.Format("Mon")}
		for _, m := range movements {
			if dateOnly(m.Date).Equal(day) {
				addToPoint(&point, m)
			}
		}
		points = append(points, point)
	}
	return points
}

// monthChart produces successive 7-day buckets labeled "W1", "W2" and
// so on,
// with the final bucket clipped to the range end.
func monthChart(r dateRange, movements []*models.Movement) []models.ChartDataPoint {
	var points []models.ChartDataPoint
	week := 1
	for start := r.start; !start.After(r.end); start = start.AddDate(0, 0, 7) {
		end := start.AddDate(0, 0, 6)
		if end.After(r.end) {
			end = r.end
		}
		point := models.ChartDataPoint{Label: fmt.Sprintf("W%d", week)}
		for _, m := range movements {
			d := dateOnly(m.Date)
			if !d.Before(start) && !d.After(end) {
				addToPoint(&point, m)
			}
		}
		points = append(points, point)
		week++
	}
	return points
}

// yearChart produces one point per calendar month, labeled by
// abbreviated month name.
func yearChart(r dateRange, movements []*models.Movement) []models.ChartDataPoint {
	var points []models.ChartDataPoint
	for start := r.start; !start.After(r.end); start = start.AddDate(0, 1, 0) {
		end := start.AddDate(0, 1, -1)
		if end.After(r.end) {
			end = r.end
		}
		point := models.ChartDataPoint{Label: start.Format("Jan")}
		for _, m := range movements {
			d := dateOnly(m.Date)
			if !d.Before(start) && !d.After(end) {
				addToPoint(&point, m)
			}
		}
		points = append(points, point)
	}
	return points
}

func addToPoint(point *models.ChartDataPoint, m *models.Movement) {
	switch m.Type {
	case models.MovementIncome:
		point.Income += m.Amount
	case models.MovementExpense:
		point.Expense += math.Abs(m.Amount)
	}
}

// buildCategoryBreakdown ranks expense categories by absolute amount,
// keeping the top entries with integer percentage shares. An empty
// total yields an empty list.
func buildCategoryBreakdown(movements []*models.Movement) []models.CategoryBreakdown {
	sums := make(map[models.MovementCategory]float64)
	total := 0.0
	for _, m := range movements {
		if m.Type != models.MovementExpense {
			continue
		}
		amount := math.Abs(m.Amount)
		category := m.Category
		if category == "" {
			category = models.CategoryOther
		}
		sums[category] += amount
		total += amount
	}
	if total == 0 {
		return []models.CategoryBreakdown{}
	}

	breakdown := make([]models.CategoryBreakdown, 0, len(sums))
	for category, amount := range sums {
		breakdown = append(breakdown, models.CategoryBreakdown{
			Name:       category.DisplayName(),
			Category:   string(category),
			Amount:     amount,
			Percentage: int(math.Round(amount / total * 100)),
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount != breakdown[j].Amount {
			return breakdown[i].Amount > breakdown[j].Amount
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	if len(breakdown) > breakdownLimit {
		breakdown = breakdown[:breakdownLimit]
	}
	return breakdown
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

var _ interfaces.AnalyticsService = (*Service)(nil)
