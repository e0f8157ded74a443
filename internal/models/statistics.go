package models

// TimeFilter selects the analytics window granularity.
type TimeFilter string

const (
	FilterDay   TimeFilter = "day"
	FilterWeek  TimeFilter = "week"
	FilterMonth TimeFilter = "month"
	FilterYear  TimeFilter = "year"
)

// Valid reports whether the time filter is one of the known values.
func (f TimeFilter) Valid() bool {
	switch f {
	case FilterDay, FilterWeek, FilterMonth, FilterYear:
		return true
	}
	return false
}

// BalanceTrendPoint is one day in the 29-day balance trend. Actual is
// set only for past days; Projected only for today and future days.
type BalanceTrendPoint struct {
	Date      string   `json:"date"`     // short label, e.g. "Jun 5"
	FullDate  string   `json:"fullDate"` // ISO date, e.g. "2026-06-05"
	Actual    *float64 `json:"actual"`
	Projected *float64 `json:"projected"`
	IsToday   bool     `json:"isToday"`
	IsFuture  bool     `json:"isFuture"`
}

// UpcomingPayment is a planned entry due within the next 30 days.
type UpcomingPayment struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Date        string  `json:"date"` // ISO date of next execution
	Category    string  `json:"category"`
}

// LandingStatistics is the dashboard landing summary for a user.
type LandingStatistics struct {
	Balance          float64             `json:"balance"`
	Income           float64             `json:"income"`
	Expenses         float64             `json:"expenses"`
	ExpectedImpact   float64             `json:"expectedImpact"`
	AccountCount     int                 `json:"accountCount"`
	BalanceTrend     []BalanceTrendPoint `json:"balanceTrend"`
	UpcomingPayments []UpcomingPayment   `json:"upcomingPayments"`
}

// ChartDataPoint is one bucket in an analytics chart series.
type ChartDataPoint struct {
	Label   string  `json:"label"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// CategoryBreakdown is one entry in the expense-by-category ranking.
type CategoryBreakdown struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage int     `json:"percentage"`
}

// AnalyticsStatistics is the comparative analytics result for a window.
type AnalyticsStatistics struct {
	TotalIncome       float64             `json:"totalIncome"`
	TotalExpenses     float64             `json:"totalExpenses"`
	NetBalance        float64             `json:"netBalance"`
	IncomeChange      float64             `json:"incomeChange"`
	ExpenseChange     float64             `json:"expenseChange"`
	ChartData         []ChartDataPoint    `json:"chartData"`
	CategoryBreakdown []CategoryBreakdown `json:"categoryBreakdown"`
}
