package app

import (
	"context"
	"time"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/interfaces"
)

// startPlannedScheduler periodically rolls overdue planned entries
// forward to their next occurrence. It never touches balances.
func startPlannedScheduler(ctx context.Context, plannedService interfaces.PlannedService, logger *common.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info().Dur("interval", interval).Msg("Planned scheduler: started")
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Planned scheduler: stopped")
			return
		case <-ticker.C:
			rollPlanned(ctx, plannedService, logger)
		}
	}
}

func rollPlanned(ctx context.Context, plannedService interfaces.PlannedService, logger *common.Logger) {
	start := time.Now()
	changed, err := plannedService.RollForward(ctx, time.Now())
	if err != nil {
		logger.Warn().Err(err).Msg("Planned scheduler: roll forward failed")
		return
	}
	if changed > 0 {
		logger.Info().
			Int("changed", changed).
			Dur("duration", time.Since(start)).
			Msg("Planned scheduler: entries rolled forward")
	}
}
