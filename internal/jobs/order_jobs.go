package jobs

import (
	"context"
	"time"

	"gearmarket-backend/internal/logger"
)

// ExpireStalePendingOrders cancels orders that have been sitting in PENDING
// longer than the configured window and releases their held stock.
func (jr *JobRunner) ExpireStalePendingOrders() {
	jr.runWithRecovery("ExpireStalePendingOrders", func() {
		ctx := context.Background()

		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Billing.StaleOrderDays)
		expired, err := jr.services.Order.ExpireStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to expire stale pending orders", "error", err)
			return
		}

		logger.Info("Expired stale pending orders", "count", expired, "cutoff", cutoff)
	})
}
