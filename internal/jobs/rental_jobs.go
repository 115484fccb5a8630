package jobs

import (
	"context"

	"rentledger/internal/domain"
	"rentledger/internal/logger"
)

// SendOverdueReminders appends a reminder event for every ACTIVE rental
// past its agreed end time. Lateness never moves a rental's status on
// its own; only the return handshake settles, with the penalty computed
// from the actual return time.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()
		now := jr.clock.Now().Unix()

		overdue, err := jr.store.Rentals().ListOverdue(ctx, now)
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		count := 0
		for _, rental := range overdue {
			event := &domain.Event{
				Type:     domain.EventOverdueReminder,
				AssetID:  rental.AssetID,
				RentalID: rental.ID,
				Status:   rental.Status,
			}
			if err := jr.store.Events().Append(ctx, event); err != nil {
				logger.Error("Failed to append overdue reminder",
					"rental_id", rental.ID, "error", err)
				continue
			}
			count++
			logger.Debug("Sent overdue reminder",
				"rental_id", rental.ID,
				"asset_id", rental.AssetID,
				"borrower_id", rental.BorrowerID,
				"end_time", rental.EndTime)
		}

		logger.Info("Overdue reminders sent", "count", count)
	})
}
