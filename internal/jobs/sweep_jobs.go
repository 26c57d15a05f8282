package jobs

import (
	"context"
	"time"

	"gamerent-backend/internal/domain"
	"gamerent-backend/internal/logger"
)

// SweepResult reports how much a single sweep changed, for observability.
type SweepResult struct {
	AccountsReleased int `json:"accounts_released"`
	OrdersCompleted  int `json:"orders_completed"`
	CodesCleared     int `json:"codes_cleared"`
	WarningsSent     int `json:"warnings_sent"`
}

// RunScheduledSweep runs the four independent expiry checks. Each check is
// idempotent: a second run with no time passage finds nothing left to do.
func (jr *JobRunner) RunScheduledSweep(ctx context.Context) SweepResult {
	var result SweepResult
	now := time.Now().UTC()

	jr.runWithRecovery("FreeExpiredAccounts", func() {
		result.AccountsReleased = jr.freeExpiredAccounts(ctx, now)
	})
	jr.runWithRecovery("CompleteExpiredOrders", func() {
		result.OrdersCompleted = jr.completeExpiredOrders(ctx, now)
	})
	jr.runWithRecovery("ClearExpiredCodes", func() {
		result.CodesCleared = jr.clearExpiredCodes(ctx, now)
	})
	jr.runWithRecovery("SendExpiryWarnings", func() {
		result.WarningsSent = jr.sendExpiryWarnings(ctx, now)
	})

	logger.Info("Sweep finished",
		"accounts_released", result.AccountsReleased,
		"orders_completed", result.OrdersCompleted,
		"codes_cleared", result.CodesCleared,
		"warnings_sent", result.WarningsSent)
	return result
}

// freeExpiredAccounts releases every account whose rental window has
// passed, regardless of order state. The account row is the source of truth
// for occupancy.
func (jr *JobRunner) freeExpiredAccounts(ctx context.Context, now time.Time) int {
	ids, err := jr.store.Accounts().ReleaseExpired(ctx, now)
	if err != nil {
		logger.Error("Failed to release expired accounts", "error", err)
		return 0
	}
	for _, id := range ids {
		logger.Debug("Released expired account", "account_id", id)
	}
	return len(ids)
}

func (jr *JobRunner) completeExpiredOrders(ctx context.Context, now time.Time) int {
	orders, err := jr.store.Orders().CompleteExpired(ctx, now)
	if err != nil {
		logger.Error("Failed to complete expired orders", "error", err)
		return 0
	}

	for _, order := range orders {
		// Only a still-rented, still-expired account is freed here: check #1
		// may have released it already, an admin may have pulled it from
		// rotation, or it may carry a fresh rental by now.
		if err := jr.store.Accounts().ReleaseIfExpired(ctx, order.AccountID, now); err != nil {
			logger.Error("Failed to release account of completed order",
				"order_id", order.ID, "account_id", order.AccountID, "error", err)
		}

		if user, err := jr.store.Users().GetByID(ctx, order.UserID); err == nil {
			if err := jr.email.SendOrderCompletedNotice(ctx, user.Email, order.ID); err != nil {
				logger.Error("Failed to send order completed notice", "order_id", order.ID, "error", err)
			}
		}
		note := &domain.Notification{
			UserID:  order.UserID,
			Title:   "Rental finished",
			Message: "Your rental has ended and the order is complete. You can now leave a review.",
		}
		if err := jr.store.Notifications().Create(ctx, note); err != nil {
			logger.Error("Failed to create completion notification", "order_id", order.ID, "error", err)
		}

		logger.Debug("Completed expired order", "order_id", order.ID, "user_id", order.UserID)
	}
	return len(orders)
}

func (jr *JobRunner) clearExpiredCodes(ctx context.Context, now time.Time) int {
	cleared, err := jr.store.Users().ClearExpiredVerificationCodes(ctx, now)
	if err != nil {
		logger.Error("Failed to clear expired verification codes", "error", err)
		return 0
	}
	return int(cleared)
}

// sendExpiryWarnings mails renters whose active order ends within the
// warning window. The can_send_mail flag is claimed with a conditional
// update before the send, so the warning fires at most once per order even
// across overlapping sweeps; a failed send is logged but never retried.
func (jr *JobRunner) sendExpiryWarnings(ctx context.Context, now time.Time) int {
	orders, err := jr.store.Orders().ListExpiringSoon(ctx, now, jr.warningWindow)
	if err != nil {
		logger.Error("Failed to list expiring orders", "error", err)
		return 0
	}

	sent := 0
	for _, order := range orders {
		if err := jr.store.Orders().DisableMailWarning(ctx, order.ID); err != nil {
			// Already claimed by another sweep run.
			continue
		}
		user, err := jr.store.Users().GetByID(ctx, order.UserID)
		if err != nil {
			logger.Error("Failed to load user for expiry warning", "order_id", order.ID, "error", err)
			continue
		}
		minutesLeft := int(order.ExpiresAt.Sub(now).Minutes())
		if err := jr.email.SendExpiryWarning(ctx, user.Email, order.ID, minutesLeft); err != nil {
			logger.Error("Failed to send expiry warning", "order_id", order.ID, "error", err)
			continue
		}
		sent++
		logger.Debug("Sent expiry warning", "order_id", order.ID, "minutes_left", minutesLeft)
	}
	return sent
}
