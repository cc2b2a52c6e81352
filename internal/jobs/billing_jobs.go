package jobs

import (
	"context"
	"time"

	"gearmarket-backend/internal/logger"
)

// MarkOverdueInvoices flips SENT and PARTIAL invoices past their due date to
// OVERDUE.
func (jr *JobRunner) MarkOverdueInvoices() {
	jr.runWithRecovery("MarkOverdueInvoices", func() {
		ctx := context.Background()

		count, err := jr.store.Invoices.MarkOverdue(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to mark overdue invoices", "error", err)
			return
		}

		logger.Info("Marked overdue invoices", "count", count)
	})
}

// SendPaymentReminders emails every customer with an overdue invoice.
func (jr *JobRunner) SendPaymentReminders() {
	jr.runWithRecovery("SendPaymentReminders", func() {
		ctx := context.Background()

		invoices, err := jr.store.Invoices.ListOverdue(ctx)
		if err != nil {
			logger.Error("Failed to list overdue invoices", "error", err)
			return
		}

		sent := 0
		for _, invoice := range invoices {
			user, err := jr.store.Users.GetByID(ctx, invoice.CustomerID)
			if err != nil {
				logger.Error("Failed to load invoice customer",
					"invoice_id", invoice.ID,
					"customer_id", invoice.CustomerID,
					"error", err)
				continue
			}

			err = jr.services.Email.SendPaymentReminder(ctx, user.Email, user.Name, invoice.InvoiceNumber, invoice.Amounts.AmountDueCents)
			if err != nil {
				logger.Error("Failed to send payment reminder",
					"invoice_id", invoice.ID,
					"email", user.Email,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Payment reminders sent", "overdue_invoices", len(invoices), "sent", sent)
	})
}
