package service

import (
	"context"
	"fmt"
	"time"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/logger"
	"gearmarket-backend/internal/repository"
)

type invoiceService struct {
	store          repository.Transactor
	invoiceRepo    repository.InvoiceRepository
	userRepo       repository.UserRepository
	emailSvc       EmailService
	invoiceDueDays int
}

func NewInvoiceService(store repository.Transactor, invoiceRepo repository.InvoiceRepository, userRepo repository.UserRepository, emailSvc EmailService, invoiceDueDays int) InvoiceService {
	return &invoiceService{
		store:          store,
		invoiceRepo:    invoiceRepo,
		userRepo:       userRepo,
		emailSvc:       emailSvc,
		invoiceDueDays: invoiceDueDays,
	}
}

// CreateForOrder issues a vendor invoice for an existing order, for
// out-of-band collection. Exactly one vendor invoice may exist per order.
func (s *invoiceService) CreateForOrder(ctx context.Context, actorID int32, role domain.UserRole, orderID int32) (*domain.Invoice, error) {
	var created *domain.Invoice
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		order, err := repos.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if role != domain.UserRoleAdmin && !(role == domain.UserRoleVendor && order.VendorID == actorID) {
			return fmt.Errorf("order %d: %w", orderID, domain.ErrForbidden)
		}

		if _, err := repos.Invoices.GetByOrder(ctx, orderID, domain.InvoiceTypeVendor); err == nil {
			return fmt.Errorf("order %d already has a vendor invoice: %w", orderID, domain.ErrValidation)
		}

		items := make([]domain.InvoiceLineItem, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, domain.InvoiceLineItem{
				ProductID:   item.ProductID,
				Description: fmt.Sprintf("Rental charge, %d day(s)", order.RentalPeriod.Duration),
				Quantity:    item.Quantity,
				UnitCents:   item.PricePerDayCents * int64(order.RentalPeriod.Duration),
				TotalCents:  item.TotalPriceCents,
			})
		}

		dueDate := time.Now().AddDate(0, 0, s.invoiceDueDays)
		created = &domain.Invoice{
			InvoiceNumber: generateNumber("INV"),
			InvoiceType:   domain.InvoiceTypeVendor,
			BatchID:       order.BatchID,
			OrderID:       order.ID,
			CustomerID:    order.CustomerID,
			VendorID:      order.VendorID,
			CompanyID:     order.CompanyID,
			Items:         items,
			Amounts: domain.InvoiceAmounts{
				SubtotalCents:        order.Pricing.SubtotalCents,
				TaxCents:             order.Pricing.TaxCents,
				DiscountCents:        order.Pricing.DiscountCents,
				SecurityDepositCents: order.Pricing.SecurityDepositCents,
				TotalCents:           order.Pricing.TotalCents,
				AmountPaidCents:      0,
				AmountDueCents:       order.Pricing.TotalCents,
			},
			Status:  domain.InvoiceStatusSent,
			DueDate: &dueDate,
		}
		return repos.Invoices.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, userID int32, role domain.UserRole, invoiceID int32) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !canViewInvoice(userID, role, invoice) {
		return nil, fmt.Errorf("invoice %d: %w", invoiceID, domain.ErrForbidden)
	}
	return invoice, nil
}

func canViewInvoice(userID int32, role domain.UserRole, invoice *domain.Invoice) bool {
	switch role {
	case domain.UserRoleAdmin:
		return true
	case domain.UserRoleVendor:
		return invoice.VendorID == userID
	default:
		return invoice.CustomerID == userID
	}
}

// ProcessPayment appends a payment and recomputes the amounts so that
// amount_due = total - amount_paid holds afterwards. Settling the invoice
// propagates the payment status to the linked order. Overpayment is
// permitted and drives amount_due negative.
func (s *invoiceService) ProcessPayment(ctx context.Context, customerID, invoiceID int32, amountCents int64, method, transactionID string) (*domain.Invoice, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("payment amount must be positive: %w", domain.ErrValidation)
	}

	var updated *domain.Invoice
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		invoice, err := repos.Invoices.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if invoice.CustomerID != customerID {
			return fmt.Errorf("invoice %d: %w", invoiceID, domain.ErrForbidden)
		}
		if invoice.Status == domain.InvoiceStatusCancelled {
			return fmt.Errorf("invoice %d is cancelled: %w", invoiceID, domain.ErrInvalidState)
		}

		now := time.Now()
		payment := &domain.Payment{
			InvoiceID:     invoice.ID,
			AmountCents:   amountCents,
			Method:        method,
			TransactionID: transactionID,
			Date:          now,
		}
		if err := repos.Invoices.AddPayment(ctx, payment); err != nil {
			return err
		}

		invoice.Amounts.AmountPaidCents += amountCents
		invoice.Amounts.AmountDueCents = invoice.Amounts.TotalCents - invoice.Amounts.AmountPaidCents

		var orderPaymentStatus domain.PaymentStatus
		if invoice.Amounts.AmountDueCents <= 0 {
			invoice.Status = domain.InvoiceStatusPaid
			invoice.PaidDate = &now
			orderPaymentStatus = domain.PaymentStatusPaid
		} else {
			invoice.Status = domain.InvoiceStatusPartial
			orderPaymentStatus = domain.PaymentStatusPartial
		}

		if err := repos.Invoices.UpdateAmounts(ctx, invoice); err != nil {
			return err
		}
		if err := repos.Orders.UpdatePaymentStatus(ctx, invoice.OrderID, orderPaymentStatus); err != nil {
			return err
		}

		invoice.Payments = append(invoice.Payments, *payment)
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}

	if customer, err := s.userRepo.GetByID(ctx, customerID); err == nil {
		if err := s.emailSvc.SendPaymentReceipt(ctx, customer.Email, customer.Name, updated.InvoiceNumber, amountCents); err != nil {
			logger.Warn("Failed to send payment receipt", "invoice_id", invoiceID, "error", err)
		}
	}

	return updated, nil
}
