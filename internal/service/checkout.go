package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/logger"
	"gearmarket-backend/internal/pricing"
	"gearmarket-backend/internal/repository"

	"github.com/google/uuid"
)

type checkoutService struct {
	store             repository.Transactor
	userRepo          repository.UserRepository
	emailSvc          EmailService
	defaultTaxRateBps int32
}

func NewCheckoutService(store repository.Transactor, userRepo repository.UserRepository, emailSvc EmailService, defaultTaxRateBps int32) CheckoutService {
	return &checkoutService{
		store:             store,
		userRepo:          userRepo,
		emailSvc:          emailSvc,
		defaultTaxRateBps: defaultTaxRateBps,
	}
}

// vendorGroup collects the cart lines belonging to one vendor.
type vendorGroup struct {
	vendorID int32
	lines    []checkoutLine
}

type checkoutLine struct {
	product  domain.Product
	quantity int32
}

// Checkout turns a cart into one order and one vendor invoice per distinct
// vendor, plus a combined customer invoice, all inside a single database
// transaction: a failure at any point leaves no partial batch behind.
func (s *checkoutService) Checkout(ctx context.Context, customerID, companyID int32, req CheckoutRequest) (*CheckoutResult, error) {
	if err := validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	durationDays := pricing.DurationDays(req.StartDate, req.EndDate)

	result := &CheckoutResult{}
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		groups, err := s.validateAndGroup(ctx, repos, req)
		if err != nil {
			return err
		}

		taxRateBps, err := s.resolveTaxRate(ctx, repos, companyID)
		if err != nil {
			return err
		}

		customerItems := []domain.InvoiceLineItem{}
		customerAmounts := domain.InvoiceAmounts{}

		for _, group := range groups {
			order, invoice, err := s.createVendorOrder(ctx, repos, customerID, companyID, batchID, durationDays, taxRateBps, req, group)
			if err != nil {
				return err
			}
			result.Orders = append(result.Orders, *order)
			result.VendorInvoices = append(result.VendorInvoices, *invoice)

			customerItems = append(customerItems, invoice.Items...)
			customerAmounts.SubtotalCents += invoice.Amounts.SubtotalCents
			customerAmounts.TaxCents += invoice.Amounts.TaxCents
			customerAmounts.DiscountCents += invoice.Amounts.DiscountCents
			customerAmounts.SecurityDepositCents += invoice.Amounts.SecurityDepositCents
			customerAmounts.TotalCents += invoice.Amounts.TotalCents
		}

		customerInvoice, err := s.createCustomerInvoice(ctx, repos, customerID, companyID, batchID, result.Orders, customerItems, customerAmounts)
		if err != nil {
			return err
		}
		result.CustomerInvoice = customerInvoice

		result.Summary = CheckoutSummary{
			TotalOrders:      int32(len(result.Orders)),
			TotalVendors:     int32(len(groups)),
			TotalAmountCents: customerAmounts.TotalCents,
			BatchID:          batchID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notification failures never block a committed checkout.
	if customer, err := s.userRepo.GetByID(ctx, customerID); err == nil {
		if err := s.emailSvc.SendOrderConfirmation(ctx, customer.Email, customer.Name, batchID, result.Summary.TotalAmountCents); err != nil {
			logger.Warn("Failed to send order confirmation", "batch_id", batchID, "error", err)
		}
	}

	return result, nil
}

func validateCheckoutRequest(req CheckoutRequest) error {
	if len(req.Items) == 0 {
		return fmt.Errorf("cart is empty: %w", domain.ErrValidation)
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("quantity must be at least 1: %w", domain.ErrValidation)
		}
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("rental period is required: %w", domain.ErrValidation)
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("end date must not precede start date: %w", domain.ErrValidation)
	}
	return nil
}

// validateAndGroup loads every product up front so a missing or inactive
// product fails the checkout before anything is written, then groups the
// lines by vendor in ascending vendor order.
func (s *checkoutService) validateAndGroup(ctx context.Context, repos repository.Repositories, req CheckoutRequest) ([]vendorGroup, error) {
	ids := make([]int32, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := repos.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int32]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	grouped := make(map[int32][]checkoutLine)
	for _, item := range req.Items {
		product, ok := byID[item.ProductID]
		if !ok || !product.IsActive {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, domain.ErrNotFound)
		}
		grouped[product.VendorID] = append(grouped[product.VendorID], checkoutLine{product: product, quantity: item.Quantity})
	}

	vendorIDs := make([]int32, 0, len(grouped))
	for vendorID := range grouped {
		vendorIDs = append(vendorIDs, vendorID)
	}
	sort.Slice(vendorIDs, func(i, j int) bool { return vendorIDs[i] < vendorIDs[j] })

	groups := make([]vendorGroup, 0, len(vendorIDs))
	for _, vendorID := range vendorIDs {
		groups = append(groups, vendorGroup{vendorID: vendorID, lines: grouped[vendorID]})
	}
	return groups, nil
}

func (s *checkoutService) resolveTaxRate(ctx context.Context, repos repository.Repositories, companyID int32) (int32, error) {
	company, err := repos.Companies.GetByID(ctx, companyID)
	if err != nil {
		return 0, err
	}
	if company.Settings.TaxRateBps > 0 {
		return company.Settings.TaxRateBps, nil
	}
	return s.defaultTaxRateBps, nil
}

func (s *checkoutService) createVendorOrder(ctx context.Context, repos repository.Repositories, customerID, companyID int32, batchID string, durationDays int32, taxRateBps int32, req CheckoutRequest, group vendorGroup) (*domain.Order, *domain.Invoice, error) {
	now := time.Now()

	var orderItems []domain.OrderItem
	var invoiceItems []domain.InvoiceLineItem
	var subtotalCents, depositCents int64
	for _, line := range group.lines {
		if err := repos.Products.ReserveStock(ctx, line.product.ID, line.quantity); err != nil {
			return nil, nil, err
		}

		rate, _ := pricing.SelectRate(line.product.Pricing, durationDays)
		lineTotal := rate * int64(durationDays) * int64(line.quantity)
		subtotalCents += lineTotal
		depositCents += line.product.Pricing.SecurityDepositCents * int64(line.quantity)

		orderItems = append(orderItems, domain.OrderItem{
			ProductID:        line.product.ID,
			Quantity:         line.quantity,
			PricePerDayCents: rate,
			TotalPriceCents:  lineTotal,
		})
		invoiceItems = append(invoiceItems, domain.InvoiceLineItem{
			ProductID:   line.product.ID,
			Description: fmt.Sprintf("%s rental, %d day(s)", line.product.Name, durationDays),
			Quantity:    line.quantity,
			UnitCents:   rate * int64(durationDays),
			TotalCents:  lineTotal,
		})
	}

	taxCents := pricing.Tax(subtotalCents, taxRateBps)
	totalCents := subtotalCents + taxCents + depositCents

	order := &domain.Order{
		OrderNumber: generateNumber("ORD"),
		BatchID:     batchID,
		CustomerID:  customerID,
		VendorID:    group.vendorID,
		CompanyID:   companyID,
		Items:       orderItems,
		RentalPeriod: domain.RentalPeriod{
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			Duration:     durationDays,
			DurationType: durationType(durationDays),
		},
		Pricing: domain.OrderPricing{
			SubtotalCents:        subtotalCents,
			SecurityDepositCents: depositCents,
			TaxCents:             taxCents,
			TotalCents:           totalCents,
		},
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPaid,
	}
	if err := repos.Orders.Create(ctx, order); err != nil {
		return nil, nil, err
	}
	if err := repos.Orders.AppendTimeline(ctx, order.ID, domain.TimelineEntry{Status: domain.OrderStatusPending, Note: "Order created", Date: now}); err != nil {
		return nil, nil, err
	}

	for _, item := range orderItems {
		reservation := &domain.Reservation{
			ProductID:  item.ProductID,
			OrderID:    order.ID,
			CustomerID: customerID,
			Quantity:   item.Quantity,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			Status:     domain.ReservationStatusReserved,
		}
		if err := repos.Reservations.Create(ctx, reservation); err != nil {
			return nil, nil, err
		}
	}

	// Checkout asserts payment: the vendor invoice is created fully paid,
	// with a synthetic payment entry carrying the batch reference.
	paidDate := now
	invoice := &domain.Invoice{
		InvoiceNumber: generateNumber("INV"),
		InvoiceType:   domain.InvoiceTypeVendor,
		BatchID:       batchID,
		OrderID:       order.ID,
		CustomerID:    customerID,
		VendorID:      group.vendorID,
		CompanyID:     companyID,
		Items:         invoiceItems,
		Amounts: domain.InvoiceAmounts{
			SubtotalCents:        subtotalCents,
			TaxCents:             taxCents,
			SecurityDepositCents: depositCents,
			TotalCents:           totalCents,
			AmountPaidCents:      totalCents,
			AmountDueCents:       0,
		},
		Status:   domain.InvoiceStatusPaid,
		PaidDate: &paidDate,
		Payments: []domain.Payment{{
			AmountCents:   totalCents,
			Method:        "checkout",
			TransactionID: batchID,
			Date:          now,
		}},
	}
	if err := repos.Invoices.Create(ctx, invoice); err != nil {
		return nil, nil, err
	}

	return order, invoice, nil
}

// createCustomerInvoice aggregates the batch into the single invoice shown
// to the paying customer. The order reference points at the first vendor
// order in the batch.
func (s *checkoutService) createCustomerInvoice(ctx context.Context, repos repository.Repositories, customerID, companyID int32, batchID string, orders []domain.Order, items []domain.InvoiceLineItem, amounts domain.InvoiceAmounts) (*domain.Invoice, error) {
	now := time.Now()
	paidDate := now

	// Line item IDs belong to the vendor invoices they were copied from.
	copied := make([]domain.InvoiceLineItem, len(items))
	for i, item := range items {
		item.ID = 0
		item.InvoiceID = 0
		copied[i] = item
	}

	amounts.AmountPaidCents = amounts.TotalCents
	amounts.AmountDueCents = 0

	invoice := &domain.Invoice{
		InvoiceNumber: generateNumber("INV"),
		InvoiceType:   domain.InvoiceTypeCustomer,
		BatchID:       batchID,
		OrderID:       orders[0].ID,
		CustomerID:    customerID,
		VendorID:      orders[0].VendorID,
		CompanyID:     companyID,
		Items:         copied,
		Amounts:       amounts,
		Status:        domain.InvoiceStatusPaid,
		PaidDate:      &paidDate,
		Payments: []domain.Payment{{
			AmountCents:   amounts.TotalCents,
			Method:        "checkout",
			TransactionID: batchID,
			Date:          now,
		}},
	}
	if err := repos.Invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func durationType(durationDays int32) domain.DurationType {
	switch {
	case durationDays >= 30:
		return domain.DurationTypeMonthly
	case durationDays >= 7:
		return domain.DurationTypeWeekly
	default:
		return domain.DurationTypeDaily
	}
}

// generateNumber builds a unique human-readable document number, e.g.
// ORD-20250115-7F3A21C9.
func generateNumber(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().UTC().Format("20060102"), suffix)
}
