package service

import (
	"context"
	"testing"
	"time"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func checkoutFixture() (repository.Repositories, *MockProductRepo, *MockOrderRepo, *MockInvoiceRepo, *MockReservationRepo, *MockCompanyRepo) {
	productRepo := new(MockProductRepo)
	orderRepo := new(MockOrderRepo)
	invoiceRepo := new(MockInvoiceRepo)
	reservationRepo := new(MockReservationRepo)
	companyRepo := new(MockCompanyRepo)

	repos := repository.Repositories{
		Products:     productRepo,
		Orders:       orderRepo,
		Invoices:     invoiceRepo,
		Reservations: reservationRepo,
		Companies:    companyRepo,
	}
	return repos, productRepo, orderRepo, invoiceRepo, reservationRepo, companyRepo
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()
	customerID := int32(100)
	companyID := int32(5)
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	drill := domain.Product{
		ID:       1,
		VendorID: 10,
		Name:     "Hammer Drill",
		Pricing:  domain.ProductPricing{DailyCents: 1000},
		IsActive: true,
	}
	generator := domain.Product{
		ID:       2,
		VendorID: 20,
		Name:     "Generator",
		Pricing:  domain.ProductPricing{DailyCents: 2000, SecurityDepositCents: 500},
		IsActive: true,
	}

	t.Run("Two Vendors Produce Two Orders And Three Invoices", func(t *testing.T) {
		repos, productRepo, orderRepo, invoiceRepo, reservationRepo, companyRepo := checkoutFixture()
		userRepo := new(MockUserRepo)
		emailSvc := new(MockEmailService)
		svc := NewCheckoutService(&fakeTransactor{repos: repos}, userRepo, emailSvc, 1000)

		productRepo.On("GetByIDs", ctx, []int32{2, 1}).Return([]domain.Product{drill, generator}, nil)
		companyRepo.On("GetByID", ctx, companyID).Return(&domain.Company{ID: companyID}, nil)
		productRepo.On("ReserveStock", ctx, int32(1), int32(1)).Return(nil)
		productRepo.On("ReserveStock", ctx, int32(2), int32(2)).Return(nil)

		nextOrderID := int32(0)
		orderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Run(func(args mock.Arguments) {
			nextOrderID++
			args.Get(1).(*domain.Order).ID = nextOrderID
		}).Return(nil)
		orderRepo.On("AppendTimeline", ctx, mock.AnythingOfType("int32"), mock.AnythingOfType("domain.TimelineEntry")).Return(nil)
		reservationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil)
		invoiceRepo.On("Create", ctx, mock.AnythingOfType("*domain.Invoice")).Return(nil)

		userRepo.On("GetByID", ctx, customerID).Return(&domain.User{ID: customerID, Email: "c@example.com", Name: "Casey"}, nil)
		emailSvc.On("SendOrderConfirmation", ctx, "c@example.com", "Casey", mock.AnythingOfType("string"), int64(17500)).Return(nil)

		result, err := svc.Checkout(ctx, customerID, companyID, CheckoutRequest{
			Items: []CheckoutItem{
				{ProductID: 2, Quantity: 2},
				{ProductID: 1, Quantity: 1},
			},
			StartDate: start,
			EndDate:   end,
		})
		assert.NoError(t, err)
		assert.Len(t, result.Orders, 2)
		assert.Len(t, result.VendorInvoices, 2)
		assert.NotNil(t, result.CustomerInvoice)

		// Vendor groups come out in ascending vendor order.
		assert.Equal(t, int32(10), result.Orders[0].VendorID)
		assert.Equal(t, int32(20), result.Orders[1].VendorID)

		// 3 days x 1000 x 1, 10% tax, no deposit.
		assert.Equal(t, int64(3000), result.Orders[0].Pricing.SubtotalCents)
		assert.Equal(t, int64(300), result.Orders[0].Pricing.TaxCents)
		assert.Equal(t, int64(3300), result.Orders[0].Pricing.TotalCents)

		// 3 days x 2000 x 2, 10% tax, 500 deposit per unit.
		assert.Equal(t, int64(12000), result.Orders[1].Pricing.SubtotalCents)
		assert.Equal(t, int64(1200), result.Orders[1].Pricing.TaxCents)
		assert.Equal(t, int64(1000), result.Orders[1].Pricing.SecurityDepositCents)
		assert.Equal(t, int64(14200), result.Orders[1].Pricing.TotalCents)

		for _, order := range result.Orders {
			assert.Equal(t, domain.OrderStatusPending, order.Status)
			assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
			assert.Equal(t, result.Summary.BatchID, order.BatchID)
		}

		// Customer invoice aggregates the whole batch and references the
		// first vendor order.
		customerTotal := result.VendorInvoices[0].Amounts.TotalCents + result.VendorInvoices[1].Amounts.TotalCents
		assert.Equal(t, customerTotal, result.CustomerInvoice.Amounts.TotalCents)
		assert.Equal(t, int64(17500), result.CustomerInvoice.Amounts.TotalCents)
		assert.Equal(t, result.Orders[0].ID, result.CustomerInvoice.OrderID)
		assert.Equal(t, domain.InvoiceTypeCustomer, result.CustomerInvoice.InvoiceType)
		assert.Equal(t, domain.InvoiceStatusPaid, result.CustomerInvoice.Status)
		assert.Equal(t, int64(0), result.CustomerInvoice.Amounts.AmountDueCents)

		for _, invoice := range result.VendorInvoices {
			assert.Equal(t, domain.InvoiceTypeVendor, invoice.InvoiceType)
			assert.Equal(t, domain.InvoiceStatusPaid, invoice.Status)
			assert.Equal(t, int64(0), invoice.Amounts.AmountDueCents)
			assert.Equal(t, result.Summary.BatchID, invoice.BatchID)
			if assert.Len(t, invoice.Payments, 1) {
				assert.Equal(t, "checkout", invoice.Payments[0].Method)
				assert.Equal(t, result.Summary.BatchID, invoice.Payments[0].TransactionID)
			}
		}

		assert.Equal(t, int32(2), result.Summary.TotalOrders)
		assert.Equal(t, int32(2), result.Summary.TotalVendors)
		assert.Equal(t, int64(17500), result.Summary.TotalAmountCents)
		emailSvc.AssertExpectations(t)
	})

	t.Run("Company Tax Rate Overrides Default", func(t *testing.T) {
		repos, productRepo, orderRepo, invoiceRepo, reservationRepo, companyRepo := checkoutFixture()
		userRepo := new(MockUserRepo)
		emailSvc := new(MockEmailService)
		svc := NewCheckoutService(&fakeTransactor{repos: repos}, userRepo, emailSvc, 1000)

		productRepo.On("GetByIDs", ctx, []int32{1}).Return([]domain.Product{drill}, nil)
		companyRepo.On("GetByID", ctx, companyID).Return(&domain.Company{
			ID:       companyID,
			Settings: domain.CompanySettings{TaxRateBps: 2000},
		}, nil)
		productRepo.On("ReserveStock", ctx, int32(1), int32(1)).Return(nil)
		orderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
		orderRepo.On("AppendTimeline", ctx, mock.AnythingOfType("int32"), mock.AnythingOfType("domain.TimelineEntry")).Return(nil)
		reservationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil)
		invoiceRepo.On("Create", ctx, mock.AnythingOfType("*domain.Invoice")).Return(nil)
		userRepo.On("GetByID", ctx, customerID).Return(nil, assert.AnError)

		result, err := svc.Checkout(ctx, customerID, companyID, CheckoutRequest{
			Items:     []CheckoutItem{{ProductID: 1, Quantity: 1}},
			StartDate: start,
			EndDate:   end,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(600), result.Orders[0].Pricing.TaxCents) // 20% of 3000
	})

	t.Run("Missing Product Aborts Whole Checkout", func(t *testing.T) {
		repos, productRepo, orderRepo, invoiceRepo, _, _ := checkoutFixture()
		svc := NewCheckoutService(&fakeTransactor{repos: repos}, new(MockUserRepo), new(MockEmailService), 1000)

		productRepo.On("GetByIDs", ctx, []int32{1, 99}).Return([]domain.Product{drill}, nil)

		_, err := svc.Checkout(ctx, customerID, companyID, CheckoutRequest{
			Items: []CheckoutItem{
				{ProductID: 1, Quantity: 1},
				{ProductID: 99, Quantity: 1},
			},
			StartDate: start,
			EndDate:   end,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Inactive Product Aborts Whole Checkout", func(t *testing.T) {
		repos, productRepo, orderRepo, _, _, _ := checkoutFixture()
		svc := NewCheckoutService(&fakeTransactor{repos: repos}, new(MockUserRepo), new(MockEmailService), 1000)

		retired := drill
		retired.IsActive = false
		productRepo.On("GetByIDs", ctx, []int32{1}).Return([]domain.Product{retired}, nil)

		_, err := svc.Checkout(ctx, customerID, companyID, CheckoutRequest{
			Items:     []CheckoutItem{{ProductID: 1, Quantity: 1}},
			StartDate: start,
			EndDate:   end,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Insufficient Inventory Aborts Whole Checkout", func(t *testing.T) {
		repos, productRepo, _, invoiceRepo, _, companyRepo := checkoutFixture()
		svc := NewCheckoutService(&fakeTransactor{repos: repos}, new(MockUserRepo), new(MockEmailService), 1000)

		productRepo.On("GetByIDs", ctx, []int32{1}).Return([]domain.Product{drill}, nil)
		companyRepo.On("GetByID", ctx, companyID).Return(&domain.Company{ID: companyID}, nil)
		productRepo.On("ReserveStock", ctx, int32(1), int32(3)).Return(domain.ErrInsufficientInventory)

		_, err := svc.Checkout(ctx, customerID, companyID, CheckoutRequest{
			Items:     []CheckoutItem{{ProductID: 1, Quantity: 3}},
			StartDate: start,
			EndDate:   end,
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
		invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Empty Cart Rejected", func(t *testing.T) {
		repos, _, _, _, _, _ := checkoutFixture()
		svc := NewCheckoutService(&fakeTransactor{repos: repos}, new(MockUserRepo), new(MockEmailService), 1000)

		_, err := svc.Checkout(ctx, customerID, companyID, CheckoutRequest{StartDate: start, EndDate: end})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Zero Quantity Rejected", func(t *testing.T) {
		repos, _, _, _, _, _ := checkoutFixture()
		svc := NewCheckoutService(&fakeTransactor{repos: repos}, new(MockUserRepo), new(MockEmailService), 1000)

		_, err := svc.Checkout(ctx, customerID, companyID, CheckoutRequest{
			Items:     []CheckoutItem{{ProductID: 1, Quantity: 0}},
			StartDate: start,
			EndDate:   end,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("End Before Start Rejected", func(t *testing.T) {
		repos, _, _, _, _, _ := checkoutFixture()
		svc := NewCheckoutService(&fakeTransactor{repos: repos}, new(MockUserRepo), new(MockEmailService), 1000)

		_, err := svc.Checkout(ctx, customerID, companyID, CheckoutRequest{
			Items:     []CheckoutItem{{ProductID: 1, Quantity: 1}},
			StartDate: end,
			EndDate:   start,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Weekly Tier Applied For Ten Day Rental", func(t *testing.T) {
		repos, productRepo, orderRepo, invoiceRepo, reservationRepo, companyRepo := checkoutFixture()
		userRepo := new(MockUserRepo)
		svc := NewCheckoutService(&fakeTransactor{repos: repos}, userRepo, new(MockEmailService), 1000)

		saw := domain.Product{
			ID:       3,
			VendorID: 10,
			Name:     "Tile Saw",
			Pricing:  domain.ProductPricing{DailyCents: 150, WeeklyCents: 700},
			IsActive: true,
		}
		productRepo.On("GetByIDs", ctx, []int32{3}).Return([]domain.Product{saw}, nil)
		companyRepo.On("GetByID", ctx, companyID).Return(&domain.Company{ID: companyID}, nil)
		productRepo.On("ReserveStock", ctx, int32(3), int32(1)).Return(nil)
		orderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
		orderRepo.On("AppendTimeline", ctx, mock.AnythingOfType("int32"), mock.AnythingOfType("domain.TimelineEntry")).Return(nil)
		reservationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil)
		invoiceRepo.On("Create", ctx, mock.AnythingOfType("*domain.Invoice")).Return(nil)
		userRepo.On("GetByID", ctx, customerID).Return(nil, assert.AnError)

		result, err := svc.Checkout(ctx, customerID, companyID, CheckoutRequest{
			Items:     []CheckoutItem{{ProductID: 3, Quantity: 1}},
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 10),
		})
		assert.NoError(t, err)
		// 700/7 = 100 per day over 10 days.
		assert.Equal(t, int64(100), result.Orders[0].Items[0].PricePerDayCents)
		assert.Equal(t, int64(1000), result.Orders[0].Items[0].TotalPriceCents)
		assert.Equal(t, domain.DurationTypeWeekly, result.Orders[0].RentalPeriod.DurationType)
	})
}
