package service

import (
	"context"
	"time"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// fakeTransactor runs the callback against the given repositories without a
// real transaction, so tests can observe writes through the mocks.
type fakeTransactor struct {
	repos repository.Repositories
}

func (f *fakeTransactor) WithinTx(_ context.Context, fn func(repository.Repositories) error) error {
	return fn(f.repos)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) GetByIDs(ctx context.Context, ids []int32) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) ListByCompany(ctx context.Context, companyID int32, page, pageSize int32) ([]domain.Product, int32, error) {
	args := m.Called(ctx, companyID, page, pageSize)
	return args.Get(0).([]domain.Product), args.Get(1).(int32), args.Error(2)
}
func (m *MockProductRepo) ReserveStock(ctx context.Context, productID, qty int32) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}
func (m *MockProductRepo) ReleaseStock(ctx context.Context, productID, qty int32) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) UpdateStatus(ctx context.Context, orderID int32, status domain.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}
func (m *MockOrderRepo) UpdatePaymentStatus(ctx context.Context, orderID int32, status domain.PaymentStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}
func (m *MockOrderRepo) AppendTimeline(ctx context.Context, orderID int32, entry domain.TimelineEntry) error {
	args := m.Called(ctx, orderID, entry)
	return args.Error(0)
}
func (m *MockOrderRepo) ListByCustomer(ctx context.Context, customerID, companyID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, customerID, companyID, status, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) ListByVendor(ctx context.Context, vendorID, companyID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, vendorID, companyID, status, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) ListByBatch(ctx context.Context, batchID string) ([]domain.Order, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).([]domain.Order), args.Error(1)
}

// MockInvoiceRepo
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}
func (m *MockInvoiceRepo) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) GetByOrder(ctx context.Context, orderID int32, invoiceType domain.InvoiceType) (*domain.Invoice, error) {
	args := m.Called(ctx, orderID, invoiceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) ListByBatch(ctx context.Context, batchID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).([]domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) AddPayment(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockInvoiceRepo) UpdateAmounts(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}
func (m *MockInvoiceRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockInvoiceRepo) ListOverdue(ctx context.Context) ([]domain.Invoice, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}
func (m *MockReservationRepo) ListByOrder(ctx context.Context, orderID int32) ([]domain.Reservation, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) UpdateStatus(ctx context.Context, reservationID int32, status domain.ReservationStatus) error {
	args := m.Called(ctx, reservationID, status)
	return args.Error(0)
}
func (m *MockReservationRepo) SumOverlapping(ctx context.Context, productID int32, start, end time.Time) (int32, error) {
	args := m.Called(ctx, productID, start, end)
	return args.Get(0).(int32), args.Error(1)
}

// MockCompanyRepo
type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) GetByID(ctx context.Context, id int32) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) MarkEmailVerified(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOrderConfirmation(ctx context.Context, toEmail, toName, batchID string, totalCents int64) error {
	args := m.Called(ctx, toEmail, toName, batchID, totalCents)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, toEmail, toName, invoiceNumber string, amountCents int64) error {
	args := m.Called(ctx, toEmail, toName, invoiceNumber, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReminder(ctx context.Context, toEmail, toName, invoiceNumber string, amountDueCents int64) error {
	args := m.Called(ctx, toEmail, toName, invoiceNumber, amountDueCents)
	return args.Error(0)
}
func (m *MockEmailService) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	args := m.Called(ctx, toEmail, code)
	return args.Error(0)
}
