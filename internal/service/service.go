package service

import (
	"context"
	"time"

	"gearmarket-backend/internal/domain"
)

// CheckoutItem is one cart line.
type CheckoutItem struct {
	ProductID int32 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

// CheckoutRequest is a multi-vendor cart plus the rental period.
type CheckoutRequest struct {
	Items     []CheckoutItem `json:"items"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
}

type CheckoutSummary struct {
	TotalOrders      int32  `json:"total_orders"`
	TotalVendors     int32  `json:"total_vendors"`
	TotalAmountCents int64  `json:"total_amount_cents"`
	BatchID          string `json:"batch_id"`
}

// CheckoutResult carries everything one checkout created: one order and one
// vendor invoice per distinct vendor, plus the combined customer invoice.
type CheckoutResult struct {
	Orders          []domain.Order   `json:"orders"`
	VendorInvoices  []domain.Invoice `json:"vendor_invoices"`
	CustomerInvoice *domain.Invoice  `json:"customer_invoice"`
	Summary         CheckoutSummary  `json:"summary"`
}

// AvailabilityResult answers a check-availability query.
type AvailabilityResult struct {
	Available          bool  `json:"available"`
	AvailableQuantity  int32 `json:"available_quantity"`
	OverlappingHeldQty int32 `json:"overlapping_held_qty"`
}

type CheckoutService interface {
	Checkout(ctx context.Context, customerID, companyID int32, req CheckoutRequest) (*CheckoutResult, error)
}

type OrderService interface {
	GetOrder(ctx context.Context, userID int32, role domain.UserRole, orderID int32) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int32, role domain.UserRole, companyID int32, status string, page, pageSize int32) ([]domain.Order, int32, error)
	UpdateStatus(ctx context.Context, actorID int32, role domain.UserRole, orderID int32, next domain.OrderStatus, note string) (*domain.Order, error)
	CancelOrder(ctx context.Context, customerID, orderID int32, reason string) (*domain.Order, error)
	ExpireStalePending(ctx context.Context, olderThan time.Time) (int, error)
}

type InvoiceService interface {
	CreateForOrder(ctx context.Context, actorID int32, role domain.UserRole, orderID int32) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, userID int32, role domain.UserRole, invoiceID int32) (*domain.Invoice, error)
	ProcessPayment(ctx context.Context, customerID, invoiceID int32, amountCents int64, method, transactionID string) (*domain.Invoice, error)
}

type InventoryService interface {
	CheckAvailability(ctx context.Context, productID, quantity int32, start, end time.Time) (*AvailabilityResult, error)
}

type ProductService interface {
	AddProduct(ctx context.Context, vendorID, companyID int32, product *domain.Product) error
	GetProduct(ctx context.Context, id int32) (*domain.Product, error)
	UpdateProduct(ctx context.Context, vendorID int32, role domain.UserRole, product *domain.Product) error
	ListProducts(ctx context.Context, companyID int32, page, pageSize int32) ([]domain.Product, int32, error)
}

type AuthService interface {
	Signup(ctx context.Context, companyID int32, name, email, password string, role domain.UserRole) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	RequestEmailOTP(ctx context.Context, email string) error
	VerifyEmailOTP(ctx context.Context, email, code string) error
}

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, toEmail, toName, batchID string, totalCents int64) error
	SendPaymentReceipt(ctx context.Context, toEmail, toName, invoiceNumber string, amountCents int64) error
	SendPaymentReminder(ctx context.Context, toEmail, toName, invoiceNumber string, amountDueCents int64) error
	SendVerificationCode(ctx context.Context, toEmail, code string) error
}
