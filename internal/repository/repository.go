package repository

import (
	"context"
	"time"

	"gearmarket-backend/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []int32) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	ListByCompany(ctx context.Context, companyID int32, page, pageSize int32) ([]domain.Product, int32, error)

	// ReserveStock decrements available_quantity by qty in a single
	// conditional update. Returns domain.ErrInsufficientInventory when the
	// product does not have qty units available.
	ReserveStock(ctx context.Context, productID, qty int32) error
	// ReleaseStock increments available_quantity by qty, clamped at
	// total_quantity.
	ReleaseStock(ctx context.Context, productID, qty int32) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int32) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int32, status domain.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID int32, status domain.PaymentStatus) error
	AppendTimeline(ctx context.Context, orderID int32, entry domain.TimelineEntry) error
	ListByCustomer(ctx context.Context, customerID, companyID int32, status string, page, pageSize int32) ([]domain.Order, int32, error)
	ListByVendor(ctx context.Context, vendorID, companyID int32, status string, page, pageSize int32) ([]domain.Order, int32, error)
	ListByBatch(ctx context.Context, batchID string) ([]domain.Order, error)
	ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.Order, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id int32) (*domain.Invoice, error)
	GetByOrder(ctx context.Context, orderID int32, invoiceType domain.InvoiceType) (*domain.Invoice, error)
	ListByBatch(ctx context.Context, batchID string) ([]domain.Invoice, error)
	AddPayment(ctx context.Context, payment *domain.Payment) error
	// UpdateAmounts persists the amounts block plus status and paid date.
	UpdateAmounts(ctx context.Context, invoice *domain.Invoice) error
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
	ListOverdue(ctx context.Context) ([]domain.Invoice, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	ListByOrder(ctx context.Context, orderID int32) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, reservationID int32, status domain.ReservationStatus) error
	// SumOverlapping returns the total quantity of RESERVED and ACTIVE
	// reservations for a product whose date range overlaps [start, end].
	SumOverlapping(ctx context.Context, productID int32, start, end time.Time) (int32, error)
}

type CompanyRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Company, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	MarkEmailVerified(ctx context.Context, email string) error
}

// Repositories bundles every repository so transactional workflows can
// operate on a consistent set bound to one connection or transaction.
type Repositories struct {
	Products     ProductRepository
	Orders       OrderRepository
	Invoices     InvoiceRepository
	Reservations ReservationRepository
	Companies    CompanyRepository
	Users        UserRepository
}

// Transactor runs a function against transaction-bound repositories.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(Repositories) error) error
}
