package domain

import "time"

type InvoiceType string

const (
	InvoiceTypeVendor   InvoiceType = "VENDOR"
	InvoiceTypeCustomer InvoiceType = "CUSTOMER"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusPartial   InvoiceStatus = "PARTIAL"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

type InvoiceLineItem struct {
	ID          int32  `json:"id"`
	InvoiceID   int32  `json:"invoice_id"`
	ProductID   int32  `json:"product_id"`
	Description string `json:"description"`
	Quantity    int32  `json:"quantity"`
	UnitCents   int64  `json:"unit_cents"`
	TotalCents  int64  `json:"total_cents"`
}

// InvoiceAmounts carries the money fields of an invoice.
// Invariant: AmountDueCents = TotalCents - AmountPaidCents after every
// payment mutation. AmountDueCents may go negative on overpayment.
type InvoiceAmounts struct {
	SubtotalCents        int64 `json:"subtotal_cents"`
	TaxCents             int64 `json:"tax_cents"`
	DiscountCents        int64 `json:"discount_cents"`
	SecurityDepositCents int64 `json:"security_deposit_cents"`
	TotalCents           int64 `json:"total_cents"`
	AmountPaidCents      int64 `json:"amount_paid_cents"`
	AmountDueCents       int64 `json:"amount_due_cents"`
}

type Payment struct {
	ID            int32     `json:"id"`
	InvoiceID     int32     `json:"invoice_id"`
	AmountCents   int64     `json:"amount_cents"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transaction_id"`
	Date          time.Time `json:"date"`
}

type Invoice struct {
	ID            int32             `json:"id"`
	InvoiceNumber string            `json:"invoice_number"`
	InvoiceType   InvoiceType       `json:"invoice_type"`
	BatchID       string            `json:"batch_id"`
	OrderID       int32             `json:"order_id"`
	CustomerID    int32             `json:"customer_id"`
	VendorID      int32             `json:"vendor_id"`
	CompanyID     int32             `json:"company_id"`
	Items         []InvoiceLineItem `json:"items"`
	Amounts       InvoiceAmounts    `json:"amounts"`
	Status        InvoiceStatus     `json:"status"`
	Payments      []Payment         `json:"payments"`
	DueDate       *time.Time        `json:"due_date,omitempty"`
	PaidDate      *time.Time        `json:"paid_date,omitempty"`
	CreatedOn     time.Time         `json:"created_on"`
	UpdatedOn     time.Time         `json:"updated_on"`
}
