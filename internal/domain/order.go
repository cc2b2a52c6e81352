package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPickedUp  OrderStatus = "PICKED_UP"
	OrderStatusActive    OrderStatus = "ACTIVE"
	OrderStatusReturned  OrderStatus = "RETURNED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPartial  PaymentStatus = "PARTIAL"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type DurationType string

const (
	DurationTypeDaily   DurationType = "daily"
	DurationTypeWeekly  DurationType = "weekly"
	DurationTypeMonthly DurationType = "monthly"
)

// orderTransitions is the closed transition table for the order lifecycle.
// Cancellation is handled separately since its legality depends on the actor.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPickedUp, OrderStatusCancelled},
	OrderStatusPickedUp:  {OrderStatusActive, OrderStatusCancelled},
	OrderStatusActive:    {OrderStatusReturned, OrderStatusCancelled},
	OrderStatusReturned:  {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// CanTransition reports whether moving from one order status to another is
// allowed by the lifecycle table.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether an order status admits no further transitions.
func IsTerminal(s OrderStatus) bool {
	return len(orderTransitions[s]) == 0
}

// CustomerCanCancel reports whether a customer may cancel an order in the
// given status. Customers may only back out before the vendor hands over
// the equipment.
func CustomerCanCancel(s OrderStatus) bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

type OrderItem struct {
	ID               int32 `json:"id"`
	OrderID          int32 `json:"order_id"`
	ProductID        int32 `json:"product_id"`
	Quantity         int32 `json:"quantity"`
	PricePerDayCents int64 `json:"price_per_day_cents"`
	TotalPriceCents  int64 `json:"total_price_cents"`
}

type RentalPeriod struct {
	StartDate    time.Time    `json:"start_date"`
	EndDate      time.Time    `json:"end_date"`
	Duration     int32        `json:"duration"` // days, inclusive minimum 1
	DurationType DurationType `json:"duration_type"`
}

type OrderPricing struct {
	SubtotalCents        int64 `json:"subtotal_cents"`
	SecurityDepositCents int64 `json:"security_deposit_cents"`
	TaxCents             int64 `json:"tax_cents"`
	DiscountCents        int64 `json:"discount_cents"`
	TotalCents           int64 `json:"total_cents"`
}

type TimelineEntry struct {
	Status OrderStatus `json:"status"`
	Note   string      `json:"note"`
	Date   time.Time   `json:"date"`
}

type Order struct {
	ID            int32           `json:"id"`
	OrderNumber   string          `json:"order_number"`
	BatchID       string          `json:"batch_id"`
	CustomerID    int32           `json:"customer_id"`
	VendorID      int32           `json:"vendor_id"`
	CompanyID     int32           `json:"company_id"`
	Items         []OrderItem     `json:"items"`
	RentalPeriod  RentalPeriod    `json:"rental_period"`
	Pricing       OrderPricing    `json:"pricing"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Timeline      []TimelineEntry `json:"timeline"`
	CreatedOn     time.Time       `json:"created_on"`
	UpdatedOn     time.Time       `json:"updated_on"`
}
