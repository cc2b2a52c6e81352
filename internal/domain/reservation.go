package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusReserved  ReservationStatus = "RESERVED"
	ReservationStatusActive    ReservationStatus = "ACTIVE"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// Releasable reports whether a reservation still holds stock. Completed and
// cancelled reservations have already given their quantity back.
func (s ReservationStatus) Releasable() bool {
	return s == ReservationStatusReserved || s == ReservationStatusActive
}

// Reservation is a time-bounded hold on product quantity for one order.
type Reservation struct {
	ID         int32             `json:"id"`
	ProductID  int32             `json:"product_id"`
	OrderID    int32             `json:"order_id"`
	CustomerID int32             `json:"customer_id"`
	Quantity   int32             `json:"quantity"`
	StartDate  time.Time         `json:"start_date"`
	EndDate    time.Time         `json:"end_date"`
	Status     ReservationStatus `json:"status"`
	CreatedOn  time.Time         `json:"created_on"`
}
