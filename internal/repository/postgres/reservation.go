package postgres

import (
	"context"
	"time"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"
)

type reservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, rv *domain.Reservation) error {
	query := `INSERT INTO reservations (product_id, order_id, customer_id, quantity, start_date, end_date, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, rv.ProductID, rv.OrderID, rv.CustomerID, rv.Quantity, rv.StartDate, rv.EndDate, rv.Status, time.Now()).Scan(&rv.ID)
}

func (r *reservationRepository) ListByOrder(ctx context.Context, orderID int32) ([]domain.Reservation, error) {
	query := `SELECT id, product_id, order_id, customer_id, quantity, start_date, end_date, status, created_on FROM reservations WHERE order_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var rv domain.Reservation
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.OrderID, &rv.CustomerID, &rv.Quantity, &rv.StartDate, &rv.EndDate, &rv.Status, &rv.CreatedOn); err != nil {
			return nil, err
		}
		reservations = append(reservations, rv)
	}
	return reservations, rows.Err()
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, reservationID int32, status domain.ReservationStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE reservations SET status = $1 WHERE id = $2`, status, reservationID)
	return err
}

func (r *reservationRepository) SumOverlapping(ctx context.Context, productID int32, start, end time.Time) (int32, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM reservations
	          WHERE product_id = $1 AND status IN ($2, $3) AND start_date <= $4 AND end_date >= $5`
	var total int32
	err := r.db.QueryRowContext(ctx, query, productID, domain.ReservationStatusReserved, domain.ReservationStatusActive, end, start).Scan(&total)
	return total, err
}
