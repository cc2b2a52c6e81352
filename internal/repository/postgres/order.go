package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"
)

type orderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, order_number, batch_id, customer_id, vendor_id, company_id, start_date, end_date, duration_days, duration_type, subtotal_cents, security_deposit_cents, tax_cents, discount_cents, total_cents, status, payment_status, created_on, updated_on`

func scanOrder(row interface{ Scan(...interface{}) error }) (*domain.Order, error) {
	o := &domain.Order{}
	err := row.Scan(&o.ID, &o.OrderNumber, &o.BatchID, &o.CustomerID, &o.VendorID, &o.CompanyID,
		&o.RentalPeriod.StartDate, &o.RentalPeriod.EndDate, &o.RentalPeriod.Duration, &o.RentalPeriod.DurationType,
		&o.Pricing.SubtotalCents, &o.Pricing.SecurityDepositCents, &o.Pricing.TaxCents, &o.Pricing.DiscountCents, &o.Pricing.TotalCents,
		&o.Status, &o.PaymentStatus, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	query := `INSERT INTO orders (order_number, batch_id, customer_id, vendor_id, company_id, start_date, end_date, duration_days, duration_type, subtotal_cents, security_deposit_cents, tax_cents, discount_cents, total_cents, status, payment_status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, o.OrderNumber, o.BatchID, o.CustomerID, o.VendorID, o.CompanyID,
		o.RentalPeriod.StartDate, o.RentalPeriod.EndDate, o.RentalPeriod.Duration, o.RentalPeriod.DurationType,
		o.Pricing.SubtotalCents, o.Pricing.SecurityDepositCents, o.Pricing.TaxCents, o.Pricing.DiscountCents, o.Pricing.TotalCents,
		o.Status, o.PaymentStatus, now, now).Scan(&o.ID)
	if err != nil {
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		itemQuery := `INSERT INTO order_items (order_id, product_id, quantity, price_per_day_cents, total_price_cents) VALUES ($1, $2, $3, $4, $5) RETURNING id`
		if err := r.db.QueryRowContext(ctx, itemQuery, item.OrderID, item.ProductID, item.Quantity, item.PricePerDayCents, item.TotalPriceCents).Scan(&item.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	timeline, err := r.loadTimeline(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Timeline = timeline

	return o, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int32) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, order_id, product_id, quantity, price_per_day_cents, total_price_cents FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.PricePerDayCents, &item.TotalPriceCents); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *orderRepository) loadTimeline(ctx context.Context, orderID int32) ([]domain.TimelineEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, note, entry_date FROM order_timeline WHERE order_id = $1 ORDER BY entry_date, id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var timeline []domain.TimelineEntry
	for rows.Next() {
		var entry domain.TimelineEntry
		if err := rows.Scan(&entry.Status, &entry.Note, &entry.Date); err != nil {
			return nil, err
		}
		timeline = append(timeline, entry)
	}
	return timeline, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int32, status domain.OrderStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $1, updated_on = $2 WHERE id = $3`, status, time.Now(), orderID)
	return err
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, orderID int32, status domain.PaymentStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE orders SET payment_status = $1, updated_on = $2 WHERE id = $3`, status, time.Now(), orderID)
	return err
}

func (r *orderRepository) AppendTimeline(ctx context.Context, orderID int32, entry domain.TimelineEntry) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO order_timeline (order_id, status, note, entry_date) VALUES ($1, $2, $3, $4)`, orderID, entry.Status, entry.Note, entry.Date)
	return err
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID, companyID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	return r.list(ctx, "customer_id", customerID, companyID, status, page, pageSize)
}

func (r *orderRepository) ListByVendor(ctx context.Context, vendorID, companyID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	return r.list(ctx, "vendor_id", vendorID, companyID, status, page, pageSize)
}

func (r *orderRepository) list(ctx context.Context, ownerColumn string, ownerID, companyID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + ownerColumn + ` = $1 AND company_id = $2`

	args := []interface{}{ownerID, companyID}
	argIdx := 3
	if status != "" {
		query += " AND status = $3"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, count, rows.Err()
}

func (r *orderRepository) ListByBatch(ctx context.Context, batchID string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE batch_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 AND created_on < $2 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusPending, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}
