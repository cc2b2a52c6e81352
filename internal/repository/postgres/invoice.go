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

type invoiceRepository struct {
	db DBTX
}

func NewInvoiceRepository(db DBTX) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, invoice_number, invoice_type, batch_id, order_id, customer_id, vendor_id, company_id, subtotal_cents, tax_cents, discount_cents, security_deposit_cents, total_cents, amount_paid_cents, amount_due_cents, status, due_date, paid_date, created_on, updated_on`

func scanInvoice(row interface{ Scan(...interface{}) error }) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.InvoiceType, &inv.BatchID, &inv.OrderID, &inv.CustomerID, &inv.VendorID, &inv.CompanyID,
		&inv.Amounts.SubtotalCents, &inv.Amounts.TaxCents, &inv.Amounts.DiscountCents, &inv.Amounts.SecurityDepositCents,
		&inv.Amounts.TotalCents, &inv.Amounts.AmountPaidCents, &inv.Amounts.AmountDueCents,
		&inv.Status, &inv.DueDate, &inv.PaidDate, &inv.CreatedOn, &inv.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	query := `INSERT INTO invoices (invoice_number, invoice_type, batch_id, order_id, customer_id, vendor_id, company_id, subtotal_cents, tax_cents, discount_cents, security_deposit_cents, total_cents, amount_paid_cents, amount_due_cents, status, due_date, paid_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, inv.InvoiceNumber, inv.InvoiceType, inv.BatchID, inv.OrderID, inv.CustomerID, inv.VendorID, inv.CompanyID,
		inv.Amounts.SubtotalCents, inv.Amounts.TaxCents, inv.Amounts.DiscountCents, inv.Amounts.SecurityDepositCents,
		inv.Amounts.TotalCents, inv.Amounts.AmountPaidCents, inv.Amounts.AmountDueCents,
		inv.Status, inv.DueDate, inv.PaidDate, now, now).Scan(&inv.ID)
	if err != nil {
		return err
	}

	for i := range inv.Items {
		item := &inv.Items[i]
		item.InvoiceID = inv.ID
		itemQuery := `INSERT INTO invoice_items (invoice_id, product_id, description, quantity, unit_cents, total_cents) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		if err := r.db.QueryRowContext(ctx, itemQuery, item.InvoiceID, item.ProductID, item.Description, item.Quantity, item.UnitCents, item.TotalCents).Scan(&item.ID); err != nil {
			return err
		}
	}

	for i := range inv.Payments {
		payment := &inv.Payments[i]
		payment.InvoiceID = inv.ID
		if err := r.AddPayment(ctx, payment); err != nil {
			return err
		}
	}
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("invoice %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadDetails(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) GetByOrder(ctx context.Context, orderID int32, invoiceType domain.InvoiceType) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_id = $1 AND invoice_type = $2`
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, query, orderID, invoiceType))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("invoice for order %d: %w", orderID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadDetails(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) loadDetails(ctx context.Context, inv *domain.Invoice) error {
	rows, err := r.db.QueryContext(ctx, `SELECT id, invoice_id, product_id, description, quantity, unit_cents, total_cents FROM invoice_items WHERE invoice_id = $1 ORDER BY id`, inv.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.InvoiceLineItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.ProductID, &item.Description, &item.Quantity, &item.UnitCents, &item.TotalCents); err != nil {
			return err
		}
		inv.Items = append(inv.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	payRows, err := r.db.QueryContext(ctx, `SELECT id, invoice_id, amount_cents, method, transaction_id, paid_on FROM invoice_payments WHERE invoice_id = $1 ORDER BY paid_on, id`, inv.ID)
	if err != nil {
		return err
	}
	defer payRows.Close()
	for payRows.Next() {
		var p domain.Payment
		if err := payRows.Scan(&p.ID, &p.InvoiceID, &p.AmountCents, &p.Method, &p.TransactionID, &p.Date); err != nil {
			return err
		}
		inv.Payments = append(inv.Payments, p)
	}
	return payRows.Err()
}

func (r *invoiceRepository) ListByBatch(ctx context.Context, batchID string) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE batch_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

func (r *invoiceRepository) AddPayment(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO invoice_payments (invoice_id, amount_cents, method, transaction_id, paid_on) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.InvoiceID, p.AmountCents, p.Method, p.TransactionID, p.Date).Scan(&p.ID)
}

func (r *invoiceRepository) UpdateAmounts(ctx context.Context, inv *domain.Invoice) error {
	query := `UPDATE invoices SET amount_paid_cents = $1, amount_due_cents = $2, status = $3, paid_date = $4, updated_on = $5 WHERE id = $6`
	_, err := r.db.ExecContext(ctx, query, inv.Amounts.AmountPaidCents, inv.Amounts.AmountDueCents, inv.Status, inv.PaidDate, time.Now(), inv.ID)
	return err
}

func (r *invoiceRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	query := `UPDATE invoices SET status = $1, updated_on = $2 WHERE status IN ($3, $4) AND due_date IS NOT NULL AND due_date < $5`
	res, err := r.db.ExecContext(ctx, query, domain.InvoiceStatusOverdue, time.Now(), domain.InvoiceStatusSent, domain.InvoiceStatusPartial, asOf)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *invoiceRepository) ListOverdue(ctx context.Context) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE status = $1 ORDER BY due_date`
	rows, err := r.db.QueryContext(ctx, query, domain.InvoiceStatusOverdue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}
