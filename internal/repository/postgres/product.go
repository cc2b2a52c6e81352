package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"

	"github.com/lib/pq"
)

type productRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, vendor_id, company_id, name, description, hourly_cents, daily_cents, weekly_cents, monthly_cents, security_deposit_cents, total_quantity, available_quantity, is_active, created_on, updated_on`

func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	p := &domain.Product{}
	err := row.Scan(&p.ID, &p.VendorID, &p.CompanyID, &p.Name, &p.Description,
		&p.Pricing.HourlyCents, &p.Pricing.DailyCents, &p.Pricing.WeeklyCents, &p.Pricing.MonthlyCents, &p.Pricing.SecurityDepositCents,
		&p.Inventory.TotalQuantity, &p.Inventory.AvailableQuantity, &p.IsActive, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (vendor_id, company_id, name, description, hourly_cents, daily_cents, weekly_cents, monthly_cents, security_deposit_cents, total_quantity, available_quantity, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, p.VendorID, p.CompanyID, p.Name, p.Description,
		p.Pricing.HourlyCents, p.Pricing.DailyCents, p.Pricing.WeeklyCents, p.Pricing.MonthlyCents, p.Pricing.SecurityDepositCents,
		p.Inventory.TotalQuantity, p.Inventory.AvailableQuantity, p.IsActive, now, now).Scan(&p.ID)
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []int32) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name=$1, description=$2, hourly_cents=$3, daily_cents=$4, weekly_cents=$5, monthly_cents=$6, security_deposit_cents=$7, total_quantity=$8, is_active=$9, updated_on=$10 WHERE id=$11`
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Description,
		p.Pricing.HourlyCents, p.Pricing.DailyCents, p.Pricing.WeeklyCents, p.Pricing.MonthlyCents, p.Pricing.SecurityDepositCents,
		p.Inventory.TotalQuantity, p.IsActive, time.Now(), p.ID)
	return err
}

func (r *productRepository) ListByCompany(ctx context.Context, companyID int32, page, pageSize int32) ([]domain.Product, int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM products WHERE company_id = $1 AND is_active = true`, companyID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND is_active = true ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, companyID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, count, rows.Err()
}

// ReserveStock is a single conditional decrement: two concurrent reserves
// whose combined quantity exceeds availability cannot both pass the WHERE
// clause.
func (r *productRepository) ReserveStock(ctx context.Context, productID, qty int32) error {
	query := `UPDATE products SET available_quantity = available_quantity - $1, updated_on = $2 WHERE id = $3 AND available_quantity >= $1`
	res, err := r.db.ExecContext(ctx, query, qty, time.Now(), productID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("product %d: %w", productID, domain.ErrInsufficientInventory)
	}
	return nil
}

// ReleaseStock clamps at total_quantity so a duplicate release cannot push
// availability past the owned stock.
func (r *productRepository) ReleaseStock(ctx context.Context, productID, qty int32) error {
	query := `UPDATE products SET available_quantity = LEAST(available_quantity + $1, total_quantity), updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, qty, time.Now(), productID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
	}
	return nil
}
