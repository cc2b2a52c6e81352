package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"
)

type companyRepository struct {
	db DBTX
}

func NewCompanyRepository(db DBTX) repository.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) GetByID(ctx context.Context, id int32) (*domain.Company, error) {
	c := &domain.Company{}
	query := `SELECT id, name, tax_rate_bps, currency, created_on FROM companies WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Settings.TaxRateBps, &c.Settings.Currency, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("company %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
