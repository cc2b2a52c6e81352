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

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (company_id, name, email, password_hash, role, email_verified, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, u.CompanyID, u.Name, u.Email, u.PasswordHash, u.Role, u.EmailVerified, time.Now()).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, company_id, name, email, password_hash, role, email_verified, created_on FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.CompanyID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.EmailVerified, &u.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, company_id, name, email, password_hash, role, email_verified, created_on FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.CompanyID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.EmailVerified, &u.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) MarkEmailVerified(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET email_verified = true WHERE email = $1`, email)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	return nil
}
