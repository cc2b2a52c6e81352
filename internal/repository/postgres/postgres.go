package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gearmarket-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every repository can be
// bound either to the pool or to one transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Repositories: newRepositories(db),
	}
}

func newRepositories(db DBTX) repository.Repositories {
	return repository.Repositories{
		Products:     NewProductRepository(db),
		Orders:       NewOrderRepository(db),
		Invoices:     NewInvoiceRepository(db),
		Reservations: NewReservationRepository(db),
		Companies:    NewCompanyRepository(db),
		Users:        NewUserRepository(db),
	}
}

// WithinTx runs fn against repositories bound to a single database
// transaction. fn returning an error rolls everything back.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(newRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %v, rollback err: %w", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}
