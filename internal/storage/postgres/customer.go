package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feastly/order-service/internal/domain/customer"
	"github.com/feastly/order-service/internal/domain/ident"
)

var _ customer.Repository = (*CustomerRepository)(nil)

// CustomerRepository implements customer.Repository backed by PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a CustomerRepository that uses the given pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Find looks up a customer by id. Returns customer.ErrNotFound when no row
// matches.
func (r *CustomerRepository) Find(ctx context.Context, id ident.CustomerID) (*customer.Customer, error) {
	var got uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM customers WHERE id = $1`,
		uuid.UUID(id),
	).Scan(&got)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		return nil, errors.Wrapf(err, "find customer %s", id)
	}

	return &customer.Customer{ID: ident.CustomerID(got)}, nil
}
