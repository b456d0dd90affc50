package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/feastly/order-service/internal/domain/ident"
	"github.com/feastly/order-service/internal/domain/money"
	"github.com/feastly/order-service/internal/domain/restaurant"
)

var _ restaurant.Repository = (*RestaurantRepository)(nil)

// RestaurantRepository implements restaurant.Repository backed by PostgreSQL.
type RestaurantRepository struct {
	pool *pgxpool.Pool
}

// NewRestaurantRepository returns a RestaurantRepository that uses the given
// pool.
func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

// FindInformation returns the restaurant snapshot with the subset of its
// catalog matching the queried product ids. The LEFT JOIN keeps the
// restaurant row visible even when none of the queried products exist, so
// product reconciliation can report the missing product rather than a
// missing restaurant.
func (r *RestaurantRepository) FindInformation(ctx context.Context, q restaurant.Query) (*restaurant.Restaurant, error) {
	productIDs := make([]uuid.UUID, len(q.ProductIDs))
	for i, id := range q.ProductIDs {
		productIDs[i] = uuid.UUID(id)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.active, p.id, p.name, p.price
		FROM restaurants r
		LEFT JOIN restaurant_products p
			ON p.restaurant_id = r.id AND p.id = ANY ($2)
		WHERE r.id = $1`,
		uuid.UUID(q.RestaurantID), productIDs,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "query restaurant %s", q.RestaurantID)
	}
	defer rows.Close()

	var info *restaurant.Restaurant
	for rows.Next() {
		var (
			restaurantID uuid.UUID
			active       bool
			productID    *uuid.UUID
			name         *string
			price        *decimal.Decimal
		)
		if err := rows.Scan(&restaurantID, &active, &productID, &name, &price); err != nil {
			return nil, errors.Wrap(err, "scan restaurant row")
		}

		if info == nil {
			info = &restaurant.Restaurant{
				ID:     ident.RestaurantID(restaurantID),
				Active: active,
			}
		}
		if productID != nil {
			info.Products = append(info.Products, restaurant.Product{
				ID:    ident.ProductID(*productID),
				Name:  *name,
				Price: money.New(*price),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate restaurant rows")
	}
	if info == nil {
		return nil, restaurant.ErrNotFound
	}

	return info, nil
}
