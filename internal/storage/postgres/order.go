package postgres

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/feastly/order-service/internal/domain/ident"
	"github.com/feastly/order-service/internal/domain/money"
	"github.com/feastly/order-service/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL. The
// aggregate is stored as one orders row plus one order_items row per line,
// written in a single transaction.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Save persists the order and its items atomically and returns the
// persisted copy carrying the storage-assigned creation timestamp.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var createdAt time.Time
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (
			id, customer_id, restaurant_id, tracking_id, price, order_status,
			failure_messages, address_id, street, postal_code, city
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`,
		uuid.UUID(o.ID), uuid.UUID(o.CustomerID), uuid.UUID(o.RestaurantID),
		uuid.UUID(o.TrackingID), o.Price.Decimal(), string(o.Status),
		failureMessages(o), o.Address.ID, o.Address.Street,
		o.Address.PostalCode, o.Address.City,
	).Scan(&createdAt)
	if err != nil {
		return nil, errors.Wrapf(err, "insert order %s", o.ID)
	}

	for _, item := range o.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, item_id, product_id, price, quantity, sub_total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.UUID(o.ID), item.ID, uuid.UUID(item.ProductID),
			item.Price.Decimal(), item.Quantity, item.SubTotal.Decimal(),
		)
		if err != nil {
			return nil, errors.Wrapf(err, "insert order item %d", item.ID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit order")
	}

	saved := *o
	saved.Items = append([]order.OrderItem(nil), o.Items...)
	saved.CreatedAt = createdAt
	return &saved, nil
}

// FindByTrackingID loads an order and its items by the external tracking id.
// Returns order.ErrNotFound when no order matches.
func (r *OrderRepository) FindByTrackingID(ctx context.Context, trackingID ident.TrackingID) (*order.Order, error) {
	var (
		o            order.Order
		orderID      uuid.UUID
		customerID   uuid.UUID
		restaurantID uuid.UUID
		price        decimal.Decimal
		status       string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, customer_id, restaurant_id, price, order_status,
			failure_messages, address_id, street, postal_code, city, created_at
		FROM orders
		WHERE tracking_id = $1`,
		uuid.UUID(trackingID),
	).Scan(
		&orderID, &customerID, &restaurantID, &price, &status,
		&o.FailureMessages, &o.Address.ID, &o.Address.Street,
		&o.Address.PostalCode, &o.Address.City, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, errors.Wrapf(err, "find order by tracking id %s", trackingID)
	}

	o.ID = ident.OrderID(orderID)
	o.CustomerID = ident.CustomerID(customerID)
	o.RestaurantID = ident.RestaurantID(restaurantID)
	o.TrackingID = trackingID
	o.Price = money.New(price)
	o.Status = order.Status(status)

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orderID ident.OrderID) ([]order.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT item_id, product_id, price, quantity, sub_total
		FROM order_items
		WHERE order_id = $1
		ORDER BY item_id`,
		uuid.UUID(orderID),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "query items for order %s", orderID)
	}
	defer rows.Close()

	var items []order.OrderItem
	for rows.Next() {
		var (
			item      order.OrderItem
			productID uuid.UUID
			price     decimal.Decimal
			subTotal  decimal.Decimal
		)
		if err := rows.Scan(&item.ID, &productID, &price, &item.Quantity, &subTotal); err != nil {
			return nil, errors.Wrap(err, "scan order item")
		}
		item.OrderID = orderID
		item.ProductID = ident.ProductID(productID)
		item.Price = money.New(price)
		item.SubTotal = money.New(subTotal)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate order items")
	}

	return items, nil
}

// failureMessages never returns nil so the TEXT[] column stays non-null.
func failureMessages(o *order.Order) []string {
	if o.FailureMessages == nil {
		return []string{}
	}
	return o.FailureMessages
}
