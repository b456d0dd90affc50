// Command seed-db populates the database with demo customers and restaurants
// so the API can be exercised locally and in integration tests.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/feastly/order-service/internal/storage/postgres"
)

type customerSeed struct {
	ID        uuid.UUID
	Username  string
	FirstName string
	LastName  string
}

type productSeed struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
}

type restaurantSeed struct {
	ID       uuid.UUID
	Name     string
	Active   bool
	Products []productSeed
}

var customers = []customerSeed{
	{
		ID:        uuid.MustParse("d215b5f8-0249-4dc5-89a3-51fd148cfb41"),
		Username:  "user_1",
		FirstName: "Ada",
		LastName:  "Brown",
	},
	{
		ID:        uuid.MustParse("d215b5f8-0249-4dc5-89a3-51fd148cfb42"),
		Username:  "user_2",
		FirstName: "Noah",
		LastName:  "Clarke",
	},
}

var restaurants = []restaurantSeed{
	{
		ID:     uuid.MustParse("d215b5f8-0249-4dc5-89a3-51fd148cfb45"),
		Name:   "Golden Wok",
		Active: true,
		Products: []productSeed{
			{
				ID:    uuid.MustParse("d215b5f8-0249-4dc5-89a3-51fd148cfb47"),
				Name:  "Kung Pao Chicken",
				Price: decimal.RequireFromString("50.00"),
			},
			{
				ID:    uuid.MustParse("d215b5f8-0249-4dc5-89a3-51fd148cfb48"),
				Name:  "Spring Rolls",
				Price: decimal.RequireFromString("25.00"),
			},
		},
	},
	{
		ID:     uuid.MustParse("d215b5f8-0249-4dc5-89a3-51fd148cfb50"),
		Name:   "Closed Kitchen",
		Active: false,
		Products: []productSeed{
			{
				ID:    uuid.MustParse("d215b5f8-0249-4dc5-89a3-51fd148cfb51"),
				Name:  "Mystery Meal",
				Price: decimal.RequireFromString("10.00"),
			},
		},
	},
}

func main() {
	var databaseURL string

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL string) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return errors.Wrap(seedCustomers(ctx, pool), "seed customers")
	})
	g.Go(func() error {
		return errors.Wrap(seedRestaurants(ctx, pool), "seed restaurants")
	})
	return g.Wait()
}

func seedCustomers(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("upserting customers", slog.Int("count", len(customers)))

	for _, c := range customers {
		_, err := pool.Exec(ctx, `
			INSERT INTO customers (id, username, first_name, last_name)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE
			SET username = EXCLUDED.username,
			    first_name = EXCLUDED.first_name,
			    last_name = EXCLUDED.last_name`,
			c.ID, c.Username, c.FirstName, c.LastName,
		)
		if err != nil {
			return errors.Wrapf(err, "upsert customer %s", c.ID)
		}

		slog.Info("upserted customer", slog.String("id", c.ID.String()), slog.String("username", c.Username))
	}

	return nil
}

func seedRestaurants(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("upserting restaurants", slog.Int("count", len(restaurants)))

	for _, r := range restaurants {
		_, err := pool.Exec(ctx, `
			INSERT INTO restaurants (id, name, active)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name,
			    active = EXCLUDED.active`,
			r.ID, r.Name, r.Active,
		)
		if err != nil {
			return errors.Wrapf(err, "upsert restaurant %s", r.ID)
		}

		for _, p := range r.Products {
			_, err := pool.Exec(ctx, `
				INSERT INTO restaurant_products (id, restaurant_id, name, price)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (id) DO UPDATE
				SET restaurant_id = EXCLUDED.restaurant_id,
				    name = EXCLUDED.name,
				    price = EXCLUDED.price`,
				p.ID, r.ID, p.Name, p.Price,
			)
			if err != nil {
				return errors.Wrapf(err, "upsert product %s", p.ID)
			}
		}

		slog.Info("upserted restaurant",
			slog.String("id", r.ID.String()),
			slog.String("name", r.Name),
			slog.Int("products", len(r.Products)),
		)
	}

	return nil
}
