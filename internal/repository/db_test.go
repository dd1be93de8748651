package repository

import (
	"context"
	"testing"
	"time"

	"print-kart/db"
	"print-kart/internal/database"
	"print-kart/internal/model"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a PostgreSQL testcontainer, applies the embedded schema
// and returns a pool with decimal support registered.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	require.NoError(t, err)
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool, db.Schema))
	return pool
}

// seedUser inserts a user and returns its ID.
func seedUser(t *testing.T, pool *pgxpool.Pool, email string) int64 {
	t.Helper()

	repo := NewUserRepository(pool, zerolog.Nop())
	user := &model.User{Name: "Test User", Email: email, PasswordHash: "irrelevant"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user.ID
}

// seedProduct inserts an active product and returns it.
func seedProduct(t *testing.T, pool *pgxpool.Pool, name, price string, stock int) *model.Product {
	t.Helper()

	repo := NewProductRepository(pool, zerolog.Nop())
	product := &model.Product{
		Name:          name,
		Slug:          model.Slugify(name),
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		StockStatus:   model.StockStatusInStock,
		IsActive:      true,
	}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}
