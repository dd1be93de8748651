// Package integration holds end-to-end tests that drive the HTTP API against
// a real PostgreSQL instance.
package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"print-kart/db"
	"print-kart/internal/auth"
	"print-kart/internal/database"
	"print-kart/internal/events"
	"print-kart/internal/handler"
	"print-kart/internal/model"
	"print-kart/internal/repository"
	"print-kart/internal/router"
	"print-kart/internal/service"
	"print-kart/internal/storage"

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

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, applies the embedded schema
// and returns a pool with decimal support registered.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	return &TestDB{Container: pgContainer, Pool: pool, ConnStr: connStr}
}

// testApp bundles the wired application with direct access to the pieces the
// tests poke at.
type testApp struct {
	Handler     http.Handler
	Tokens      *auth.TokenManager
	ProductRepo repository.ProductRepository
	CartRepo    repository.CartRepository
	OrderSvc    service.OrderService
	CartSvc     service.CartService
	AuthSvc     service.AuthService
}

// setupTestApp wires the full application against the test database, with
// local file storage and caching and eventing disabled.
func setupTestApp(t *testing.T, testDB *TestDB) *testApp {
	t.Helper()
	logger := zerolog.Nop()

	store := storage.NewLocalStore(t.TempDir(), logger)
	productCache := repository.NewNopProductCache()
	publisher := events.NewNopPublisher()

	userRepo := repository.NewUserRepository(testDB.Pool, logger)
	categoryRepo := repository.NewCategoryRepository(testDB.Pool, logger)
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	cartRepo := repository.NewCartRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	favoriteRepo := repository.NewFavoriteRepository(testDB.Pool, logger)
	bannerRepo := repository.NewBannerRepository(testDB.Pool, logger)
	offerBarRepo := repository.NewOfferBarRepository(testDB.Pool, logger)
	complaintRepo := repository.NewComplaintRepository(testDB.Pool, logger)

	tokens := auth.NewTokenManager("integration-test-secret", time.Hour)
	authService := service.NewAuthService(userRepo, tokens, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	productService := service.NewProductService(productRepo, categoryRepo, productCache, logger)
	cartService := service.NewCartService(cartRepo, productRepo, store, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, cartRepo, complaintRepo, store, publisher, logger)
	favoriteService := service.NewFavoriteService(favoriteRepo, productRepo, logger)
	bannerService := service.NewBannerService(bannerRepo, store, "/storage", logger)
	offerBarService := service.NewOfferBarService(offerBarRepo, logger)

	mux := router.New(router.Handlers{
		Auth:     handler.NewAuthHandler(authService, logger),
		Category: handler.NewCategoryHandler(categoryService, logger),
		Product:  handler.NewProductHandler(productService, logger),
		Banner:   handler.NewBannerHandler(bannerService, logger),
		OfferBar: handler.NewOfferBarHandler(offerBarService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Favorite: handler.NewFavoriteHandler(favoriteService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
	}, tokens, logger)

	return &testApp{
		Handler:     mux,
		Tokens:      tokens,
		ProductRepo: productRepo,
		CartRepo:    cartRepo,
		OrderSvc:    orderService,
		CartSvc:     cartService,
		AuthSvc:     authService,
	}
}

// seedProduct inserts an active product and returns it.
func seedProduct(t *testing.T, repo repository.ProductRepository, name, price string, stock int) *model.Product {
	t.Helper()

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

// registerUser creates a user through the auth service and returns its ID and
// a bearer token.
func registerUser(t *testing.T, app *testApp, email string) (int64, string) {
	t.Helper()

	resp, err := app.AuthSvc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Integration Tester",
		Email:    email,
		Password: "integration-pass",
	})
	require.NoError(t, err)
	return resp.User.ID, resp.Token
}
