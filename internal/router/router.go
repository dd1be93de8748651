package router

import (
	"net/http"

	"print-kart/internal/auth"
	"print-kart/internal/handler"
	"print-kart/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers bundles the handlers the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Banner   *handler.BannerHandler
	OfferBar *handler.OfferBarHandler
	Cart     *handler.CartHandler
	Favorite *handler.FavoriteHandler
	Order    *handler.OrderHandler
}

// New creates the HTTP router with all routes and middleware configured.
func New(h Handlers, tokens *auth.TokenManager, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Auth
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)

	// Categories
	mux.HandleFunc("GET /api/categories", h.Category.List)
	mux.HandleFunc("GET /api/categories/featured", h.Category.Featured)
	mux.HandleFunc("GET /api/categories/{slug}", h.Category.Show)
	mux.HandleFunc("POST /api/categories", h.Category.Create)
	mux.HandleFunc("PUT /api/categories/{id}", h.Category.Update)
	mux.HandleFunc("DELETE /api/categories/{id}", h.Category.Delete)

	// Products
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("GET /api/products/featured", h.Product.Featured)
	mux.HandleFunc("GET /api/products/new-arrivals", h.Product.NewArrivals)
	mux.HandleFunc("GET /api/products/category/{categorySlug}", h.Product.ByCategory)
	mux.HandleFunc("GET /api/products/{slug}", h.Product.Show)
	mux.HandleFunc("GET /api/products/{slug}/related", h.Product.Related)
	mux.HandleFunc("POST /api/products", h.Product.Create)
	mux.HandleFunc("PUT /api/products/{id}", h.Product.Update)
	mux.HandleFunc("DELETE /api/products/{id}", h.Product.Delete)
	mux.HandleFunc("POST /api/products/{id}/increment-views", h.Product.IncrementViews)

	// Banners
	mux.HandleFunc("GET /api/banners", h.Banner.List)
	mux.HandleFunc("POST /api/banners", h.Banner.Create)
	mux.HandleFunc("PUT /api/banners/{id}", h.Banner.Update)
	mux.HandleFunc("DELETE /api/banners/{id}", h.Banner.Delete)

	// Offer bars
	mux.HandleFunc("GET /api/offer-bars", h.OfferBar.List)
	mux.HandleFunc("POST /api/offer-bars", h.OfferBar.Create)
	mux.HandleFunc("PUT /api/offer-bars/{id}", h.OfferBar.Update)
	mux.HandleFunc("DELETE /api/offer-bars/{id}", h.OfferBar.Delete)

	// Authenticated routes
	authed := http.NewServeMux()
	authed.HandleFunc("POST /api/logout", h.Auth.Logout)
	authed.HandleFunc("GET /api/profile", h.Auth.Profile)

	authed.HandleFunc("GET /api/cart", h.Cart.Index)
	authed.HandleFunc("POST /api/cart/add", h.Cart.Add)
	authed.HandleFunc("PUT /api/cart/update/{id}", h.Cart.Update)
	authed.HandleFunc("DELETE /api/cart/remove/{id}", h.Cart.Remove)
	authed.HandleFunc("DELETE /api/cart/clear", h.Cart.Clear)
	authed.HandleFunc("GET /api/cart/count", h.Cart.Count)
	authed.HandleFunc("GET /api/cart/total", h.Cart.Total)

	authed.HandleFunc("GET /api/favorites", h.Favorite.List)
	authed.HandleFunc("POST /api/favorites/add", h.Favorite.Add)
	authed.HandleFunc("POST /api/favorites/toggle", h.Favorite.Toggle)
	authed.HandleFunc("DELETE /api/favorites/remove/{productId}", h.Favorite.Remove)
	authed.HandleFunc("GET /api/favorites/check/{productId}", h.Favorite.Check)
	authed.HandleFunc("GET /api/favorites/count", h.Favorite.Count)
	authed.HandleFunc("DELETE /api/favorites/clear", h.Favorite.Clear)

	authed.HandleFunc("GET /api/orders", h.Order.Index)
	authed.HandleFunc("POST /api/orders", h.Order.Store)
	authed.HandleFunc("POST /api/orders/raise-ticket", h.Order.RaiseTicket)
	authed.HandleFunc("GET /api/orders/{id}", h.Order.Show)

	requireAuth := middleware.RequireAuth(tokens, logger)
	for _, prefix := range []string{
		"/api/logout", "/api/profile", "/api/cart", "/api/cart/",
		"/api/favorites", "/api/favorites/", "/api/orders", "/api/orders/",
	} {
		mux.Handle(prefix, requireAuth(authed))
	}

	// Apply middleware in order: Recovery -> Logging -> CORS
	var root http.Handler = mux
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	return root
}
