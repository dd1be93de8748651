package handler

import (
	"net/http"

	"print-kart/internal/middleware"
	"print-kart/internal/service"

	"github.com/rs/zerolog"
)

// FavoriteHandler handles favourites HTTP requests.
type FavoriteHandler struct {
	service service.FavoriteService
	logger  zerolog.Logger
}

// NewFavoriteHandler creates a new favorites handler.
func NewFavoriteHandler(service service.FavoriteService, logger zerolog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		logger:  logger.With().Str("handler", "favorite").Logger(),
	}
}

type favoriteRequest struct {
	ProductID int64 `json:"product_id"`
}

// List handles GET /api/favorites.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	products, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, products)
}

// Add handles POST /api/favorites/add.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req favoriteRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.Add(r.Context(), userID, req.ProductID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusCreated, "Added to favorites")
}

// Toggle handles POST /api/favorites/toggle.
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req favoriteRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	favorited, err := h.service.Toggle(r.Context(), userID, req.ProductID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, map[string]bool{"favorited": favorited})
}

// Remove handles DELETE /api/favorites/remove/{productId}.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	productID, err := pathID(r, "productId")
	if err != nil {
		writeBadRequest(w, "Invalid product ID")
		return
	}

	if err := h.service.Remove(r.Context(), userID, productID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Removed from favorites")
}

// Check handles GET /api/favorites/check/{productId}.
func (h *FavoriteHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	productID, err := pathID(r, "productId")
	if err != nil {
		writeBadRequest(w, "Invalid product ID")
		return
	}

	favorited, err := h.service.Check(r.Context(), userID, productID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, map[string]bool{"favorited": favorited})
}

// Count handles GET /api/favorites/count.
func (h *FavoriteHandler) Count(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	count, err := h.service.Count(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, map[string]int64{"count": count})
}

// Clear handles DELETE /api/favorites/clear.
func (h *FavoriteHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	if err := h.service.Clear(r.Context(), userID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Favorites cleared")
}
