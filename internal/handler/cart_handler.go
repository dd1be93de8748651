package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"print-kart/internal/middleware"
	"print-kart/internal/model"
	"print-kart/internal/service"

	"github.com/rs/zerolog"
)

const maxUploadMemory = 32 << 20

// CartHandler handles cart HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Index handles GET /api/cart.
func (h *CartHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	summary, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, summary)
}

// Add handles POST /api/cart/add. The payload is JSON, or multipart form data
// when front/back design files accompany the line.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req model.AddToCartRequest
	var front, back *service.Upload
	var closers []multipart.File

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			writeBadRequest(w, "Invalid multipart form")
			return
		}

		req.ProductID, _ = strconv.ParseInt(r.FormValue("product_id"), 10, 64)
		req.Quantity, _ = strconv.Atoi(r.FormValue("quantity"))
		if attrs := r.FormValue("selected_attributes"); attrs != "" {
			if err := json.Unmarshal([]byte(attrs), &req.SelectedAttributes); err != nil {
				writeBadRequest(w, "Invalid selected_attributes")
				return
			}
		}

		for _, field := range []struct {
			name   string
			target **service.Upload
		}{
			{"front_design", &front},
			{"back_design", &back},
		} {
			file, header, err := r.FormFile(field.name)
			if err != nil {
				if errors.Is(err, http.ErrMissingFile) {
					continue
				}
				writeBadRequest(w, "Invalid "+field.name+" upload")
				return
			}
			closers = append(closers, file)
			*field.target = &service.Upload{Filename: header.Filename, Content: file}
		}
		defer func() {
			for _, f := range closers {
				f.Close()
			}
		}()
	} else {
		if err := decodeBody(r, &req); err != nil {
			writeBadRequest(w, "Invalid request body")
			return
		}
	}

	line, err := h.service.Add(r.Context(), userID, &req, front, back)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, line)
}

// Update handles PUT /api/cart/update/{id}.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "Invalid cart item ID")
		return
	}

	var req model.UpdateQuantityRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	line, err := h.service.UpdateQuantity(r.Context(), userID, id, req.Quantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, line)
}

// Remove handles DELETE /api/cart/remove/{id}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "Invalid cart item ID")
		return
	}

	if err := h.service.Remove(r.Context(), userID, id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Item removed from cart")
}

// Clear handles DELETE /api/cart/clear.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	if err := h.service.Clear(r.Context(), userID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Cart cleared")
}

// Count handles GET /api/cart/count.
func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	count, err := h.service.Count(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, map[string]int64{"count": count})
}

// Total handles GET /api/cart/total.
func (h *CartHandler) Total(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	total, err := h.service.Total(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, map[string]any{"total": total})
}
