package handler

import (
	"net/http"
	"strconv"
	"strings"

	"print-kart/internal/middleware"
	"print-kart/internal/model"
	"print-kart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order placement, history and complaint requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Index handles GET /api/orders.
func (h *OrderHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	orders, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, orders)
}

// Store handles POST /api/orders.
func (h *OrderHandler) Store(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req model.PlaceOrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	order, err := h.service.Place(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, order)
}

// Show handles GET /api/orders/{id}.
func (h *OrderHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "Invalid order ID")
		return
	}

	order, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, order)
}

// RaiseTicket handles POST /api/orders/raise-ticket. The payload is multipart
// form data with up to five complaint images under the images field.
func (h *OrderHandler) RaiseTicket(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req model.RaiseTicketRequest
	var images []service.Upload

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			writeBadRequest(w, "Invalid multipart form")
			return
		}

		if v := r.FormValue("order_id"); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				writeBadRequest(w, "Invalid order ID")
				return
			}
			req.OrderID = id
		}
		req.ProductID, _ = strconv.ParseInt(r.FormValue("product_id"), 10, 64)
		req.IssueType = r.FormValue("issue_type")
		req.Description = r.FormValue("description")

		if r.MultipartForm != nil {
			for _, header := range r.MultipartForm.File["images"] {
				file, err := header.Open()
				if err != nil {
					writeBadRequest(w, "Invalid image upload")
					return
				}
				defer file.Close()
				images = append(images, service.Upload{Filename: header.Filename, Content: file})
			}
		}
	} else {
		var body struct {
			OrderID     string `json:"order_id"`
			ProductID   int64  `json:"product_id"`
			IssueType   string `json:"issue_type"`
			Description string `json:"description"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeBadRequest(w, "Invalid request body")
			return
		}
		if body.OrderID != "" {
			id, err := uuid.Parse(body.OrderID)
			if err != nil {
				writeBadRequest(w, "Invalid order ID")
				return
			}
			req.OrderID = id
		}
		req.ProductID = body.ProductID
		req.IssueType = body.IssueType
		req.Description = body.Description
	}

	complaint, err := h.service.RaiseTicket(r.Context(), userID, &req, images)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, complaint)
}
