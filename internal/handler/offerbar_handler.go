package handler

import (
	"net/http"

	"print-kart/internal/model"
	"print-kart/internal/service"

	"github.com/rs/zerolog"
)

// OfferBarHandler handles offer bar HTTP requests.
type OfferBarHandler struct {
	service service.OfferBarService
	logger  zerolog.Logger
}

// NewOfferBarHandler creates a new offer bar handler.
func NewOfferBarHandler(service service.OfferBarService, logger zerolog.Logger) *OfferBarHandler {
	return &OfferBarHandler{
		service: service,
		logger:  logger.With().Str("handler", "offer_bar").Logger(),
	}
}

// List handles GET /api/offer-bars. By default only bars active within their
// date window are returned; all=true lists everything.
func (h *OfferBarHandler) List(w http.ResponseWriter, r *http.Request) {
	all := r.URL.Query().Get("all") == "true" || r.URL.Query().Get("all") == "1"

	bars, err := h.service.List(r.Context(), !all)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, bars)
}

// Create handles POST /api/offer-bars.
func (h *OfferBarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OfferBarRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	bar, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, bar)
}

// Update handles PUT /api/offer-bars/{id}.
func (h *OfferBarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "Invalid offer bar ID")
		return
	}

	var req model.OfferBarRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	bar, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, bar)
}

// Delete handles DELETE /api/offer-bars/{id}.
func (h *OfferBarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "Invalid offer bar ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Offer bar deleted")
}
