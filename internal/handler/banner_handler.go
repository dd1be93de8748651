package handler

import (
	"errors"
	"net/http"
	"strconv"

	"print-kart/internal/model"
	"print-kart/internal/service"

	"github.com/rs/zerolog"
)

// BannerHandler handles banner HTTP requests.
type BannerHandler struct {
	service service.BannerService
	logger  zerolog.Logger
}

// NewBannerHandler creates a new banner handler.
func NewBannerHandler(service service.BannerService, logger zerolog.Logger) *BannerHandler {
	return &BannerHandler{
		service: service,
		logger:  logger.With().Str("handler", "banner").Logger(),
	}
}

// List handles GET /api/banners. Supports type and active filters.
func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	activeOnly := q.Get("active") == "true" || q.Get("active") == "1"

	banners, err := h.service.List(r.Context(), q.Get("type"), activeOnly)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, banners)
}

// Create handles POST /api/banners (multipart with an image file).
func (h *BannerHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, image, cleanup, ok := h.parseBannerForm(w, r)
	if !ok {
		return
	}
	defer cleanup()

	banner, err := h.service.Create(r.Context(), req, image)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, banner)
}

// Update handles PUT /api/banners/{id} (multipart, image optional).
func (h *BannerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "Invalid banner ID")
		return
	}

	req, image, cleanup, ok := h.parseBannerForm(w, r)
	if !ok {
		return
	}
	defer cleanup()

	banner, err := h.service.Update(r.Context(), id, req, image)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, banner)
}

// Delete handles DELETE /api/banners/{id}.
func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "Invalid banner ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Banner deleted")
}

// parseBannerForm reads the multipart banner fields and optional image. The
// returned cleanup closes the image file; ok is false when a response has
// already been written.
func (h *BannerHandler) parseBannerForm(w http.ResponseWriter, r *http.Request) (*model.BannerRequest, *service.Upload, func(), bool) {
	noop := func() {}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeBadRequest(w, "Invalid multipart form")
		return nil, nil, noop, false
	}

	req := &model.BannerRequest{
		Title:      r.FormValue("title"),
		ButtonText: r.FormValue("button_text"),
		Type:       r.FormValue("type"),
		Position:   r.FormValue("position"),
	}
	req.Subtitle = optionalFormValue(r, "subtitle")
	req.Description = optionalFormValue(r, "description")
	req.PriceText = optionalFormValue(r, "price_text")
	req.ButtonLink = optionalFormValue(r, "button_link")
	req.SortOrder, _ = strconv.Atoi(r.FormValue("sort_order"))
	req.IsActive = r.FormValue("is_active") != "false" && r.FormValue("is_active") != "0"

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return req, nil, noop, true
		}
		writeBadRequest(w, "Invalid image upload")
		return nil, nil, noop, false
	}

	return req, &service.Upload{Filename: header.Filename, Content: file}, func() { file.Close() }, true
}

// optionalFormValue returns a pointer to the named form value, nil when the
// field was not sent.
func optionalFormValue(r *http.Request, name string) *string {
	if vs, ok := r.MultipartForm.Value[name]; ok && len(vs) > 0 {
		return &vs[0]
	}
	return nil
}
