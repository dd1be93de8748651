package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"print-kart/internal/model"

	"github.com/rs/zerolog"
)

// Response is the envelope every endpoint replies with.
type Response struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; an encode failure cannot be reported
	// to the client anymore.
	_ = json.NewEncoder(w).Encode(payload)
}

// writeData writes a successful envelope carrying data.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

// writeMessage writes a successful envelope carrying only a message.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: true, Message: message})
}

// writeBadRequest writes a failure envelope for malformed input.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: message})
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathID parses the named integer path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

// writeServiceError translates service errors into the envelope: validation
// failures map to 422 with a field error map, missing resources to 404,
// business-rule violations to 400 and everything else to a generic 500 whose
// detail stays server side.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusUnprocessableEntity, Response{
			Success: false,
			Message: "Validation failed",
			Errors:  vErr.Fields,
		})
		return
	}

	var nfErr *model.NotFoundError
	if errors.As(err, &nfErr) {
		writeJSON(w, http.StatusNotFound, Response{Success: false, Message: nfErr.Error()})
		return
	}

	var dErr *model.DomainError
	if errors.As(err, &dErr) {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: dErr.Message})
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, Response{Success: false, Message: "Something went wrong"})
}
