package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nDmitry/storefront/internal/app"
	"github.com/nDmitry/storefront/internal/entity"
	"github.com/nDmitry/storefront/internal/httperr"
)

// errorBody is the JSON shape of every error response.
// Details carries the untranslated reason for client-side errors.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeError responds with a localized error message. Upstream failures keep their
// normalized message; 4xx statuses pass through, everything else becomes 502.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorResponse(r, err)

	app.Logger().Error("Request error", "error", err, "status", status, "path", r.URL.Path)

	writeJSON(w, status, body)
}

func errorResponse(r *http.Request, err error) (int, errorBody) {
	var herr *httperr.Error

	lang := httperr.LanguageFrom(r.Context())

	switch {
	case errors.As(err, &herr):
		if herr.Status >= http.StatusBadRequest && herr.Status < http.StatusInternalServerError {
			return herr.Status, errorBody{Error: herr.Message}
		}

		return http.StatusBadGateway, errorBody{Error: herr.Message}
	case errors.Is(err, entity.ErrInvalidParam):
		return http.StatusBadRequest, errorBody{Error: httperr.StatusMessage(http.StatusBadRequest, lang), Details: err.Error()}
	case errors.Is(err, entity.ErrGone):
		return http.StatusGone, errorBody{Error: httperr.GoneMessage(lang), Details: err.Error()}
	default:
		return http.StatusBadGateway, errorBody{Error: httperr.StatusMessage(http.StatusBadGateway, lang)}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		handleBadResponse(err, v)
	}
}

func handleBadResponse(err error, resp any) {
	app.Logger().Error(
		"failed to encode a response",
		"error", err,
		"response", resp,
	)
}
