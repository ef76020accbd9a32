package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"erpBack/internal/models"
	"erpBack/internal/specification"
)

// errorResponse maps a service error to the status and message sent to the client.
func errorResponse(err error) (int, string) {
	var validation *models.ValidationError
	var protected *specification.ProtectedAttributeError

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message
	case errors.As(err, &protected):
		return http.StatusConflict, protected.Error()
	case errors.Is(err, specification.ErrDuplicateAttribute),
		errors.Is(err, specification.ErrAttributeLimit):
		return http.StatusConflict, err.Error()
	case errors.Is(err, specification.ErrAttributeIndex):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrCategoryNotFound):
		return http.StatusNotFound, "Category not found"
	case errors.Is(err, models.ErrItemNotFound):
		return http.StatusNotFound, "Inventory item not found"
	case errors.Is(err, models.ErrDuplicateCategory):
		return http.StatusConflict, "Category name already exists"
	case errors.Is(err, models.ErrDuplicateSKU):
		return http.StatusConflict, "SKU already exists. Please use a different SKU or leave it empty."
	case errors.Is(err, models.ErrDuplicateItemName):
		return http.StatusConflict, "Item name already exists. Please use a different name."
	case errors.Is(err, models.ErrItemConflict):
		return http.StatusConflict, "This item conflicts with existing data. Please check your inputs."
	case errors.Is(err, models.ErrNegativeStock):
		return http.StatusUnprocessableEntity, "Adjustment would result in negative stock"
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	status, message := errorResponse(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("method", r.Method).Str("uri", r.URL.RequestURI()).Msg("request failed")
	}
	http.Error(w, message, status)
}
