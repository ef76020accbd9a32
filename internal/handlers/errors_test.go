package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"erpBack/internal/models"
	"erpBack/internal/specification"
)

func TestErrorResponse(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", models.NewValidationError("name", "Item name is required"), http.StatusBadRequest, "Item name is required"},
		{"protected", &specification.ProtectedAttributeError{Attribute: "Brand", Op: "remove"}, http.StatusConflict, "Brand is a default attribute and cannot be removed"},
		{"duplicate attribute", specification.ErrDuplicateAttribute, http.StatusConflict, "attribute already added"},
		{"attribute index", specification.ErrAttributeIndex, http.StatusBadRequest, "attribute index out of range"},
		{"category missing", fmt.Errorf("load: %w", models.ErrCategoryNotFound), http.StatusNotFound, "Category not found"},
		{"item missing", models.ErrItemNotFound, http.StatusNotFound, "Inventory item not found"},
		{"duplicate category", models.ErrDuplicateCategory, http.StatusConflict, "Category name already exists"},
		{"duplicate sku", models.ErrDuplicateSKU, http.StatusConflict, "SKU already exists. Please use a different SKU or leave it empty."},
		{"duplicate name", models.ErrDuplicateItemName, http.StatusConflict, "Item name already exists. Please use a different name."},
		{"conflict", models.ErrItemConflict, http.StatusConflict, "This item conflicts with existing data. Please check your inputs."},
		{"negative stock", models.ErrNegativeStock, http.StatusUnprocessableEntity, "Adjustment would result in negative stock"},
		{"unexpected", errors.New("connection refused"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, message := errorResponse(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, message)
		})
	}
}
