package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMatchesInvalidInput(t *testing.T) {
	err := fmt.Errorf("save item: %w", NewValidationError("name", "Item name is required"))

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, "validation failed for field name: Item name is required", errors.Unwrap(err).Error())
	assert.Equal(t, "validation failed: bad", NewValidationError("", "bad").Error())
}
