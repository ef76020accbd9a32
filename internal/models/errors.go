package models

import (
	"errors"
	"fmt"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrItemNotFound      = errors.New("inventory item not found")
	ErrDuplicateCategory = errors.New("models: duplicate category name")
	ErrDuplicateSKU      = errors.New("models: duplicate sku")
	ErrDuplicateItemName = errors.New("models: duplicate item name")
	ErrItemConflict      = errors.New("models: item conflicts with existing data")
	ErrNegativeStock     = errors.New("adjustment would result in negative stock")
)

// ErrInvalidInput matches every *ValidationError under errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError carries a message that can be shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
