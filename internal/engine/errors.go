package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the engine packages.
var (
	// ErrUnsupportedCategory indicates a request named a category no
	// engine is registered for. Fatal to the call, never retried.
	ErrUnsupportedCategory = errors.New("unsupported category")

	// ErrInvalidRequest indicates a generation request failed structural
	// validation before dispatch.
	ErrInvalidRequest = errors.New("invalid generation request")
)

// UnsupportedCategoryError reports which category failed to resolve.
type UnsupportedCategoryError struct {
	Category string
}

func (e *UnsupportedCategoryError) Error() string {
	return fmt.Sprintf("unsupported category %q", e.Category)
}

func (e *UnsupportedCategoryError) Unwrap() error {
	return ErrUnsupportedCategory
}

// NewUnsupportedCategoryError creates an error for an unroutable category.
func NewUnsupportedCategoryError(category string) *UnsupportedCategoryError {
	return &UnsupportedCategoryError{Category: category}
}

// RequestError wraps a field-level problem with a generation request.
type RequestError struct {
	Field  string
	Reason string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request field %s: %s", e.Field, e.Reason)
}

func (e *RequestError) Unwrap() error {
	return ErrInvalidRequest
}

// IsUnsupportedCategory reports whether err stems from category routing.
func IsUnsupportedCategory(err error) bool {
	return errors.Is(err, ErrUnsupportedCategory)
}

// IsInvalidRequest reports whether err stems from request validation.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}
