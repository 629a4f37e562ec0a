package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "TOO_MANY_REQUESTS", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)))
}

func TestNewBadRequestError(t *testing.T) {
	code := "INVOICE_INVALID"
	fields := []FieldError{{Field: "amount", Error: "must be greater than 0"}}

	err := NewBadRequestError("Validation failed", true, &code, fields, nil)

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "INVOICE_INVALID", err.Code)
	assert.Equal(t, fields, err.Errors)
	assert.True(t, err.Override)

	assert.Equal(t, "BAD_REQUEST", NewBadRequestError("x", false, nil, nil, nil).Code)
}

func TestHTTPError_Is(t *testing.T) {
	wrapped := fmt.Errorf("listing: %w", NewNotFoundError("Invoice not found", false, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHTTPError_WithMessage(t *testing.T) {
	base := NewInternalServerError()
	custom := base.WithMessage("Database Error")

	assert.Equal(t, "Database Error", custom.Message)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), base.Message)
	assert.Equal(t, base.Code, custom.Code)
}

func TestNewRedirectAction(t *testing.T) {
	action := NewRedirectAction("/dashboard/invoices", "Created Invoice.")

	assert.Equal(t, ActionTypeRedirect, action.Type)
	assert.Equal(t, "/dashboard/invoices", action.Value)
}
