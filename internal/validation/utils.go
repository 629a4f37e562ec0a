package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/deppfellow/invoice-dashboard/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by payload types that know how to validate
// themselves, usually by calling Struct on their tagged fields.
type Validatable interface {
	Validate() error
}

// Messenger lets a payload replace the generic message for a field/tag
// pair. Forms use it to speak the wording of their UI.
type Messenger interface {
	ValidationMessage(field, tag string) (string, bool)
}

// CustomValidationError is a validation issue that cannot be expressed with
// validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// Bind populates payload from the request (path params, query params for
// GET/DELETE, and the body). Binding errors become a 400 without leaking
// binder internals.
func Bind(c echo.Context, payload any) error {
	if err := c.Bind(payload); err != nil {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if msg, ok := echoErr.Message.(string); ok {
				return errs.NewBadRequestError(msg, false, nil, nil, nil)
			}
		}
		return errs.NewBadRequestError("Invalid request body", false, nil, nil, nil)
	}
	return nil
}

// BindAndValidate binds the request into payload and validates it,
// returning a 400 *errs.HTTPError carrying field errors on failure.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := Bind(c, payload); err != nil {
		return err
	}

	if err := payload.Validate(); err != nil {
		msg, fieldErrors := extractValidationError(err, payload)
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// FieldErrors converts a validation error into field name -> messages.
// It returns nil for errors that are not validation errors.
func FieldErrors(err error, payload any) map[string][]string {
	messenger, _ := payload.(Messenger)

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		out := make(map[string][]string, len(custom))
		for _, e := range custom {
			out[e.Field] = append(out[e.Field], e.Message)
		}
		return out
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	out := make(map[string][]string, len(validationErrors))
	for _, fe := range validationErrors {
		field := fe.Field()
		msg := defaultMessage(fe)
		if messenger != nil {
			if m, ok := messenger.ValidationMessage(field, fe.Tag()); ok {
				msg = m
			}
		}
		out[field] = append(out[field], msg)
	}
	return out
}

// extractValidationError flattens FieldErrors into the errs.FieldError
// list used by JSON error responses, sorted by field for stable output.
func extractValidationError(err error, payload any) (string, []errs.FieldError) {
	byField := FieldErrors(err, payload)
	if byField == nil {
		return "Validation failed: " + err.Error(), nil
	}

	fields := make([]string, 0, len(byField))
	for field := range byField {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var fieldErrors []errs.FieldError
	for _, field := range fields {
		for _, msg := range byField[field] {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: field, Error: msg})
		}
	}
	return "Validation failed", fieldErrors
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "uuid", "uuid4":
		return "must be a valid UUID"

	case "decimal":
		return "must be a number"

	case "positive_amount":
		return "must be greater than 0"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
	}
}
