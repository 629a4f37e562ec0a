// Package validation contains the logic for validating request data.
//
// It uses the `validator` library to enforce rules defined in struct tags,
// registers the money rules used by invoice forms, and extracts validation
// errors into shapes the client can understand.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator. validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = New()

// New builds a validator that reports fields by their form/json name and
// knows the custom money tags:
//
//   - decimal:         the string parses as a decimal amount that fits in minor units
//   - positive_amount: the amount is at least one cent once rounded
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "query", "json"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	// Registration only fails for empty tag names or nil funcs.
	_ = v.RegisterValidation("decimal", isDecimal)
	_ = v.RegisterValidation("positive_amount", isPositiveAmount)

	return v
}

// Struct validates s with the shared validator.
func Struct(s any) error {
	return validate.Struct(s)
}

func isDecimal(fl validator.FieldLevel) bool {
	_, err := ToMinorUnits(fl.Field().String())
	return err == nil
}

func isPositiveAmount(fl validator.FieldLevel) bool {
	cents, err := ToMinorUnits(fl.Field().String())
	if err != nil {
		return false
	}
	return cents > 0
}
