package service

import (
	"github.com/deppfellow/invoice-dashboard/internal/validation"
)

// InvoiceForm is the create/edit invoice form as submitted by the browser.
// Amount is a dollar string; it is converted to cents only after
// validation passed.
type InvoiceForm struct {
	CustomerID string `form:"customerId" json:"customerId" validate:"required"`
	Amount     string `form:"amount" json:"amount" validate:"decimal,positive_amount"`
	Status     string `form:"status" json:"status" validate:"required,oneof=pending paid"`
}

func (f *InvoiceForm) Validate() error {
	return validation.Struct(f)
}

// ValidationMessage replaces validator wording with the form's own.
func (f *InvoiceForm) ValidationMessage(field, tag string) (string, bool) {
	switch field {
	case "customerId":
		return "Please select a customer.", true
	case "amount":
		if tag == "decimal" {
			return "Please enter a valid amount.", true
		}
		return "Please enter an amount greater than $0.", true
	case "status":
		return "Please select an invoice status.", true
	}
	return "", false
}

// FieldErrors validates the form and returns the messages per field, or
// nil when the form is valid.
func (f *InvoiceForm) FieldErrors() map[string][]string {
	err := f.Validate()
	if err == nil {
		return nil
	}
	if fieldErrors := validation.FieldErrors(err, f); fieldErrors != nil {
		return fieldErrors
	}
	return map[string][]string{"": {err.Error()}}
}

// Cents returns the validated amount in cents.
func (f *InvoiceForm) Cents() int64 {
	cents, _ := validation.ToMinorUnits(f.Amount)
	return cents
}
