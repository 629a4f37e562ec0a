// Package model holds the invoice dashboard's domain types shared by the
// repository, service and handler layers.
package model

import "time"

// InvoiceStatus is the closed set of invoice states.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Valid reports whether s is a known status.
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

// Invoice is a row of the invoices table. Amount is in cents.
type Invoice struct {
	ID         string
	CustomerID string
	Amount     int64
	Status     InvoiceStatus
	Date       time.Time
}

// InvoiceRow is an invoice joined with its customer, as shown on the
// listing page.
type InvoiceRow struct {
	ID       string        `json:"id"`
	Amount   int64         `json:"amount"`
	Date     time.Time     `json:"date"`
	Status   InvoiceStatus `json:"status"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	ImageURL string        `json:"imageUrl"`
}

// Customer is a row of the customers table.
type Customer struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
}

// DateLayout is how invoice dates are written to the database.
const DateLayout = "2006-01-02"
