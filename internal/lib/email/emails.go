package email

import (
	"fmt"
	"strings"
)

// InvoiceSavedData is the data the invoice_saved template expects.
type InvoiceSavedData struct {
	CustomerName string
	InvoiceID    string
	Amount       string
	Status       string
	Action       string
}

// SendInvoiceSavedEmail tells a customer that one of their invoices was
// created or updated.
func (c *Client) SendInvoiceSavedEmail(to string, data InvoiceSavedData) error {
	subject := fmt.Sprintf("Invoice %s", strings.ToLower(data.Action))

	return c.SendEmail(
		to,
		subject,
		TemplateInvoiceSaved,
		data,
	)
}
