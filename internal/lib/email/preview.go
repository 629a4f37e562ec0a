package email

// PreviewData contains sample template data for local preview and tests.
var PreviewData = map[Template]any{
	TemplateInvoiceSaved: InvoiceSavedData{
		CustomerName: "Lee Robinson",
		InvoiceID:    "3958dc9e-712f-4377-85e9-fec4b6a6442a",
		Amount:       "$157.95",
		Status:       "pending",
		Action:       "created",
	},
}
