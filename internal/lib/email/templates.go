package email

import (
	"embed"
	"html/template"
)

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateInvoiceSaved corresponds to templates/invoice_saved.html
	TemplateInvoiceSaved Template = "invoice_saved"
)

func (t Template) file() string {
	return string(t) + ".html"
}

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))
