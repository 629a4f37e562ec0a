package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/service"
	"github.com/deppfellow/invoice-dashboard/internal/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

var views = template.Must(template.New("").Funcs(template.FuncMap{
	"currency": validation.FormatMinorUnits,
	"date":     func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"paid":     func(s model.InvoiceStatus) bool { return s == model.InvoiceStatusPaid },
	"add":      func(a, b int) int { return a + b },
}).ParseFS(templateFS, "templates/*.html"))

func renderInvoices(w io.Writer, page *service.InvoicePage) error {
	if err := views.ExecuteTemplate(w, "invoices.html", page); err != nil {
		return fmt.Errorf("render invoices: %w", err)
	}
	return nil
}
