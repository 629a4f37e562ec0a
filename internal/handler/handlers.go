// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, binds forms and query strings, calls the
// appropriate service, and turns the result into an HTTP response.
package handler

import (
	"github.com/deppfellow/invoice-dashboard/internal/server"
	"github.com/deppfellow/invoice-dashboard/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Health   *HealthHandler
	Invoices *InvoiceHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Invoices: NewInvoiceHandler(s, services.Invoices),
	}
}
