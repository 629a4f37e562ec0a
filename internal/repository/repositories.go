package repository

import (
	"github.com/deppfellow/invoice-dashboard/internal/server"
)

// Repositories is a container for all repository instances, built once
// and handed to the service layer.
type Repositories struct {
	Invoices *InvoiceRepository
}

// NewRepositories constructs the repository container on the server's
// connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Invoices: NewInvoiceRepository(s.DB.Pool),
	}
}
