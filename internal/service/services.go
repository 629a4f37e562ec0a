// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives bound form data from the handler, validates it, performs
// business operations, and calls repository methods to interact
// with the data.
package service

import (
	"github.com/deppfellow/invoice-dashboard/internal/repository"
	"github.com/deppfellow/invoice-dashboard/internal/server"
)

type Services struct {
	Auth     *AuthService
	Invoices *InvoiceService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)

	var notifier Notifier
	if s.Job != nil {
		s.Job.InitHandlers(s.Config, s.Logger, repos.Invoices)
		notifier = s.Job
	}

	return &Services{
		Auth:     authService,
		Invoices: NewInvoiceService(repos.Invoices, s.PageCache, notifier, s.Logger),
	}, nil
}
