package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/invoice-dashboard/internal/server"
)

// AuthService configures the Clerk SDK for the dashboard routes.
type AuthService struct {
	server  *server.Server
	enabled bool
}

// NewAuthService sets the Clerk secret key when one is configured.
func NewAuthService(s *server.Server) *AuthService {
	enabled := s.Config.Auth.SecretKey != ""
	if enabled {
		clerk.SetKey(s.Config.Auth.SecretKey)
	} else {
		s.Logger.Warn().Msg("auth secret key not set, dashboard routes are unauthenticated")
	}
	return &AuthService{
		server:  s,
		enabled: enabled,
	}
}

// Enabled reports whether dashboard routes require a Clerk session.
func (a *AuthService) Enabled() bool {
	return a.enabled
}
