// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/deppfellow/invoice-dashboard/internal/handler"
	"github.com/deppfellow/invoice-dashboard/internal/middleware"
	"github.com/deppfellow/invoice-dashboard/internal/server"
	"github.com/deppfellow/invoice-dashboard/internal/service"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain and
// every route.
//
// Order matters: the request id and New Relic transaction must exist
// before the context logger is built, and the request logger must run
// inside it to pick that logger up.
func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	dashboard := router.Group("/dashboard")
	api := router.Group("/api")
	if services.Auth.Enabled() {
		dashboard.Use(middlewares.Auth.RequireAuth, middlewares.ContextEnhancer.EnhanceContext())
		api.Use(middlewares.Auth.RequireAuth, middlewares.ContextEnhancer.EnhanceContext())
	}

	registerInvoiceRoutes(dashboard, api, h, middlewares.RateLimit.LimitMutations())

	return router
}
