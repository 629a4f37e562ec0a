package router

import (
	"net/http"

	"github.com/deppfellow/invoice-dashboard/internal/handler"
	"github.com/deppfellow/invoice-dashboard/internal/service"
	"github.com/labstack/echo/v4"
)

// registerInvoiceRoutes mounts the listing and its form actions. Every
// mutation goes through limit.
func registerInvoiceRoutes(dashboard, api *echo.Group, h *handler.Handlers, limit echo.MiddlewareFunc) {
	inv := h.Invoices

	dashboard.GET("/invoices", handler.HandleHTML(inv.Handler, inv.ListInvoicesPage, http.StatusOK, newListInvoicesQuery))
	api.GET("/invoices", handler.Handle(inv.Handler, inv.ListInvoices, http.StatusOK, newListInvoicesQuery))

	actions := dashboard.Group("/invoices", limit)
	actions.POST("", handler.HandleAction(inv.Handler, inv.CreateInvoice, func() *service.InvoiceForm {
		return &service.InvoiceForm{}
	}))
	actions.POST("/:id", handler.HandleAction(inv.Handler, inv.UpdateInvoice, func() *handler.UpdateInvoiceRequest {
		return &handler.UpdateInvoiceRequest{}
	}))
	actions.POST("/:id/delete", handler.HandleAction(inv.Handler, inv.DeleteInvoice, func() *handler.InvoiceIDParam {
		return &handler.InvoiceIDParam{}
	}))
}

func newListInvoicesQuery() *handler.ListInvoicesQuery {
	return &handler.ListInvoicesQuery{}
}
