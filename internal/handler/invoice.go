package handler

import (
	"bytes"
	"net/url"
	"strconv"

	"github.com/deppfellow/invoice-dashboard/internal/lib/pagecache"
	"github.com/deppfellow/invoice-dashboard/internal/middleware"
	"github.com/deppfellow/invoice-dashboard/internal/server"
	"github.com/deppfellow/invoice-dashboard/internal/service"
	"github.com/deppfellow/invoice-dashboard/internal/validation"
	"github.com/labstack/echo/v4"
)

// CacheStatusHeader tells whether a page came from the page cache.
const CacheStatusHeader = "X-Page-Cache"

// InvoiceHandler serves the invoices listing and its form actions.
type InvoiceHandler struct {
	Handler
	invoices *service.InvoiceService
	cache    pagecache.PageCache
}

func NewInvoiceHandler(s *server.Server, invoices *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		Handler:  NewHandler(s),
		invoices: invoices,
		cache:    s.PageCache,
	}
}

// ListInvoicesQuery is the listing's search and pagination.
type ListInvoicesQuery struct {
	Query string `query:"query" validate:"max=100"`
	Page  int    `query:"page" validate:"omitempty,min=1"`
}

func (q *ListInvoicesQuery) Validate() error {
	return validation.Struct(q)
}

// cacheVariant is the canonical query string of the page, so equivalent
// URLs share one cache entry.
func (q *ListInvoicesQuery) cacheVariant() string {
	v := url.Values{}
	if q.Query != "" {
		v.Set("query", q.Query)
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v.Encode()
}

// InvoiceIDParam identifies the invoice a delete acts on.
type InvoiceIDParam struct {
	ID string `param:"id"`
}

// UpdateInvoiceRequest is the edit form plus the invoice id from the path.
type UpdateInvoiceRequest struct {
	ID string `param:"id"`
	service.InvoiceForm
}

// ListInvoicesPage renders the listing, reading through the page cache.
// Cache errors only cost a render.
func (h *InvoiceHandler) ListInvoicesPage(c echo.Context, q *ListInvoicesQuery) ([]byte, error) {
	ctx := c.Request().Context()
	logger := middleware.GetLogger(c)
	variant := q.cacheVariant()

	body, ok, err := h.cache.Get(ctx, service.ListingPath, variant)
	if err != nil {
		logger.Warn().Err(err).Msg("page cache read failed")
	}
	if ok {
		c.Response().Header().Set(CacheStatusHeader, "HIT")
		return body, nil
	}

	page, err := h.invoices.ListInvoices(ctx, q.Query, q.Page)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := renderInvoices(&buf, page); err != nil {
		return nil, err
	}
	body = buf.Bytes()

	if err := h.cache.Set(ctx, service.ListingPath, variant, body); err != nil {
		logger.Warn().Err(err).Msg("page cache write failed")
	}

	c.Response().Header().Set(CacheStatusHeader, "MISS")
	return body, nil
}

// ListInvoices returns the listing page as JSON. It is never cached.
func (h *InvoiceHandler) ListInvoices(c echo.Context, q *ListInvoicesQuery) (*service.InvoicePage, error) {
	return h.invoices.ListInvoices(c.Request().Context(), q.Query, q.Page)
}

func (h *InvoiceHandler) CreateInvoice(c echo.Context, form *service.InvoiceForm) service.Outcome {
	return h.invoices.CreateInvoice(c.Request().Context(), form)
}

func (h *InvoiceHandler) UpdateInvoice(c echo.Context, req *UpdateInvoiceRequest) service.Outcome {
	return h.invoices.UpdateInvoice(c.Request().Context(), req.ID, &req.InvoiceForm)
}

func (h *InvoiceHandler) DeleteInvoice(c echo.Context, req *InvoiceIDParam) service.Outcome {
	return h.invoices.DeleteInvoice(c.Request().Context(), req.ID)
}
