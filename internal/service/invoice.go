package service

import (
	"context"
	"time"

	"github.com/deppfellow/invoice-dashboard/internal/lib/job"
	"github.com/deppfellow/invoice-dashboard/internal/lib/pagecache"
	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ListingPath is the invoices listing view. Every successful mutation
// invalidates it and navigates back to it.
const ListingPath = "/dashboard/invoices"

// User-facing outcome messages.
const (
	MsgCreateInvalid   = "Missing Fields. Failed to Create Invoice."
	MsgCreateDBError   = "Database Error: Failed to Create Invoice."
	MsgCreateSucceeded = "Created Invoice."

	MsgUpdateInvalid   = "Missing Fields. Failed to Update Invoice."
	MsgUpdateDBError   = "Database Error: Failed to Update Invoice."
	MsgUpdateSucceeded = "Updated Invoice."

	MsgDeleteDBError   = "Database Error: Failed to Delete Invoice."
	MsgDeleteSucceeded = "Deleted Invoice."
)

type invoiceStore interface {
	CreateInvoice(ctx context.Context, inv model.Invoice) error
	UpdateInvoice(ctx context.Context, inv model.Invoice) (int64, error)
	DeleteInvoice(ctx context.Context, id string) (int64, error)
	ListInvoices(ctx context.Context, query string, page int) ([]model.InvoiceRow, error)
	CountInvoicePages(ctx context.Context, query string) (int, error)
}

// Notifier is told about saved invoices after the listing was invalidated.
type Notifier interface {
	NotifyInvoiceSaved(ctx context.Context, p job.InvoiceSavedPayload) error
}

type noopNotifier struct{}

func (noopNotifier) NotifyInvoiceSaved(context.Context, job.InvoiceSavedPayload) error { return nil }

// OutcomeKind classifies how a form action ended.
type OutcomeKind int

const (
	OutcomeSucceeded OutcomeKind = iota
	OutcomeInvalid
	OutcomeDatabaseError
)

// FormState is what a form action reports back to the form.
type FormState struct {
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Outcome is the result of a form action. A non-empty RedirectTo tells
// the caller to navigate there.
type Outcome struct {
	Kind       OutcomeKind
	State      FormState
	RedirectTo string
}

// InvoicePage is one page of the listing view.
type InvoicePage struct {
	Invoices   []model.InvoiceRow `json:"invoices"`
	Query      string             `json:"query"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
}

// InvoiceService implements the invoice form actions.
type InvoiceService struct {
	store    invoiceStore
	cache    pagecache.PageCache
	notifier Notifier
	logger   *zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewInvoiceService builds the service. A nil notifier disables
// notifications.
func NewInvoiceService(store invoiceStore, cache pagecache.PageCache, notifier Notifier, logger *zerolog.Logger) *InvoiceService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &InvoiceService{
		store:    store,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// CreateInvoice validates form and inserts a new invoice dated today (UTC).
func (s *InvoiceService) CreateInvoice(ctx context.Context, form *InvoiceForm) Outcome {
	if fieldErrors := form.FieldErrors(); fieldErrors != nil {
		return invalid(MsgCreateInvalid, fieldErrors)
	}

	inv := model.Invoice{
		ID:         s.newID(),
		CustomerID: form.CustomerID,
		Amount:     form.Cents(),
		Status:     model.InvoiceStatus(form.Status),
		Date:       s.now().UTC(),
	}

	if err := s.store.CreateInvoice(ctx, inv); err != nil {
		s.logDBError(ctx, err, "create", inv.ID)
		return dbError(MsgCreateDBError)
	}

	return s.saved(ctx, inv, job.ActionCreated, MsgCreateSucceeded)
}

// UpdateInvoice validates form and rewrites invoice id. An id matching no
// row is reported as a database error.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, form *InvoiceForm) Outcome {
	if fieldErrors := form.FieldErrors(); fieldErrors != nil {
		return invalid(MsgUpdateInvalid, fieldErrors)
	}

	inv := model.Invoice{
		ID:         id,
		CustomerID: form.CustomerID,
		Amount:     form.Cents(),
		Status:     model.InvoiceStatus(form.Status),
	}

	n, err := s.store.UpdateInvoice(ctx, inv)
	if err != nil {
		s.logDBError(ctx, err, "update", id)
		return dbError(MsgUpdateDBError)
	}
	if n == 0 {
		s.log(ctx).Warn().Str("invoice_id", id).Msg("update matched no invoice")
		return dbError(MsgUpdateDBError)
	}

	return s.saved(ctx, inv, job.ActionUpdated, MsgUpdateSucceeded)
}

// DeleteInvoice removes invoice id. An id matching no row is reported as
// a database error.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) Outcome {
	n, err := s.store.DeleteInvoice(ctx, id)
	if err != nil {
		s.logDBError(ctx, err, "delete", id)
		return dbError(MsgDeleteDBError)
	}
	if n == 0 {
		s.log(ctx).Warn().Str("invoice_id", id).Msg("delete matched no invoice")
		return dbError(MsgDeleteDBError)
	}

	s.invalidateListing(ctx)

	return Outcome{
		Kind:       OutcomeSucceeded,
		State:      FormState{Message: MsgDeleteSucceeded},
		RedirectTo: ListingPath,
	}
}

// ListInvoices loads one page of the listing view.
func (s *InvoiceService) ListInvoices(ctx context.Context, query string, page int) (*InvoicePage, error) {
	if page < 1 {
		page = 1
	}

	invoices, err := s.store.ListInvoices(ctx, query, page)
	if err != nil {
		return nil, err
	}

	totalPages, err := s.store.CountInvoicePages(ctx, query)
	if err != nil {
		return nil, err
	}

	return &InvoicePage{
		Invoices:   invoices,
		Query:      query,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// saved finishes a successful create or update: invalidate the listing,
// enqueue the notification, then hand back the redirect.
func (s *InvoiceService) saved(ctx context.Context, inv model.Invoice, action, message string) Outcome {
	s.invalidateListing(ctx)

	err := s.notifier.NotifyInvoiceSaved(ctx, job.InvoiceSavedPayload{
		InvoiceID:  inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.Amount,
		Status:     string(inv.Status),
		Action:     action,
	})
	if err != nil {
		s.log(ctx).Warn().Err(err).Str("invoice_id", inv.ID).Msg("failed to enqueue invoice notification")
	}

	return Outcome{
		Kind:       OutcomeSucceeded,
		State:      FormState{Message: message},
		RedirectTo: ListingPath,
	}
}

// invalidateListing drops the cached listing. The write already happened,
// so a cache failure is logged and the caller still navigates; stale pages
// age out after the cache TTL.
func (s *InvoiceService) invalidateListing(ctx context.Context) {
	if err := s.cache.InvalidatePath(ctx, ListingPath); err != nil {
		s.log(ctx).Error().Err(err).Str("path", ListingPath).Msg("failed to invalidate listing cache")
	}
}

func (s *InvoiceService) logDBError(ctx context.Context, err error, op, id string) {
	s.log(ctx).Error().
		Err(err).
		Str("operation", op).
		Str("invoice_id", id).
		Str("sql_code", string(sqlerr.Classify(err))).
		Msg("invoice persistence failed")
}

// log prefers the request-scoped logger carried by ctx.
func (s *InvoiceService) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.logger
}

func invalid(message string, fieldErrors map[string][]string) Outcome {
	return Outcome{
		Kind:  OutcomeInvalid,
		State: FormState{Message: message, Errors: fieldErrors},
	}
}

func dbError(message string) Outcome {
	return Outcome{
		Kind:  OutcomeDatabaseError,
		State: FormState{Message: message},
	}
}
