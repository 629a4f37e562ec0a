package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/deppfellow/invoice-dashboard/internal/errs"
	"github.com/deppfellow/invoice-dashboard/internal/middleware"
	"github.com/deppfellow/invoice-dashboard/internal/server"
	"github.com/deppfellow/invoice-dashboard/internal/service"
	"github.com/deppfellow/invoice-dashboard/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
//
// Concrete handlers embed it so they can reach config, logger, db and
// redis through *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// --- Generic typed handler plumbing -----------------------------------------

// HandlerFunc represents a typed endpoint function that receives a
// validated request payload and returns a response or an error.
//
// Req is usually a pointer type, e.g. *ListInvoicesQuery, because Echo's
// Bind needs a pointer to populate fields.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler defines how a successful handler result is written and
// which observability attributes that response type adds.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	// http.status_code is already set by tracing middleware (EnhanceTracing).
}

// HTMLResponseHandler writes a rendered page. The handler result must be
// []byte.
type HTMLResponseHandler struct {
	status int
}

func (h HTMLResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.HTMLBlob(h.status, result.([]byte))
}

func (h HTMLResponseHandler) GetOperation() string {
	return "handler_html"
}

func (h HTMLResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if txn != nil {
		if data, ok := result.([]byte); ok {
			txn.AddAttribute("html.size_bytes", len(data))
		}
	}
}

// handleRequest is the shared execution pipeline for typed handlers: bind
// and validate, run, log and trace, then write the response.
//
// newReq is called once per request so concurrent requests never share a
// payload.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	newReq func() Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", c.Request().Method).
		Str("route", route).
		Logger()

	logger.Info().Msg("handling request")

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()
	req := newReq()

	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Error().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Msg("request validation successful")

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler with validation, logging and tracing and
// answers with JSON.
//
//	router.GET("/x", handler.Handle(h, myHandlerFn, http.StatusOK, newMyReq))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newReq, func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleHTML wraps a typed handler that renders a page.
func HandleHTML[Req validation.Validatable](
	h Handler,
	handler HandlerFunc[Req, []byte],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newReq, func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, HTMLResponseHandler{status: status})
	}
}

// --- Form actions -----------------------------------------------------------

// ActionFunc runs a form action. Validation belongs to the action: it
// reports problems in the returned Outcome instead of failing.
type ActionFunc[Req any] func(c echo.Context, req Req) service.Outcome

// HandleAction binds the submitted form and writes the action's Outcome:
//
//   - navigation: 303 See Other to the target, or for JSON clients a 200
//     with a redirect errs.Action
//   - invalid input: 400 with the FormState
//   - database failure: 500 with the FormState
func HandleAction[Req any](h Handler, action ActionFunc[Req], newReq func() Req) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		route := c.Path()

		txn := newrelic.FromContext(c.Request().Context())
		if txn != nil {
			txn.AddAttribute("handler.name", route)
		}

		logger := middleware.GetLogger(c).With().
			Str("operation", "form_action").
			Str("method", c.Request().Method).
			Str("route", route).
			Logger()

		req := newReq()
		if err := validation.Bind(c, req); err != nil {
			logger.Warn().Err(err).Msg("form binding failed")
			return err
		}

		out := action(c, req)
		duration := time.Since(start)

		if txn != nil {
			txn.AddAttribute("action.outcome", outcomeName(out.Kind))
			txn.AddAttribute("action.duration_ms", duration.Milliseconds())
		}

		logger.Info().
			Str("outcome", outcomeName(out.Kind)).
			Str("message", out.State.Message).
			Dur("duration", duration).
			Msg("form action finished")

		return writeOutcome(c, out)
	}
}

func writeOutcome(c echo.Context, out service.Outcome) error {
	if out.RedirectTo != "" {
		if wantsJSON(c) {
			return c.JSON(http.StatusOK, errs.NewRedirectAction(out.RedirectTo, out.State.Message))
		}
		return c.Redirect(http.StatusSeeOther, out.RedirectTo)
	}

	status := http.StatusBadRequest
	if out.Kind == service.OutcomeDatabaseError {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, out.State)
}

func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

func outcomeName(kind service.OutcomeKind) string {
	switch kind {
	case service.OutcomeSucceeded:
		return "succeeded"
	case service.OutcomeInvalid:
		return "invalid"
	case service.OutcomeDatabaseError:
		return "database_error"
	default:
		return "unknown"
	}
}
