package errs

import "strings"

// FieldError represents a field-level error.
//
//	{ "field": "amount", "error": "must be greater than 0" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client to navigate to Value.
	ActionTypeRedirect ActionType = "redirect"
)

// Action describes an optional "what to do next" instruction.
//
// Form actions answer JSON clients with a redirect Action instead of a
// 303, so script-driven forms can navigate themselves.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// NewRedirectAction builds a redirect Action.
func NewRedirectAction(value, message string) *Action {
	return &Action{
		Type:    ActionTypeRedirect,
		Message: message,
		Value:   value,
	}
}

// HTTPError is the client-facing error type.
//
//   - Code: machine-friendly code (e.g. "BAD_REQUEST")
//   - Message: human-friendly message
//   - Status: HTTP status code
//   - Override: the client may show Message verbatim
//   - Errors: per-field errors
//   - Action: optional client instruction
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. Code and Status are not
// compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	clone := *e
	clone.Message = message
	return &clone
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
