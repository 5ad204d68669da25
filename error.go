package via

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// Error is an error with an HTTP status code and a render mode that can be
// converted to a Response. Middleware return errors up the chain unchanged
// unless a rescue middleware intercepts them; whatever reaches the host
// boundary is rendered with its status and mode.
type Error struct {
	status int
	source error
	json   bool
}

type errorMessage struct {
	Message string `json:"message"`
}

type errorEnvelope struct {
	Errors []errorMessage `json:"errors"`
}

// New wraps source in an Error with a 500 status and plain-text rendering.
func New(source error) *Error {
	return &Error{status: http.StatusInternalServerError, source: source}
}

// Raise builds an Error from a status code with an optional message. An
// empty message falls back to the canonical status reason.
func Raise(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{status: status, source: errors.New(message)}
}

// Raisef builds an Error from a status code and a formatted message.
func Raisef(status int, format string, args ...interface{}) *Error {
	return &Error{status: status, source: errors.Errorf(format, args...)}
}

// Wrap attaches a status code to an existing error. If err already is an
// *Error only the status is replaced, otherwise err is captured with a
// stack trace as the source.
func Wrap(err error, status int) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e.WithStatus(status)
	}
	return &Error{status: status, source: errors.WithStack(err)}
}

func BadRequest(source error) *Error          { return Wrap(source, http.StatusBadRequest) }
func Unauthorized(source error) *Error        { return Wrap(source, http.StatusUnauthorized) }
func Forbidden(source error) *Error           { return Wrap(source, http.StatusForbidden) }
func NotFound(source error) *Error            { return Wrap(source, http.StatusNotFound) }
func MethodNotAllowed(source error) *Error    { return Wrap(source, http.StatusMethodNotAllowed) }
func PayloadTooLarge(source error) *Error     { return Wrap(source, http.StatusRequestEntityTooLarge) }
func GatewayTimeout(source error) *Error      { return Wrap(source, http.StatusGatewayTimeout) }
func InternalServerError(source error) *Error { return Wrap(source, http.StatusInternalServerError) }

func (e *Error) Error() string {
	return e.source.Error()
}

// Unwrap exposes the source so errors.Is and errors.As see through the
// status annotation.
func (e *Error) Unwrap() error {
	return e.source
}

// Status returns the HTTP status code the error renders with.
func (e *Error) Status() int {
	return e.status
}

// Source returns the wrapped error.
func (e *Error) Source() error {
	return e.source
}

// AsJSON returns a copy of the error that renders as a JSON document
// instead of plain text.
func (e *Error) AsJSON() *Error {
	clone := *e
	clone.json = true
	return &clone
}

// WithStatus returns a copy of the error with the given status code.
func (e *Error) WithStatus(status int) *Error {
	clone := *e
	clone.status = status
	return &clone
}

// WithMessage returns a copy of the error that renders with the given
// message in place of the source's.
func (e *Error) WithMessage(message string) *Error {
	clone := *e
	clone.source = errors.New(message)
	return &clone
}

// Response renders the error. Plain-text mode produces the stringified
// source with a text/plain content type; JSON mode produces
// {"errors":[{"message":...}]}. Stack traces and source paths never leak
// into the default rendering.
func (e *Error) Response() *Response {
	if e.json {
		body, err := sonic.Marshal(errorEnvelope{
			Errors: []errorMessage{{Message: e.Error()}},
		})
		if err == nil {
			return Build().
				Status(e.status).
				Header(HeaderContentType, ContentTypeJSON).
				Body(body)
		}
		if logger != nil {
			logger.Error().Err(err).Msg("[via] failed to encode error response")
		}
	}
	return Build().
		Status(e.status).
		Text(e.Error())
}

// errorResponse converts any error reaching the host boundary into a
// response so the host always observes a response.
func errorResponse(err error) *Response {
	var e *Error
	if !errors.As(err, &e) {
		e = New(err)
	}
	return e.Response()
}
