package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/trip-planner-api/internal/logging"
)

// Kind tags an AppError. The value doubles as the "code" field of the error envelope.
type Kind string

const (
	KindBadRequest       Kind = "BadRequestError"
	KindValidation       Kind = "ValidationError"
	KindMalformedRequest Kind = "MalformedRequestError"
	KindUnauthorized     Kind = "UnauthorizedError"
	KindForbidden        Kind = "ForbiddenError"
	KindNotFound         Kind = "NotFoundError"
	KindConflict         Kind = "ConflictError"
	KindTooManyRequests  Kind = "TooManyRequestsError"
	KindConfiguration    Kind = "ConfigurationError"
	KindInternalServer   Kind = "InternalServerError"
)

// GenericMessage is shown to callers for every unrecognized or 500-class failure.
const GenericMessage = "An unexpected error occurred. Please try again later."

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindBadRequest, KindValidation, KindMalformedRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// AppError is a domain failure. Message is for logs only; UserMessage is what the caller sees.
type AppError struct {
	Kind        Kind
	Message     string
	UserMessage string
	Err         error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another AppError with the same kind and internal message, so a
// sentinel still matches after WithCause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Status returns the HTTP status code for the error's kind.
func (e *AppError) Status() int {
	return e.Kind.Status()
}

// WithCause returns a copy of e wrapping err.
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// New creates an AppError. An empty userMessage falls back to the internal message.
func New(kind Kind, message, userMessage string) *AppError {
	if userMessage == "" {
		userMessage = message
	}
	return &AppError{Kind: kind, Message: message, UserMessage: userMessage}
}

func BadRequest(message, userMessage string) *AppError {
	return New(KindBadRequest, message, userMessage)
}

func Validation(message, userMessage string) *AppError {
	return New(KindValidation, message, userMessage)
}

func MalformedRequest(message, userMessage string) *AppError {
	return New(KindMalformedRequest, message, userMessage)
}

func Unauthorized(message, userMessage string) *AppError {
	return New(KindUnauthorized, message, userMessage)
}

func Forbidden(message, userMessage string) *AppError {
	return New(KindForbidden, message, userMessage)
}

func NotFound(message, userMessage string) *AppError {
	return New(KindNotFound, message, userMessage)
}

func Conflict(message, userMessage string) *AppError {
	return New(KindConflict, message, userMessage)
}

func TooManyRequests(message, userMessage string) *AppError {
	return New(KindTooManyRequests, message, userMessage)
}

// Configuration reports missing or invalid process configuration. The user
// never sees the internal message.
func Configuration(message string) *AppError {
	return New(KindConfiguration, message, GenericMessage)
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternalServer, Message: message, UserMessage: GenericMessage, Err: err}
}

// KindOf returns the kind of the first AppError in err's chain, or
// KindInternalServer when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternalServer
}

var debugMode atomic.Bool

// SetDebug toggles attaching the error chain to 500 responses. Never enable in production.
func SetDebug(enabled bool) {
	debugMode.Store(enabled)
}

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Status     int    `json:"status"`
	Code       Kind   `json:"code"`
	StackTrace string `json:"stackTrace,omitempty"`
}

// SuccessResponse is the success envelope.
type SuccessResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes err as an error envelope and aborts the handler chain.
func Respond(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = Internal("unhandled error", err)
	}

	status := appErr.Status()
	body := ErrorResponse{
		Error:   http.StatusText(status),
		Message: appErr.UserMessage,
		Status:  status,
		Code:    appErr.Kind,
	}

	if status >= http.StatusInternalServerError {
		body.Message = GenericMessage
		logging.Error().
			Err(err).
			Str("code", string(appErr.Kind)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg(appErr.Message)
		if debugMode.Load() {
			body.StackTrace = err.Error()
		}
	}

	c.AbortWithStatusJSON(status, body)
}

// Success writes the success envelope.
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessResponse{
		Status:  status,
		Message: message,
		Data:    data,
	})
}
