// Package apperror defines the closed set of error kinds the API can surface
// and their HTTP status mapping.
package apperror

import (
	"errors"
	"net/http"
)

// Kind tags an error with the class of failure it represents
type Kind int

const (
	Internal Kind = iota
	BadRequest
	NotFound
	Unprocessable
	Conflict
	InvalidCredentials
	Unauthorized
	Forbidden
)

// Messages shared by several layers
const (
	MsgBadRequest         = "Bad request!"
	MsgColumnNotFound     = "Column not found!"
	MsgMissingData        = "Missing required data!"
	MsgRelationMissing    = "Relation does not exist!"
	MsgAlreadyExists      = "Already exists!"
	MsgInternal           = "Internal error!"
	MsgInvalidCredentials = "Invalid username or password"
	MsgUnauthorized       = "Unauthorized!"
	MsgForbidden          = "Forbidden!"
	MsgArticleNotFound    = "Article not found!"
	MsgCommentNotFound    = "Comment not found!"
	MsgUserNotFound       = "User not found!"
	MsgTopicNotFound      = "Topic not found!"
)

func (k Kind) String() string {
	switch k {
	case BadRequest:
		return "bad_request"
	case NotFound:
		return "not_found"
	case Unprocessable:
		return "unprocessable"
	case Conflict:
		return "conflict"
	case InvalidCredentials:
		return "invalid_credentials"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is a tagged error carrying a client-facing message and an optional cause
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a tagged error
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates a tagged error around a cause
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func NewBadRequest(msg string) *Error { return New(BadRequest, msg) }

func NewNotFound(msg string) *Error { return New(NotFound, msg) }

func NewUnprocessable(msg string) *Error { return New(Unprocessable, msg) }

func NewInvalidCredentials() *Error { return New(InvalidCredentials, MsgInvalidCredentials) }

func NewInternal(err error) *Error { return Wrap(Internal, MsgInternal, err) }

// KindOf returns the kind of the first *Error in err's chain, or Internal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// Status maps a kind to its HTTP status code
func Status(kind Kind) int {
	switch kind {
	case BadRequest:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unprocessable:
		return http.StatusUnprocessableEntity
	case Conflict:
		return http.StatusConflict
	case InvalidCredentials, Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Internal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Describe returns the status and client-facing message for any error.
// Untagged errors and Internal errors never leak their cause.
func Describe(err error) (int, string) {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == Internal {
		return http.StatusInternalServerError, MsgInternal
	}
	return Status(appErr.Kind), appErr.Message
}
