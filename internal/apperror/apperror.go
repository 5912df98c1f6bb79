// Package apperror is the error taxonomy shared by the flow steps and their HTTP handlers.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindNetwork      Kind = "network"
	KindAPI          Kind = "api"
	KindUnauthorized Kind = "unauthorized"
	KindPrecondition Kind = "precondition"
	KindUnsupported  Kind = "unsupported"
	KindNotFound     Kind = "not_found"
)

const (
	MsgFetchPrefix    = "Errors while fetching the data: "
	MsgSubmitPrefix   = "Errors while submitting the data: "
	MsgMockAPIDown    = "There was an error fetching data. Did you start the mock API?"
	MsgFillAllData    = "Please fill in all the data."
	MsgUnsupported    = "This payment product is not supported in this demo."
	MsgProductMissing = "Payment product not found."
	MsgEnterCard      = "Please enter the card number."
)

var ErrUnauthorized = errors.New("unauthorized")

// Error is the tagged failure returned by flow operations.
type Error struct {
	Kind     Kind
	Status   int
	Message  string
	Fields   map[string][]string
	Redirect string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string, fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusUnprocessableEntity, Message: message, Fields: fields}
}

// Network reports a collaborator that could not be reached at all.
func Network(err error) *Error {
	return &Error{Kind: KindNetwork, Status: http.StatusBadGateway, Message: MsgMockAPIDown, Err: err}
}

// API reports a collaborator that answered with an error body.
// An empty message list falls back to the network message, as the collaborator gave nothing to show.
func API(prefix string, messages []string, err error) *Error {
	if len(messages) == 0 {
		return &Error{Kind: KindAPI, Status: http.StatusBadGateway, Message: MsgMockAPIDown, Err: err}
	}
	return &Error{Kind: KindAPI, Status: http.StatusBadGateway, Message: prefix + strings.Join(messages, ", "), Err: err}
}

// Unauthorized means the session expired: the flow state is cleared and the shopper restarts at "/".
func Unauthorized(err error) *Error {
	if err == nil {
		err = ErrUnauthorized
	}
	return &Error{Kind: KindUnauthorized, Status: http.StatusSeeOther, Message: "session expired", Redirect: "/", Err: err}
}

func Precondition(redirect string) *Error {
	return &Error{Kind: KindPrecondition, Status: http.StatusSeeOther, Message: "missing flow state", Redirect: redirect}
}

func Unsupported(message string) *Error {
	return &Error{Kind: KindUnsupported, Status: http.StatusUnprocessableEntity, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

// As extracts an *Error from err.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

// UpstreamError is returned by the outbound clients. Status is zero when no
// response was received.
type UpstreamError struct {
	Service  string
	Status   int
	Messages []string
	Err      error
}

func (e *UpstreamError) Error() string {
	var b strings.Builder
	b.WriteString(e.Service)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if len(e.Messages) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Messages, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Forbidden() bool {
	return e.Status == http.StatusForbidden
}
