package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation  ErrorKind = "validation_error"
	KindAggregation ErrorKind = "aggregation_error"
	KindGateway     ErrorKind = "gateway_error"
)

var ErrEmptyItems = errors.New("items must contain at least one item")

// Error tags a failure with the pipeline stage that produced it. Message is
// returned to clients as is.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func AggregationError(err error) *Error {
	return &Error{Kind: KindAggregation, Message: err.Error(), Err: err}
}

// GatewayError keeps the gateway's message verbatim.
func GatewayError(err error) *Error {
	return &Error{Kind: KindGateway, Message: err.Error(), Err: err}
}

// KindOf returns the kind of a tagged error, or "" when err is not tagged.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
