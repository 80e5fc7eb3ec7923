// Package qerrors defines the wire representation of GraphQL errors: a
// message, a machine-readable code carried in extensions, and the response
// path the error occurred at.
package qerrors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error is a single entry of a response's errors list.
type Error struct {
	Message    string      `json:"message"`
	Extensions *Extensions `json:"extensions"`
	Paths      []string    `json:"paths"`
}

// Extensions carries the error metadata mandated alongside the message.
type Extensions struct {
	Code string `json:"code"`
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an Error with the given code.
func New(code codes.Code, message string) *Error {
	return &Error{
		Message:    message,
		Extensions: &Extensions{Code: code.String()},
		Paths:      []string{},
	}
}

// WithPath returns a copy of the error with the response path appended.
func (e *Error) WithPath(path ...string) *Error {
	out := *e
	out.Paths = append(append([]string{}, e.Paths...), path...)
	return &out
}

// ConvertError normalizes any error into the wire shape. A *Error passes
// through unchanged; a gRPC status error keeps its code; anything else is
// reported with code Unknown.
func ConvertError(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		if e.Paths == nil {
			e.Paths = []string{}
		}
		return e
	}
	if s, ok := status.FromError(err); ok {
		return New(s.Code(), s.Message())
	}
	return New(codes.Unknown, err.Error())
}
