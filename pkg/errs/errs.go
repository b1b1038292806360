// Package errs carries structured errors through the service layers. Errors
// are built with E from an operation name, a kind, an optional offending
// parameter and an underlying error, and translated to HTTP responses with
// HTTPErrorResponse.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Op is the operation that failed, e.g. "diagramService.BuildDiagram".
type Op string

// Parameter is the request parameter that caused the error.
type Parameter string

// Kind classifies an error so the transport layer can pick a status code.
type Kind uint8

const (
	Other Kind = iota
	Internal
	InvalidRequest
	Validation
	NotExist
	IO
	Unauthenticated
)

func (k Kind) String() string {
	switch k {
	case Internal:
		return "internal"
	case InvalidRequest:
		return "invalid_request"
	case Validation:
		return "validation"
	case NotExist:
		return "not_exist"
	case IO:
		return "io"
	case Unauthenticated:
		return "unauthenticated"
	}

	return "other"
}

type Error struct {
	Kind  Kind
	Op    Op
	Param Parameter
	Err   error
}

func (e *Error) Error() string {
	var parts []string

	if e.Op != "" {
		parts = append(parts, string(e.Op))
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an *Error from its arguments. Arguments may appear in any order;
// unknown types are ignored. A plain string is treated as an error message.
func E(args ...interface{}) error {
	e := &Error{}

	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case Parameter:
			e.Param = a
		case *Error:
			e.Err = a
		case error:
			e.Err = a
		case string:
			e.Err = errors.New(a)
		}
	}

	return e
}

// KindIs reports whether any error in the chain carries the given kind.
func KindIs(kind Kind, err error) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Kind != Other {
			return e.Kind == kind
		}

		err = e.Err
	}

	return false
}

// OpStack returns the operations recorded in the error chain, outermost first.
func OpStack(err error) []string {
	var ops []string

	var e *Error
	for errors.As(err, &e) {
		if e.Op != "" {
			ops = append(ops, string(e.Op))
		}

		err = e.Err
	}

	return ops
}

func httpStatus(kind Kind) int {
	switch kind {
	case InvalidRequest, Validation:
		return http.StatusBadRequest
	case NotExist:
		return http.StatusNotFound
	case Unauthenticated:
		return http.StatusUnauthorized
	}

	return http.StatusInternalServerError
}

type errorResponse struct {
	Error serviceError `json:"error"`
}

type serviceError struct {
	Kind    string `json:"kind"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// HTTPErrorResponse logs the error and writes it as a JSON envelope with a
// status code derived from the outermost kind in the chain.
func HTTPErrorResponse(w http.ResponseWriter, logger zerolog.Logger, err error) {
	if err == nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	kind := Other
	param := Parameter("")
	message := err.Error()

	// The kind is often set on an inner error and wrapped with just an Op,
	// so walk the chain until we find one.
	chain := err

	var e *Error
	for errors.As(chain, &e) {
		if param == "" {
			param = e.Param
		}

		if e.Kind != Other {
			kind = e.Kind
			break
		}

		chain = e.Err
	}

	logger.Error().
		Str("kind", kind.String()).
		Str("param", string(param)).
		Strs("ops", OpStack(err)).
		Msg(message)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(httpStatus(kind))

	encodeErr := json.NewEncoder(w).Encode(errorResponse{
		Error: serviceError{
			Kind:    kind.String(),
			Param:   string(param),
			Message: message,
		},
	})
	if encodeErr != nil {
		logger.Error().Err(encodeErr).Msg(fmt.Sprintf("encoding error response for: %v", err))
	}
}
