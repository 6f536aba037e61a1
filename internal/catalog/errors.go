package catalog

import (
	"errors"
	"fmt"
)

// ErrorKind classifies request-scoped failures.
type ErrorKind int

const (
	// KindInvalidParams covers malformed parameters and failed lookups by
	// name, topic or section.
	KindInvalidParams ErrorKind = iota
	// KindResourceNotFound is returned when a resource URI cannot be resolved.
	KindResourceNotFound
	// KindUnknownOperation is returned by the router for unregistered operations.
	KindUnknownOperation
)

// JSON-RPC error codes for each kind.
const (
	CodeInvalidParams    = -32602
	CodeResourceNotFound = -32002
	CodeMethodNotFound   = -32601
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidParams:
		return "invalid_params"
	case KindResourceNotFound:
		return "resource_not_found"
	case KindUnknownOperation:
		return "unknown_operation"
	default:
		return "unknown"
	}
}

// RPCCode maps the kind to its JSON-RPC error code.
func (k ErrorKind) RPCCode() int {
	switch k {
	case KindResourceNotFound:
		return CodeResourceNotFound
	case KindUnknownOperation:
		return CodeMethodNotFound
	default:
		return CodeInvalidParams
	}
}

// Error is a structured, request-scoped error: a kind, a human message and
// an optional machine-readable detail object.
type Error struct {
	Kind    ErrorKind
	Message string
	Data    map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Payload is the wire shape of an Error.
type Payload struct {
	Code    string         `json:"code"`
	RPCCode int            `json:"rpc_code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Payload converts the error into its serializable form.
func (e *Error) Payload() Payload {
	return Payload{
		Code:    e.Kind.String(),
		RPCCode: e.Kind.RPCCode(),
		Message: e.Message,
		Data:    e.Data,
	}
}

// InvalidParams builds a KindInvalidParams error.
func InvalidParams(message string, data map[string]any) *Error {
	return &Error{Kind: KindInvalidParams, Message: message, Data: data}
}

// ResourceNotFound builds a KindResourceNotFound error for uri.
func ResourceNotFound(uri string) *Error {
	return &Error{
		Kind:    KindResourceNotFound,
		Message: "Resource not found",
		Data:    map[string]any{"uri": uri},
	}
}

// UnknownOperation builds a KindUnknownOperation error.
func UnknownOperation(name string, available []string) *Error {
	return &Error{
		Kind:    KindUnknownOperation,
		Message: "Unknown operation",
		Data: map[string]any{
			"operation":            name,
			"available_operations": available,
		},
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
