package hdns

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Resource kinds reported by NotFoundError.
const (
	resourceZone          = "zone"
	resourceRecord        = "record"
	resourcePrimaryServer = "primary server"
)

// ConfigurationError indicates the client was constructed with unusable
// settings, such as an empty token or a malformed endpoint URL.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid client configuration: " + e.Reason
}

// ValidationError indicates a request was rejected because its inputs are
// invalid. It is returned both for local checks that fail before any network
// traffic and for HTTP 422 responses. Fields carries per-field reasons when
// they are known.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid request: " + e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		parts = append(parts, field+": "+reason)
	}
	sort.Strings(parts)
	return fmt.Sprintf("invalid request: %s (%s)", e.Message, strings.Join(parts, ", "))
}

// AuthError indicates the API rejected the access token (HTTP 401 or 403).
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication rejected (status %d): %s", e.StatusCode, e.Message)
}

// NotFoundError indicates the addressed resource does not exist. Resource
// names the kind ("zone", "record" or "primary server"), ID the identifier
// the lookup used.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// ConflictError indicates the request clashes with existing state, for
// example creating a zone whose name is already taken (HTTP 409).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Message
}

// RateLimitError indicates the API throttled the request (HTTP 429).
// RetryAfter is the server-suggested wait, or zero when no hint was given.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
	}
	return "rate limited"
}

// ServiceError indicates the API failed on its side (HTTP 5xx), or answered
// with a status the client has no mapping for.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// DecodeError indicates a payload could not be encoded or decoded as
// expected, most commonly a response that claimed success but does not match
// the documented shape.
type DecodeError struct {
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return "malformed response: " + e.Message + ": " + e.Err.Error()
	}
	return "malformed response: " + e.Message
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError indicates the request never produced an HTTP response, for
// example a connection failure or DNS resolution error.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failed during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CancelledError indicates the operation stopped because its context was
// cancelled or its deadline passed. It wraps the context error, so
// errors.Is(err, context.Canceled) and errors.Is(err, context.DeadlineExceeded)
// keep working through it.
type CancelledError struct {
	Err error
}

func (e *CancelledError) Error() string {
	return "operation cancelled: " + e.Err.Error()
}

func (e *CancelledError) Unwrap() error { return e.Err }
