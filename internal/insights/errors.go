package insights

import (
	"errors"
	"fmt"
	"net/http"
)

// ConfigError reports missing or unusable client credentials.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string   { return "configuration error: " + e.Reason }
func (e *ConfigError) StatusCode() int { return http.StatusInternalServerError }

// NetworkError reports a transport failure reaching either endpoint.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}
func (e *NetworkError) Unwrap() error   { return e.Err }
func (e *NetworkError) StatusCode() int { return http.StatusBadGateway }

// AuthError reports a non-2xx response from the token endpoint.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("token endpoint returned status %d: %s", e.Status, e.Body)
}
func (e *AuthError) StatusCode() int { return e.Status }

// ApiError reports a non-2xx response from the data endpoint.
type ApiError struct {
	Status int
	Body   string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.Status, e.Body)
}
func (e *ApiError) StatusCode() int { return e.Status }

// ParseError reports a response body whose shape could not be understood.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Err)
	}
	return "parse error: " + e.Reason
}
func (e *ParseError) Unwrap() error   { return e.Err }
func (e *ParseError) StatusCode() int { return http.StatusBadGateway }

// UpstreamError reports a domain-level failure flag inside a 2xx body.
type UpstreamError struct {
	Code    int64
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error %d: %s", e.Code, e.Message)
}
func (e *UpstreamError) StatusCode() int { return http.StatusBadGateway }

// NotFoundError reports a tool name absent from the registry.
type NotFoundError struct {
	Tool string
}

func (e *NotFoundError) Error() string   { return "unknown tool: " + e.Tool }
func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// BadRequestError reports a malformed tool call.
type BadRequestError struct {
	Reason string
}

func (e *BadRequestError) Error() string   { return "bad request: " + e.Reason }
func (e *BadRequestError) StatusCode() int { return http.StatusBadRequest }

type statusCoder interface {
	StatusCode() int
}

// StatusOf returns the protocol status an error surfaces with.
// Errors outside the taxonomy map to 500.
func StatusOf(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}
