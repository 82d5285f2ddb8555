package usecase

import "fmt"

// DomainError is a terminal, client-facing failure: the caller gets it
// verbatim and retrying without changing the request is pointless.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

var (
	ErrResourceNotFound = &DomainError{Code: "RESOURCE_NOT_FOUND", Message: "resource not found"}
	ErrPostNotFound     = &DomainError{Code: "POST_NOT_FOUND", Message: "post not found"}
	ErrMissingToken     = &DomainError{Code: "MISSING_TOKEN", Message: "missing token"}
	ErrTokenNotFound    = &DomainError{Code: "INVALID_TOKEN", Message: "invalid token"}
	ErrTokenExpired     = &DomainError{Code: "TOKEN_EXPIRED", Message: "token expired"}
	ErrTokenUsed        = &DomainError{Code: "TOKEN_USED", Message: "token already used"}
)

// UpstreamError wraps a dependency failure (storage fetch, database).
// Safe for the client to retry; the message must never carry provider
// secrets because handlers echo it as a diagnostic hint.
type UpstreamError struct {
	Service string
	Message string
	Timeout bool
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: %s (timed out)", e.Service, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates per-field failures so the caller sees
// everything wrong with the submission at once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "invalid input"
	}
	return e[0].Error()
}
