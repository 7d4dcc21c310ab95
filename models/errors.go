package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("profile not found")
	ErrSuspended        = errors.New("profile suspended")
	ErrInvalidResponse  = errors.New("invalid api response")
	ErrRateLimited      = errors.New("rate limited")
	ErrUnreachable      = errors.New("api unreachable")
	ErrMalformedListing = errors.New("listing payload has no children")
	ErrInvalidUsername  = errors.New("invalid username")
	ErrNoSession        = errors.New("no analysis loaded for user")
)

// AnalysisError is a fatal analysis failure with a message safe to show end users
type AnalysisError struct {
	Kind    error
	Message string
}

func (e *AnalysisError) Error() string {
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Kind
}

// NewAnalysisError builds a user-facing error for the given kind
func NewAnalysisError(kind error, username string) *AnalysisError {
	var msg string
	switch kind {
	case ErrNotFound:
		msg = fmt.Sprintf("u/%s not found.", username)
	case ErrSuspended:
		msg = fmt.Sprintf("u/%s is suspended.", username)
	case ErrInvalidResponse:
		msg = "Invalid API response."
	case ErrRateLimited:
		msg = "Rate limited — please wait a moment."
	case ErrUnreachable:
		msg = "Could not reach Reddit API. Try again later."
	case ErrInvalidUsername:
		msg = "Please enter a valid Reddit username."
	default:
		msg = "Something went wrong. Try again."
	}
	return &AnalysisError{Kind: kind, Message: msg}
}
