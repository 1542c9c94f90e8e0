package service

import "errors"

var (
	// ErrPasswordRequired is returned when no password was submitted.
	ErrPasswordRequired = errors.New("password is required")
	// ErrPasswordNotConfigured is returned when neither the work nor the site has a password.
	ErrPasswordNotConfigured = errors.New("password protection is not configured")
	// ErrIncorrectPassword is returned when the submitted password does not match.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrUnexpectedDocument is returned when the store hands back a document of the wrong type.
	ErrUnexpectedDocument = errors.New("unexpected document type")
)
