package service

import "errors"

var ErrUploadFailed = errors.New("upload failed")

// ValidationError is returned before any request reaches the notes API.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// LoginError carries the message shown on the login form.
type LoginError struct {
	Message string
	Err     error
	// Unavailable is set when the notes API could not answer at all.
	Unavailable bool
}

func (e *LoginError) Error() string {
	return e.Message
}

func (e *LoginError) Unwrap() error {
	return e.Err
}
