package services

import "errors"

// ValidationError is a client mistake, answered with HTTP 400. Everything
// else from the service layer is either gorm.ErrRecordNotFound (404) or an
// internal error (500).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
