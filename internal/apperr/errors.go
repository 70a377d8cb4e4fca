package apperr

import "fmt"

// ValidationError reports user input that cannot be used as given: a malformed
// measure parameter, a bad evaluation spec or an invalid API request.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// NewFieldValidation ties the failure to a named input, e.g. the measure whose
// parameter string was rejected.
func NewFieldValidation(field, msg string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: msg, Err: err}
}
