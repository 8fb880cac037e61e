package usecase

// ValidationError marks malformed or out-of-range client input. Handlers
// map it to 400; anything unrecognized stays a server error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
