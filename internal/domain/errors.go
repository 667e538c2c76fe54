package domain

// EntityValidationError: нарушение инварианта агрегата. Различается только текстом сообщения.
type EntityValidationError struct {
	Message string
}

func NewEntityValidationError(message string) *EntityValidationError {
	return &EntityValidationError{Message: message}
}

func (e *EntityValidationError) Error() string {
	return e.Message
}
