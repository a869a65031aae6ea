package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// UnknownToolError is returned when the model names a tool outside the
// registry.
type UnknownToolError struct {
	ErrorMessage
	Tool string
}

// ToolArgumentsError is returned when the model calls a known tool with
// arguments that do not decode or validate. The caller's request was fine.
type ToolArgumentsError struct {
	ErrorMessage
	Tool string
	Err  error
}

func (e *ToolArgumentsError) Unwrap() error { return e.Err }

type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
	Err       error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewUnknownToolError(tool string) *UnknownToolError {
	return &UnknownToolError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("model requested unknown tool: %s", tool)},
		Tool:         tool,
	}
}

func NewToolArgumentsError(tool string, err error) *ToolArgumentsError {
	return &ToolArgumentsError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("model sent invalid arguments for %s: %v", tool, err)},
		Tool:         tool,
		Err:          err,
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s: %v", message, err)},
		Operation:    operation,
		Err:          err,
	}
}

func NewExternalServiceError(service, message string, transient bool, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s: %v", message, err)},
		Service:      service,
		Transient:    transient,
		Err:          err,
	}
}
