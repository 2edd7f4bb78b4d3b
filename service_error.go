package main

import "fmt"

// ServiceError is the uniform error type for application services.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error formats as [Service.Operation] error message
func (e *ServiceError) Error() string {
	return fmt.Sprintf("[%s.%s] %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the original error so errors.Is/errors.As work
// through the wrapper.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// WrapError creates an error carrying service context. Returns nil
// when err is nil.
func WrapError(service, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Service: service, Operation: operation, Err: err}
}
