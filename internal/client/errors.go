package client

import "fmt"

// APIError is a classified remote call failure. It unwraps to one of
// budget.ErrUnauthorized, budget.ErrUnavailable or budget.ErrRejected.
type APIError struct {
	Status int    // 0 when no response was received
	Detail string // message fit for the user
	Kind   error
	Err    error // underlying transport or status error, if any
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Status != 0 {
		return fmt.Sprintf("%v (%d)", e.Kind, e.Status)
	}
	return e.Kind.Error()
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
