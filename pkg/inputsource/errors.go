package inputsource

import (
	"errors"
	"fmt"
)

var (
	ErrInternal       = errors.New("internal error")
	ErrSourceNotFound = errors.New("input source not found")
	ErrSwitchFailed   = errors.New("input source switch failed")
)

// Result codes returned by a service's SelectByID.
const (
	CodeOK       int32 = 0
	CodeNotFound int32 = -1
	CodeRejected int32 = -2
)

// ForeignError is an unclassified failure reported by the service.
type ForeignError struct {
	Code int32
}

func (e *ForeignError) Error() string {
	return fmt.Sprintf("input source service error (code %d)", e.Code)
}

func resultError(code int32) error {
	switch code {
	case CodeOK:
		return nil
	case CodeNotFound:
		return ErrSourceNotFound
	case CodeRejected:
		return ErrSwitchFailed
	}

	return &ForeignError{Code: code}
}
