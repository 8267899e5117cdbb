package pets

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("pet not found")
	ErrForbidden      = errors.New("forbidden")
	ErrAlreadyAdopted = errors.New("pet already adopted")
	ErrInvalidState   = errors.New("invalid state")
)

// StateError es un ErrInvalidState con el motivo legible para el cliente.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string { return e.Reason }

func (e *StateError) Unwrap() error { return ErrInvalidState }

func stateError(reason string) error {
	return &StateError{Reason: reason}
}

// ErrOwnerNotFound lo devuelve un OwnerResolver cuando no existe héroe con ese nombre.
var ErrOwnerNotFound = errors.New("owner not found")
