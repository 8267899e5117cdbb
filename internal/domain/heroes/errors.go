package heroes

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("hero not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError lista los campos requeridos que faltan.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return ErrInvalidInput.Error()
	}
	return e.Problems[0]
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
