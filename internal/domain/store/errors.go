package store

import "errors"

// Classification of persistence failures shared by every repository implementation.
var (
	ErrNoRows     = errors.New("no rows affected")
	ErrStale      = errors.New("stale version")
	ErrReferenced = errors.New("record is referenced by other records")
	ErrDuplicate  = errors.New("duplicate record")
)

// BackendError keeps the storage backend's own message while classifying it with Kind.
type BackendError struct {
	Kind    error
	Code    string
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

func (e *BackendError) Unwrap() error {
	return e.Kind
}

// BackendMessage returns the first backend message found in err's chain.
func BackendMessage(err error) (string, bool) {
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message, true
	}
	return "", false
}
