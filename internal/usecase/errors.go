package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/esports-hub/internal/domain/store"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// wrapStoreError annotates a repository write failure. Stale versions become ErrConflict and
// missing rows ErrNotFound; referenced and duplicate failures keep their store classification.
func wrapStoreError(action string, err error) error {
	switch {
	case errors.Is(err, store.ErrStale):
		return fmt.Errorf("%w: %s: %w", ErrConflict, action, err)
	case errors.Is(err, store.ErrNoRows):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, action, err)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
