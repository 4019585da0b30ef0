// Package repository defines the data access layer of the frontend.  The
// data lives in the classifieds backend, so every repository here is a thin
// typed wrapper over backend API calls.  The sentinel errors below let
// handlers distinguish failure scenarios without inspecting HTTP statuses.
package repository

import (
	"errors"
	"net/http"

	"github.com/iliyamo/limpopo-connect-web/internal/backend"
)

// ErrForbidden is returned when the backend refuses an operation on a
// resource owned by someone else.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when the addressed ad or user does not exist.
var ErrNotFound = errors.New("not found")

// translate maps 403 and 404 backend responses to the sentinels while
// keeping the original error (and its detail) reachable through errors.As.
func translate(err error) error {
	apiErr, ok := backend.AsAPIError(err)
	if !ok {
		return err
	}
	switch apiErr.Status {
	case http.StatusForbidden:
		return errors.Join(ErrForbidden, err)
	case http.StatusNotFound:
		return errors.Join(ErrNotFound, err)
	}
	return err
}
