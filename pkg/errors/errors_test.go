package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBackend(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		message  string
		wantCode string
		wantMsg  string
	}{
		{"unauthorized maps to session expired", http.StatusUnauthorized, "token invalid", ErrSessionExpired.Code, ErrSessionExpired.Message},
		{"forbidden keeps message", http.StatusForbidden, "not your client", ErrForbidden.Code, "not your client"},
		{"not found keeps message", http.StatusNotFound, "no such post", ErrNotFound.Code, "no such post"},
		{"server error collapses", http.StatusBadGateway, "upstream exploded", ErrBackend.Code, ErrBackend.Message},
		{"business rejection verbatim", http.StatusBadRequest, "planned_at is in the past", "BACKEND_REJECTED", "planned_at is in the past"},
		{"rejection without message", http.StatusConflict, "", "BACKEND_REJECTED", http.StatusText(http.StatusConflict)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := FromBackend(tc.status, tc.message)
			assert.Equal(t, tc.wantCode, e.Code)
			assert.Equal(t, tc.wantMsg, e.Message)
		})
	}
}

func TestFromBackendKeepsRejectionStatus(t *testing.T) {
	e := FromBackend(http.StatusUnprocessableEntity, "bad slot")
	assert.Equal(t, http.StatusUnprocessableEntity, e.Status)
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	typed := Clone(ErrNotFound, "missing")
	assert.Same(t, typed, FromError(typed))

	wrapped := Wrap(typed, ErrBackend.Code, ErrBackend.Status, "call failed")
	assert.Equal(t, ErrNotFound.Code, FromError(errors.Unwrap(wrapped)).Code)

	plain := FromError(errors.New("boom"))
	require.NotNil(t, plain)
	assert.Equal(t, ErrInternal.Code, plain.Code)
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrValidation, "cursor must be YYYY-MM-DD")
	assert.Equal(t, "cursor must be YYYY-MM-DD", clone.Message)
	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.Equal(t, ErrValidation.Code, clone.Code)
}
