package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "without internal error",
			err:      ErrNotFound,
			expected: "not_found: Resource not found",
		},
		{
			name:     "with internal error",
			err:      ErrDatabase.WithInternal(errors.New("connection refused")),
			expected: "database_error: Database operation failed (connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorIs_MatchesByCode(t *testing.T) {
	err := ErrProtectedReferences.
		WithMessage("Word 'w1' is used by 2 games").
		WithDetails(map[string]any{"references": 2})

	assert.True(t, errors.Is(err, ErrProtectedReferences))
	assert.False(t, errors.Is(err, ErrValidation))

	wrapped := fmt.Errorf("delete: %w", err)
	assert.True(t, errors.Is(wrapped, ErrProtectedReferences))
}

func TestWithHelpers_DoNotMutateSentinel(t *testing.T) {
	_ = ErrValidation.WithMessage("changed").WithDetails(map[string]any{"a": 1})

	assert.Equal(t, "Validation failed", ErrValidation.Message)
	assert.Empty(t, ErrValidation.Details)
}

func TestWithInternal_KeepsDetails(t *testing.T) {
	cause := errors.New("boom")
	err := ErrCascadeIncomplete.WithDetails(map[string]any{"edges_removed": 3}).WithInternal(cause)

	assert.Equal(t, 3, err.Details["edges_removed"])
	assert.ErrorIs(t, err, cause)
}

func TestToHTTPError(t *testing.T) {
	status, body := ToHTTPError(ErrIncompatibleTypes.WithDetails(map[string]any{"target_type": "Attribute"}))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	inner := body["error"].(map[string]any)
	assert.Equal(t, "incompatible_relationship_types", inner["code"])
	assert.Equal(t, map[string]any{"target_type": "Attribute"}, inner["details"])

	status, body = ToHTTPError(errors.New("plain"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", body["error"].(map[string]any)["code"])
}
