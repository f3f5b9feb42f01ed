package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	t.Run("without wrapped error", func(t *testing.T) {
		err := NewValidationError("rating must be between 1 and 5")
		assert.Equal(t, "VALIDATION: rating must be between 1 and 5", err.Error())
	})

	t.Run("with wrapped error", func(t *testing.T) {
		cause := fmt.Errorf("connection refused")
		err := NewInternalError("failed to persist review", cause)
		assert.Contains(t, err.Error(), "INTERNAL")
		assert.Contains(t, err.Error(), "connection refused")
		assert.Equal(t, cause, err.Unwrap())
	})
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeConflict, TypeOf(NewConflictError("email taken")))
	assert.Equal(t, ErrorTypeReference, TypeOf(NewReferenceError("amenity", "a-1")))
	assert.Equal(t, ErrorTypeInternal, TypeOf(fmt.Errorf("plain error")))

	wrapped := fmt.Errorf("facade: %w", NewForbiddenError("not the owner"))
	assert.Equal(t, ErrorTypeForbidden, TypeOf(wrapped))
}

func TestIsType(t *testing.T) {
	err := NewNotFoundError("place p-1 not found")
	assert.True(t, IsType(err, ErrorTypeNotFound))
	assert.False(t, IsType(err, ErrorTypeConflict))
	assert.False(t, IsType(nil, ErrorTypeNotFound))
}

func TestNewReferenceError_Message(t *testing.T) {
	err := NewReferenceError("amenity", "missing-id")
	assert.Equal(t, "amenity missing-id does not exist", err.Message)
}
