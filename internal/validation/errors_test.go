package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	err := New("fullName", "is required")
	assert.Equal(t, "validation error: fullName - is required", err.Error())

	noField := &Error{Message: "bad input", Cause: errors.New("boom")}
	assert.Equal(t, "validation error: bad input: boom", noField.Error())
	assert.EqualError(t, errors.Unwrap(noField), "boom")
}

func TestIsValidation(t *testing.T) {
	wrapped := fmt.Errorf("export refused: %w", New("fullName", "is required"))
	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsValidation(errors.New("plain")))
	assert.False(t, IsValidation(nil))
}

func TestFromValidator_FieldErrors(t *testing.T) {
	type sample struct {
		Level string `validate:"oneof=entry mid"`
		Email string `validate:"required,email"`
	}
	raw := validator.New().Struct(&sample{Level: "guru", Email: ""})
	require.Error(t, raw)

	err := FromValidator(raw)
	var ve *Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Level,Email", ve.Field)
	assert.Contains(t, ve.Message, "Level failed oneof=entry mid")
	assert.Contains(t, ve.Message, "Email failed required")
}

func TestFromValidator_OtherErrors(t *testing.T) {
	assert.NoError(t, FromValidator(nil))

	err := FromValidator(errors.New("not a validator error"))
	var ve *Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "invalid input", ve.Message)
}
