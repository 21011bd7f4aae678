package errors_test

import (
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "github.com/rohitkandpal03/shopz-store/errors"
)

func TestFormatErrorValidation(t *testing.T) {
	type input struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}

	err := validator.New().Struct(input{Email: "not-an-email"})
	require.Error(t, err)

	msg := apperrors.FormatError(err)
	assert.Contains(t, msg, "Name: is required")
	assert.Contains(t, msg, "Email: must be a valid email address")
}

func TestFormatErrorDuplicateKey(t *testing.T) {
	assert.Equal(t, "Record already exists", apperrors.FormatError(gorm.ErrDuplicatedKey))

	wrapped := apperrors.New(409, "Email already exists", gorm.ErrDuplicatedKey)
	assert.Equal(t, "Email already exists", apperrors.FormatError(wrapped))
}

func TestFormatErrorAppError(t *testing.T) {
	assert.Equal(t, "Not enough stock", apperrors.FormatError(apperrors.ErrInsufficientStock))
	assert.Equal(t, "Cart not found", apperrors.FormatError(apperrors.NotFound("Cart not found")))
}

func TestFormatErrorFallback(t *testing.T) {
	assert.Equal(t, "boom", apperrors.FormatError(fmt.Errorf("boom")))
}

func TestAsRedirect(t *testing.T) {
	redirect := &apperrors.Redirect{To: "/cart", Message: "Your cart is empty"}

	got, ok := apperrors.AsRedirect(redirect)
	require.True(t, ok)
	assert.Equal(t, "/cart", got.To)

	wrapped := fmt.Errorf("checkout: %w", redirect)
	got, ok = apperrors.AsRedirect(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Your cart is empty", got.Message)

	_, ok = apperrors.AsRedirect(fmt.Errorf("boom"))
	assert.False(t, ok)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, apperrors.IsNotFound(apperrors.NotFound("Product not found")))
	assert.False(t, apperrors.IsNotFound(apperrors.ErrInsufficientStock))
	assert.False(t, apperrors.IsNotFound(fmt.Errorf("boom")))
}
