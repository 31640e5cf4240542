package validation_test

import (
	"testing"

	"go-social-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type signupForm struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required,max=50,valid_name,no_emoji"`
}

type experienceForm struct {
	StartDate string `validate:"omitempty,iso_date"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func TestFormatValidationErrors(t *testing.T) {
	v := newValidator()

	t.Run("Should name the missing fields", func(t *testing.T) {
		err := v.Struct(signupForm{})
		messages := validation.FormatValidationErrors(err)
		assert.Contains(t, messages, "Email is required")
		assert.Contains(t, messages, "Name is required")
	})

	t.Run("Should describe a malformed email", func(t *testing.T) {
		err := v.Struct(signupForm{Email: "not-an-email", Name: "alice"})
		messages := validation.FormatValidationErrors(err)
		assert.Contains(t, messages, "Email must be a valid email address")
	})

	t.Run("Should fall back to a generic message for non-validation errors", func(t *testing.T) {
		messages := validation.FormatValidationErrors(assert.AnError)
		assert.Equal(t, []string{"Invalid request body"}, messages)
	})
}

func TestCustomValidators(t *testing.T) {
	v := newValidator()

	t.Run("valid_name rejects control symbols", func(t *testing.T) {
		assert.Error(t, v.Struct(signupForm{Email: "a@b.co", Name: "alice<script>"}))
		assert.NoError(t, v.Struct(signupForm{Email: "a@b.co", Name: "Mary-Jane O'Brien"}))
	})

	t.Run("no_emoji rejects emoji", func(t *testing.T) {
		assert.Error(t, v.Struct(signupForm{Email: "a@b.co", Name: "alice \U0001F600"}))
	})

	t.Run("iso_date accepts YYYY-MM-DD and empty", func(t *testing.T) {
		assert.NoError(t, v.Struct(experienceForm{StartDate: "2023-04-01"}))
		assert.NoError(t, v.Struct(experienceForm{}))
		assert.Error(t, v.Struct(experienceForm{StartDate: "04/01/2023"}))
		assert.Error(t, v.Struct(experienceForm{StartDate: "2023-13-45"}))
	})
}
