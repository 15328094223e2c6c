package validator

import (
	"testing"

	ierr "github.com/mjfashion/billdesk/internal/errors"
	"github.com/stretchr/testify/assert"
)

type signInForm struct {
	UserName string `validate:"required"`
	Password string `validate:"required,min=4"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(signInForm{UserName: "counter", Password: "secret"}))

	err := ValidateRequest(signInForm{UserName: "counter"})
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
