package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	msg := "something went wrong"
	resp := Error(msg)

	assert.Equal(t, msg, resp.Error)
}

func TestMessage(t *testing.T) {
	msg := "user deleted successfully"
	resp := Message(msg)

	assert.Equal(t, msg, resp.Message)
}

func TestValidationError(t *testing.T) {
	type TestStruct struct {
		Username string `validate:"required"`
		Email    string `validate:"required,email"`
	}

	v := validator.New()
	ts := TestStruct{
		Username: "",
		Email:    "not-an-email",
	}

	err := v.Struct(ts)
	assert.Error(t, err)

	validationErrors := err.(validator.ValidationErrors)
	resp := ValidationError(validationErrors)

	assert.NotEmpty(t, resp.Error)
	assert.Contains(t, resp.Error, "field Username is a required field")
	assert.Contains(t, resp.Error, "field Email must be a valid email")
}
