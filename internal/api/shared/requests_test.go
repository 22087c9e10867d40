package shared

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"  validate:"required,min=1"`
}

func TestDecodeJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"email":"a@b.com","name":"Ada"}`))

	var decoded sampleRequest
	require.NoError(t, DecodeJSON(req, &decoded))
	assert.Equal(t, "a@b.com", decoded.Email)
	assert.Equal(t, "Ada", decoded.Name)

	bad := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"email":`))
	assert.Error(t, DecodeJSON(bad, &decoded))
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Email: "a@b.com", Name: "Ada"}))
	assert.Error(t, ValidateRequest(sampleRequest{Email: "not-an-email", Name: "Ada"}))
	assert.Error(t, ValidateRequest(sampleRequest{}))
}

func TestFieldErrorsFrom(t *testing.T) {
	err := ValidateRequest(sampleRequest{Email: "not-an-email"})
	require.Error(t, err)

	fieldErrs := FieldErrorsFrom(err)
	require.Len(t, fieldErrs, 2)

	byField := map[string]string{}
	for _, fe := range fieldErrs {
		byField[fe.Field] = fe.Message
	}
	assert.Equal(t, "invalid email format", byField["Email"])
	assert.Equal(t, "required field", byField["Name"])
}

func TestFieldErrorsFromNonValidatorError(t *testing.T) {
	assert.Nil(t, FieldErrorsFrom(assert.AnError))
}
