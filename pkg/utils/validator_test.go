package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ConnType *string `json:"conn_type" validate:"required"`
	Port     *int    `json:"port" validate:"omitempty,gte=0,lte=65535"`
}

func TestFormatValidationError_UsesJSONNames(t *testing.T) {
	err := ValidateStruct(&sample{})
	require.Error(t, err)
	assert.Equal(t, "field 'conn_type' is required", FormatValidationError(err))

	port := 70000
	typ := "mysql"
	err = ValidateStruct(&sample{ConnType: &typ, Port: &port})
	require.Error(t, err)
	assert.Equal(t, "field 'port' must be less than or equal to 65535", FormatValidationError(err))
}

func TestFormatValidationError_JSONErrors(t *testing.T) {
	var s sample
	err := json.Unmarshal([]byte(`{"conn_type": 0}`), &s)
	require.Error(t, err)
	assert.Equal(t, "field 'conn_type' should be string", FormatValidationError(err))

	err = json.Unmarshal([]byte(`{"conn_type": `), &s)
	require.Error(t, err)
	assert.NotEmpty(t, FormatValidationError(err))

	assert.Equal(t, "", FormatValidationError(nil))
}
