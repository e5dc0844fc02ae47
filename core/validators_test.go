package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string   `json:"name" validate:"notblank"`
	Code string   `json:"code,omitempty" validate:"required"`
	Tags []string `json:"tags" validate:"dive,tag"`
}

func TestValidators(t *testing.T) {
	validate, translator := NewValidator()

	valid := sample{Name: "x", Code: "c", Tags: []string{"power-rule", "IUPAC", "2023"}}
	require.NoError(t, validate.Struct(valid))

	invalid := sample{Name: "  ", Tags: []string{"ok", "not ok", "-dash"}}
	err := TranslateValidationError(validate.Struct(invalid), translator, "sample")
	require.Error(t, err)

	assert.Equal(t, []FieldError{
		{Field: "sample.name", Error: "name cannot be blank"},
		{Field: "sample.code", Error: "code is required"},
		{Field: "sample.tags[1]", Error: "tags[1] may only contain letters, digits and dashes"},
		{Field: "sample.tags[2]", Error: "tags[2] may only contain letters, digits and dashes"},
	}, FieldErrors(err))
	assert.Contains(t, err.Error(), "sample.name: name cannot be blank; ")
}

func TestTranslateValidationError_otherErrors(t *testing.T) {
	_, translator := NewValidator()
	boom := errors.New("boom")
	assert.Equal(t, boom, TranslateValidationError(boom, translator))
	assert.Nil(t, FieldErrors(boom))
}

func TestShutdownError(t *testing.T) {
	err := NewShutdownError("stopping %s", "now")
	assert.Equal(t, "stopping now", err.Error())
	assert.True(t, IsShutdown(err))
	assert.False(t, IsShutdown(errors.New("stopping now")))
}
