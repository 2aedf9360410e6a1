package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perr "releves/internal/platform/errors"
)

type submitPayload struct {
	MeterSerial string `json:"numero_serie" validate:"required"`
	NewIndex    int64  `json:"nouvel_index" validate:"min=0"`
}

func TestParseJSON_ValidPayload(t *testing.T) {
	r := httptest.NewRequest("POST", "/releves", strings.NewReader(
		`{"numero_serie":"CPT-001","nouvel_index":1350}`))

	got, err := ParseJSON[submitPayload](r)
	require.NoError(t, err)
	assert.Equal(t, "CPT-001", got.MeterSerial)
	assert.EqualValues(t, 1350, got.NewIndex)
}

func TestParseJSON_MissingRequiredFieldUsesJSONTag(t *testing.T) {
	r := httptest.NewRequest("POST", "/releves", strings.NewReader(
		`{"nouvel_index":10}`))

	_, err := ParseJSON[submitPayload](r)
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeValidation, perr.CodeOf(err))

	e, ok := perr.As(err)
	require.True(t, ok)
	assert.Equal(t, "numero_serie", e.Field())
}

func TestParseJSON_MinViolationShortMessage(t *testing.T) {
	r := httptest.NewRequest("POST", "/releves", strings.NewReader(
		`{"numero_serie":"CPT-001","nouvel_index":-5}`))

	_, err := ParseJSON[submitPayload](r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nouvel_index must be at least 0")
}

func TestParseJSON_RejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/releves", strings.NewReader(
		`{"numero_serie":"CPT-001","nouvel_index":1,"bogus":true}`))

	_, err := ParseJSON[submitPayload](r)
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeJSON, perr.CodeOf(err))
}

func TestParseJSON_EmptyBody(t *testing.T) {
	post := httptest.NewRequest("POST", "/releves", strings.NewReader(""))
	_, err := ParseJSON[submitPayload](post)
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeJSON, perr.CodeOf(err))

	get := httptest.NewRequest("GET", "/releves", strings.NewReader(""))
	got, err := ParseJSON[submitPayload](get)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestParseJSON_TrailingData(t *testing.T) {
	r := httptest.NewRequest("POST", "/releves", strings.NewReader(
		`{"numero_serie":"CPT-001","nouvel_index":1} {"again":true}`))

	_, err := ParseJSON[submitPayload](r)
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeJSON, perr.CodeOf(err))
}
