package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapEnvelope_Success(t *testing.T) {
	data, ok, err := unwrapEnvelope([]byte(`{"success": true, "data": {"x": 1}}`))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"x": 1}`, string(data))
}

func TestUnwrapEnvelope_ReportedFailure(t *testing.T) {
	data, ok, err := unwrapEnvelope([]byte(`{"success": false, "message": "nope"}`))
	require.NoError(t, err)
	assert.False(t, ok, "success=false is a typed absence, not an error")
	assert.Nil(t, data)
}

func TestUnwrapEnvelope_AbsentOrNullPayload(t *testing.T) {
	for _, body := range []string{
		`{"success": true}`,
		`{"success": true, "data": null}`,
	} {
		_, ok, err := unwrapEnvelope([]byte(body))
		require.NoError(t, err, body)
		assert.False(t, ok, "missing payload must unwrap to absence: %s", body)
	}
}

func TestUnwrapEnvelope_Malformed(t *testing.T) {
	_, _, err := unwrapEnvelope([]byte(`{"success": tru`))
	assert.Error(t, err)
}

func TestUnwrapInto_DecodesPayload(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	ok, err := unwrapInto([]byte(`{"success": true, "data": {"name": "clove"}}`), &dst)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "clove", dst.Name)
}

func TestUnwrapInto_EmptyEnvelopeLeavesDstUntouched(t *testing.T) {
	dst := []string{"sentinel"}
	ok, err := unwrapInto([]byte(`{"success": false}`), &dst)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"sentinel"}, dst)
}
