package streaming

import (
	"encoding/json"
	"testing"

	"github.com/modgarage/customizer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalEnvelope(t *testing.T) {
	data, err := MarshalEnvelope(TypeError, ErrorPayload{Message: "vehicle model not found", Code: CodeNotFound})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","payload":{"message":"vehicle model not found","code":"not_found"}}`, string(data))
}

func TestMarshalEnvelope_Unsupported(t *testing.T) {
	_, err := MarshalEnvelope(TypeValuation, make(chan int))
	assert.Error(t, err)
}

func TestDecodePayload(t *testing.T) {
	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(`{"type":"valuate","payload":{"name":"x","baseModel":"adder"}}`), &env))
	assert.Equal(t, TypeValuate, env.Type)

	var d core.Design
	require.NoError(t, env.DecodePayload(&d))
	assert.Equal(t, "adder", d.BaseModel)
}

func TestDecodePayload_Errors(t *testing.T) {
	var d core.Design
	assert.Error(t, Envelope{Type: TypeValuate}.DecodePayload(&d))
	assert.Error(t, Envelope{Type: TypeValuate, Payload: json.RawMessage(`"nope"`)}.DecodePayload(&d))
}
