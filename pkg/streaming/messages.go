// Package streaming defines the live preview WebSocket protocol.
package streaming

import (
	"encoding/json"
	"fmt"

	"github.com/modgarage/customizer/pkg/core"
)

// Message type constants matching the live preview protocol.
const (
	// client -> server
	TypeValuate = "valuate"
	TypeSave    = "save"

	// server -> client
	TypeValuation = "valuation"
	TypeSaved     = "saved"
	TypeError     = "error"
)

// Error codes carried by ErrorPayload.
const (
	CodeNotFound   = "not_found"
	CodeInvalid    = "invalid"
	CodeBadRequest = "bad_request"
	CodeInternal   = "internal"
)

// Envelope wraps all messages sent over the WebSocket.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SavePayload optionally renames the previewed design before it is stored.
type SavePayload struct {
	Name string `json:"name,omitempty"`
}

// ValuationPayload is the reply to a valuate message.
type ValuationPayload = core.Valuation

// ErrorPayload reports a rejected message.
type ErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// MarshalEnvelope builds a JSON-encoded Envelope from a message type and payload.
func MarshalEnvelope(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	data, err := json.Marshal(Envelope{Type: msgType, Payload: raw})
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", msgType, err)
	}
	return data, nil
}

// DecodePayload unmarshals the envelope payload into v.
func (e Envelope) DecodePayload(v any) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("%s: missing payload", e.Type)
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("%s: decode payload: %w", e.Type, err)
	}
	return nil
}
