package ipc

import (
	"encoding/json"
	"fmt"
)

// Decode unmarshals an envelope's payload into the request type T.
// An empty payload leaves T at its zero value.
func Decode[T any](env Envelope) (T, error) {
	var v T
	if len(env.Data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return v, fmt.Errorf("unmarshal %s: %w", env.Type, err)
	}
	return v, nil
}

// Reply wraps data in an envelope for returning from a Handler.
func Reply(msgType string, data any) (*Envelope, error) {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return nil, err
	}
	return &env, nil
}
