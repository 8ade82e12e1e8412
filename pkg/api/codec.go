// Package api defines the eventbudget wire contract: request and response
// messages, Connect procedure names, handler constructors and clients.
//
// Messages are plain Go structs exchanged as JSON. Register JSONCodec on
// both ends (the handler constructors and clients here do so already).
package api

import (
	"encoding/json"
	"fmt"
)

// JSONCodec encodes messages with encoding/json. Its name replaces
// connect's built-in protobuf JSON codec for the "json" content subtype.
type JSONCodec struct{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
