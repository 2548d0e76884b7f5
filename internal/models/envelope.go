package models

import "encoding/json"

// Envelope is the response shape every upstream endpoint uses:
// {"success": bool, "data": ..., "message": ...}. Data stays raw so
// each client can decode its own payload type.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`

	// Some endpoints inline the payload next to success instead of
	// nesting it under data. Token and Customer catch the auth shape.
	Token    string          `json:"token,omitempty"`
	Customer json.RawMessage `json:"customer,omitempty"`
}

// Result is the normalized outcome handed to handlers and flows:
// either success with data, or failure with a user-facing message.
type Result struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}
