// Package models provides the data records exchanged with the token monitoring API.
package models

import "encoding/json"

// Envelope is the wrapper returned by every API endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
}

// ErrorMessage returns the application error carried by the envelope, or a generic message when none is set.
func (e Envelope) ErrorMessage() string {
	if e.Error == nil || *e.Error == "" {
		return "Unknown API error"
	}
	return *e.Error
}
