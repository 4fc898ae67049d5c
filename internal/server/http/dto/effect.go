package dto

import "time"

// EffectResponse describes a journaled fulfillment effect.
type EffectResponse struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Title     string    `json:"title,omitempty"`
	Body      string    `json:"body,omitempty"`
	Percent   int       `json:"percent,omitempty"`
	Active    bool      `json:"active,omitempty"`
	EmittedAt time.Time `json:"emitted_at"`
}
