package models

import (
	"time"
)

// Turn is one prior exchange in a conversation, as supplied by the client.
type Turn struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// ChatMessage is one assistant reply after extraction and validation. Text is
// the corrected plain text; HTML is the same content rendered from markdown.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	HTML      string    `json:"html,omitempty"`
	Fact      Fact      `json:"fact"`
	Fallback  bool      `json:"fallback"` // true when answered without the model
	CreatedAt time.Time `json:"createdAt"`
}
