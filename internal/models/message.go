package models

import (
	"time"
)

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a conversation.
// A slice of these is what gets sealed into Chat.ChatData.
type ChatMessage struct {
	Role      string    `json:"role"`            // "user" or "assistant"
	Content   string    `json:"content"`         // The text content of the message
	Timestamp time.Time `json:"timestamp"`       // Time the message was recorded
	Error     bool      `json:"error,omitempty"` // Set on the apology written when the assistant failed
}
