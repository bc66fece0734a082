// Package domain defines the core domain models for the ski tutor service.
package domain

// Role identifies the author of a message.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a conversation. Messages are immutable once
// created; ordering within a session is chronological and never changes.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is an ordered conversation history keyed by an opaque identifier.
type Session struct {
	ID       string    `json:"session_id"`
	Messages []Message `json:"messages"`
}

// Category is the classification bucket assigned to an utterance before
// routing. Exactly one or none applies per utterance.
type Category string

const (
	CategoryEquipment Category = "equipment"
	CategoryMedical   Category = "medical"
	CategoryResort    Category = "resort_recommendation"
	CategoryAdvanced  Category = "advanced_technique"
	CategoryInjection Category = "injection_attempt"
	CategoryNone      Category = "none"
)

// ChatRequest is the request body for POST /chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the response body for POST /chat.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// ClearRequest is the request body for POST /clear.
type ClearRequest struct {
	SessionID string `json:"session_id,omitempty"`
}
