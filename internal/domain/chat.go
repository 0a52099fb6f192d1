package domain

import "time"

// Message represents a persisted chat turn.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	Sources   []Source  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Answer is the generated response together with the chunks it was
// grounded on, in retrieval order.
type Answer struct {
	Text    string   `json:"answer"`
	Sources []Source `json:"sources,omitempty"`
}

// LoginRequest is the request to authenticate.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AskRequest is the request to ask a question about the indexed document.
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}
