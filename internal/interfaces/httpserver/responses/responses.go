package responses

import "shoprec-server/internal/domain/recommendation"

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewError wraps a message in the error body.
func NewError(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// ChatMessage mirrors the assistant message shape the widget consumes.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the non-streaming body of POST /api/chat.
type ChatResponse struct {
	Message        string                        `json:"message"`
	Recommendation recommendation.Recommendation `json:"recommendation"`
}

// FallbackResponse is the degraded-mode body of POST /api/chat: a
// pre-rendered assistant turn the widget renders like a normal reply.
type FallbackResponse struct {
	Messages []ChatMessage `json:"messages"`
}
