package requests

// ChatMessage is one conversation turn sent by the widget.
type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ChatRequest is the body of POST /api/chat. Streaming defaults to true
// when the field is absent.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1,dive"`
	Language string        `json:"language"`
	Stream   *bool         `json:"stream"`
}

// WantsStream reports whether the response should be streamed.
func (r ChatRequest) WantsStream() bool {
	return r.Stream == nil || *r.Stream
}

// LastUserContent returns the content of the most recent user turn.
func (r ChatRequest) LastUserContent() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == "user" {
			return r.Messages[i].Content
		}
	}
	return ""
}

// AnalyzeRequest is the body of POST /api/chat/analyze.
type AnalyzeRequest struct {
	Content string `json:"content" binding:"required"`
}

// RerankRequest is the body of POST /api/recommendations/rerank. All fields
// are product ids.
type RerankRequest struct {
	Primary      string   `json:"primary" binding:"required"`
	Alternatives []string `json:"alternatives" binding:"required,min=1"`
	Chosen       string   `json:"chosen" binding:"required"`
}
