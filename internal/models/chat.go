// internal/models/chat.go
package models

// ChatRequest is the inbound body of POST /chat.
type ChatRequest struct {
	Query string `json:"query"`
}

// ChatResponse is the outbound body of POST /chat. Source is null when the
// answer has no official source URL.
type ChatResponse struct {
	Intent string      `json:"intent"`
	Answer string      `json:"answer"`
	Source *string     `json:"source"`
	Data   interface{} `json:"data,omitempty"`
}
