package domain

import "context"

// ChatMessage is one turn of an assistant conversation.
// swagger:model ChatMessage
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatAssistant is the opaque external completion service. A failure to reach
// it must not affect any other operation; implementations carry their own
// timeout.
type ChatAssistant interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}
