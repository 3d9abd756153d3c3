package generator

import "context"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one turn of the conversation sent to the completion model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}
