package session

import (
	"sync"

	"github.com/w-h-a/tutor/generator"
)

// Conversation is one session's dialog transcript. It carries its own lock
// so appends from concurrent requests against the same session stay ordered.
type Conversation struct {
	id    string
	turns []generator.Message
	mtx   sync.Mutex
}

func (c *Conversation) ID() string {
	return c.id
}

// Append records one user/assistant exchange.
func (c *Conversation) Append(question, answer string) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.turns = append(c.turns,
		generator.Message{Role: generator.RoleUser, Content: question},
		generator.Message{Role: generator.RoleAssistant, Content: answer},
	)
}

// History returns a copy of the most recent messages, at most window entries.
// A window of 0 or less means the whole transcript.
func (c *Conversation) History(window int) []generator.Message {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	start := 0
	if window > 0 && len(c.turns) > window {
		start = len(c.turns) - window
	}

	out := make([]generator.Message, len(c.turns)-start)
	copy(out, c.turns[start:])

	return out
}

func (c *Conversation) Len() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return len(c.turns)
}
