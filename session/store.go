package session

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store keeps all live conversations in memory, keyed by session id.
type Store struct {
	sessions map[string]*Conversation
	mtx      sync.RWMutex
}

// GetOrCreate returns the conversation for id, creating it on first use.
// A blank id gets a fresh generated one, so callers can always hand the
// returned conversation's ID back to the client.
func (s *Store) GetOrCreate(id string) *Conversation {
	if len(strings.TrimSpace(id)) == 0 {
		id = uuid.New().String()
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if conv, ok := s.sessions[id]; ok {
		return conv
	}

	conv := &Conversation{id: id}

	s.sessions[id] = conv

	return conv
}

func (s *Store) ListIds() []string {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) Delete(id string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.sessions, id)
}

// Clear drops every conversation.
func (s *Store) Clear() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.sessions = map[string]*Conversation{}
}

func NewStore() *Store {
	return &Store{
		sessions: map[string]*Conversation{},
		mtx:      sync.RWMutex{},
	}
}
