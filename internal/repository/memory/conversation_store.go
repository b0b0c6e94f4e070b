package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/resilia-ai/backend/internal/domain"
)

// ConversationStore keeps conversations in process memory. Used by tests and
// as the storage fallback when no database is configured.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]*domain.Conversation
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		conversations: make(map[string]*domain.Conversation),
	}
}

func (s *ConversationStore) Create(_ context.Context, userID string, startTime time.Time) (*domain.Conversation, error) {
	conv := &domain.Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartTime: startTime.UTC(),
	}

	s.mu.Lock()
	s.conversations[conv.ID] = conv
	s.mu.Unlock()

	copied := *conv
	return &copied, nil
}

func (s *ConversationStore) FindByID(_ context.Context, id string) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	copied := *conv
	return &copied, nil
}

func (s *ConversationStore) ListByUser(_ context.Context, userID string) ([]*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conversations := make([]*domain.Conversation, 0)
	for _, conv := range s.conversations {
		if conv.UserID != userID {
			continue
		}
		copied := *conv
		conversations = append(conversations, &copied)
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].StartTime.After(conversations[j].StartTime)
	})
	return conversations, nil
}
