package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/resilia-ai/backend/internal/domain"
)

// MessageStore keeps messages in process memory, ordered by append.
type MessageStore struct {
	mu       sync.RWMutex
	messages map[string][]*domain.Message
	byID     map[string]*domain.Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		messages: make(map[string][]*domain.Message),
		byID:     make(map[string]*domain.Message),
	}
}

func (s *MessageStore) Append(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *msg
	stored.ID = uuid.NewString()
	stored.Seq = int64(len(s.messages[msg.ConversationID])) + 1
	stored.Timestamp = msg.Timestamp.UTC()

	s.messages[stored.ConversationID] = append(s.messages[stored.ConversationID], &stored)
	s.byID[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (s *MessageStore) UpdateEmotion(_ context.Context, messageID, emotion string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.byID[messageID]
	if !ok {
		return domain.ErrMessageNotFound
	}
	msg.Emotion = &emotion
	return nil
}

func (s *MessageStore) ListByConversation(_ context.Context, conversationID string) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.messages[conversationID]
	messages := make([]*domain.Message, 0, len(stored))
	for _, msg := range stored {
		copied := *msg
		messages = append(messages, &copied)
	}
	return messages, nil
}
