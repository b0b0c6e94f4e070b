package domain

import (
	"context"
	"time"
)

// ConversationStore defines conversation persistence.
type ConversationStore interface {
	Create(ctx context.Context, userID string, startTime time.Time) (*Conversation, error)
	FindByID(ctx context.Context, id string) (*Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]*Conversation, error)
}

// MessageStore defines message persistence. Append must be durable before it
// returns; UpdateEmotion is the single permitted mutation of a stored message.
type MessageStore interface {
	Append(ctx context.Context, msg *Message) (*Message, error)
	UpdateEmotion(ctx context.Context, messageID, emotion string) error
	ListByConversation(ctx context.Context, conversationID string) ([]*Message, error)
}

// EmotionClassifier maps free text to an emotion label.
type EmotionClassifier interface {
	AnalyzeEmotion(ctx context.Context, text string) (string, error)
}

// ResponseGenerator produces a reply for the given emotion and user text.
type ResponseGenerator interface {
	GenerateReply(ctx context.Context, emotion, priorContext, text string) (string, error)
}
