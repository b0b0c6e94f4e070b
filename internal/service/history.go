package service

import (
	"context"
	"fmt"

	"github.com/resilia-ai/backend/internal/config"
	"github.com/resilia-ai/backend/internal/domain"
)

// HistoryService projects stored conversations into display-ready shapes.
// It only reads; the chat pipeline is the sole writer.
type HistoryService struct {
	conversations domain.ConversationStore
	messages      domain.MessageStore
}

func NewHistoryService(conversations domain.ConversationStore, messages domain.MessageStore) *HistoryService {
	return &HistoryService{conversations: conversations, messages: messages}
}

type ConversationSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
}

type MessageView struct {
	ID        string  `json:"id"`
	Content   string  `json:"content"`
	Sender    string  `json:"sender"`
	Emotion   *string `json:"emotion"`
	Timestamp string  `json:"timestamp"`
}

// ListConversations returns the user's conversations, newest first, titled by
// their first message.
func (s *HistoryService) ListConversations(ctx context.Context, userID string) ([]ConversationSummary, error) {
	conversations, err := s.conversations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		messages, err := s.messages.ListByConversation(ctx, conv.ID)
		if err != nil {
			return nil, fmt.Errorf("load messages for title: %w", err)
		}

		title := config.DefaultConversationTitle
		if len(messages) > 0 {
			title = deriveTitle(messages[0].Content)
		}

		summaries = append(summaries, ConversationSummary{
			ID:        conv.ID,
			Title:     title,
			StartTime: conv.StartTime.Format(config.StartTimeLayout),
		})
	}
	return summaries, nil
}

// ListMessages is a read-through of the message store in display shape.
func (s *HistoryService) ListMessages(ctx context.Context, conversationID string) ([]MessageView, error) {
	messages, err := s.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	views := make([]MessageView, 0, len(messages))
	for _, msg := range messages {
		views = append(views, MessageView{
			ID:        msg.ID,
			Content:   msg.Content,
			Sender:    string(msg.Sender),
			Emotion:   msg.Emotion,
			Timestamp: msg.Timestamp.Format(config.MessageTimeLayout),
		})
	}
	return views, nil
}

func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) > config.TitleMaxLen {
		return string(runes[:config.TitleMaxLen]) + "..."
	}
	return content
}
