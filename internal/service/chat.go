package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/resilia-ai/backend/internal/config"
	"github.com/resilia-ai/backend/internal/domain"
)

// ChatService runs the turn pipeline: resolve conversation, persist the user
// message, classify, generate, enrich, persist the bot reply. The user
// message write is the durability checkpoint — it happens before any outbound
// call and is never rolled back, so a total AI outage can lose nothing.
type ChatService struct {
	conversations domain.ConversationStore
	messages      domain.MessageStore
	classifier    domain.EmotionClassifier
	generator     domain.ResponseGenerator
	now           func() time.Time

	mu    sync.Mutex
	gates map[string]*turnGate
}

// turnGate serializes turns of one conversation and remembers the last
// timestamp it handed out, so timestamps stay strictly increasing even when
// turns land inside the same clock tick.
type turnGate struct {
	sync.Mutex
	lastTS time.Time
}

func NewChatService(
	conversations domain.ConversationStore,
	messages domain.MessageStore,
	classifier domain.EmotionClassifier,
	generator domain.ResponseGenerator,
) *ChatService {
	return &ChatService{
		conversations: conversations,
		messages:      messages,
		classifier:    classifier,
		generator:     generator,
		now:           time.Now,
		gates:         make(map[string]*turnGate),
	}
}

// TurnResult is what the caller gets back from one completed turn.
type TurnResult struct {
	ReplyText      string
	Emotion        string
	ConversationID string
}

// HandleUserTurn processes one user message end to end. conversationID may be
// empty, in which case a new conversation is created for userID. Upstream AI
// failures degrade to fixed fallback values; only store failures and a bad
// conversation reference surface as errors.
func (s *ChatService) HandleUserTurn(ctx context.Context, userID, conversationID, text string) (*TurnResult, error) {
	conv, err := s.resolveConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	gate := s.gate(conv.ID)
	gate.Lock()
	defer gate.Unlock()

	userTS := s.now().UTC()
	if !userTS.After(gate.lastTS) {
		userTS = gate.lastTS.Add(config.BotReplyOffset)
	}

	userMsg, err := s.messages.Append(ctx, &domain.Message{
		ConversationID: conv.ID,
		Sender:         domain.SenderUser,
		Content:        text,
		Timestamp:      userTS,
	})
	if err != nil {
		return nil, fmt.Errorf("append user message: %w", err)
	}

	emotion, err := s.classifier.AnalyzeEmotion(ctx, text)
	if err != nil {
		slog.Warn("emotion classification failed, using neutral",
			"conversation_id", conv.ID, "error", err)
		emotion = config.NeutralEmotion
	}

	reply, err := s.generator.GenerateReply(ctx, emotion, "", text)
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			slog.Warn("reply generation failed, using fallback",
				"conversation_id", conv.ID, "error", err)
		} else {
			slog.Warn("reply generation returned empty text, using fallback",
				"conversation_id", conv.ID)
		}
		reply = config.FallbackReply
	}

	if err := s.messages.UpdateEmotion(ctx, userMsg.ID, emotion); err != nil {
		return nil, fmt.Errorf("attach emotion to user message: %w", err)
	}

	botTS := userMsg.Timestamp.Add(config.BotReplyOffset)
	botMsg, err := s.messages.Append(ctx, &domain.Message{
		ConversationID: conv.ID,
		Sender:         domain.SenderBot,
		Content:        reply,
		Timestamp:      botTS,
	})
	if err != nil {
		return nil, fmt.Errorf("append bot message: %w", err)
	}
	gate.lastTS = botMsg.Timestamp

	slog.Info("turn completed",
		"conversation_id", conv.ID, "user_id", userID, "emotion", emotion)

	return &TurnResult{
		ReplyText:      reply,
		Emotion:        emotion,
		ConversationID: conv.ID,
	}, nil
}

func (s *ChatService) resolveConversation(ctx context.Context, userID, conversationID string) (*domain.Conversation, error) {
	if conversationID == "" {
		conv, err := s.conversations.Create(ctx, userID, s.now().UTC())
		if err != nil {
			return nil, fmt.Errorf("create conversation: %w", err)
		}
		return conv, nil
	}

	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.UserID != userID {
		return nil, domain.ErrNotConversationOwner
	}
	return conv, nil
}

func (s *ChatService) gate(conversationID string) *turnGate {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.gates[conversationID]
	if !ok {
		g = &turnGate{}
		s.gates[conversationID] = g
	}
	return g
}
