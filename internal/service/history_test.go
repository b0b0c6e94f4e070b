package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resilia-ai/backend/internal/config"
	"github.com/resilia-ai/backend/internal/domain"
	"github.com/resilia-ai/backend/internal/repository/memory"
)

func newTestHistory() (*HistoryService, *memory.ConversationStore, *memory.MessageStore) {
	conversations := memory.NewConversationStore()
	messages := memory.NewMessageStore()
	return NewHistoryService(conversations, messages), conversations, messages
}

func TestListConversationsEmpty(t *testing.T) {
	svc, _, _ := newTestHistory()

	summaries, err := svc.ListConversations(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestListConversationsDefaultTitle(t *testing.T) {
	svc, conversations, _ := newTestHistory()

	_, err := conversations.Create(context.Background(), "user-1", time.Now().UTC())
	require.NoError(t, err)

	summaries, err := svc.ListConversations(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, config.DefaultConversationTitle, summaries[0].Title)
}

func TestListConversationsTitleTruncation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"short stays verbatim", "hello", "hello"},
		{"exactly twenty chars", strings.Repeat("a", 20), strings.Repeat("a", 20)},
		{"twenty one chars gets ellipsis", strings.Repeat("a", 21), strings.Repeat("a", 20) + "..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, conversations, messages := newTestHistory()

			conv, err := conversations.Create(context.Background(), "user-1", time.Now().UTC())
			require.NoError(t, err)

			_, err = messages.Append(context.Background(), &domain.Message{
				ConversationID: conv.ID,
				Sender:         domain.SenderUser,
				Content:        tc.content,
				Timestamp:      time.Now().UTC(),
			})
			require.NoError(t, err)

			summaries, err := svc.ListConversations(context.Background(), "user-1")
			require.NoError(t, err)
			require.Len(t, summaries, 1)
			assert.Equal(t, tc.want, summaries[0].Title)
		})
	}
}

func TestListConversationsNewestFirst(t *testing.T) {
	svc, conversations, _ := newTestHistory()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older, err := conversations.Create(context.Background(), "user-1", base)
	require.NoError(t, err)
	newer, err := conversations.Create(context.Background(), "user-1", base.Add(time.Hour))
	require.NoError(t, err)

	summaries, err := svc.ListConversations(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, newer.ID, summaries[0].ID)
	assert.Equal(t, older.ID, summaries[1].ID)
	assert.Equal(t, "2026-03-01 13:00:00", summaries[0].StartTime)
}

func TestListMessagesViews(t *testing.T) {
	svc, conversations, messages := newTestHistory()

	conv, err := conversations.Create(context.Background(), "user-1", time.Now().UTC())
	require.NoError(t, err)

	ts := time.Date(2026, 3, 1, 9, 30, 15, 0, time.UTC)
	userMsg, err := messages.Append(context.Background(), &domain.Message{
		ConversationID: conv.ID,
		Sender:         domain.SenderUser,
		Content:        "hello",
		Timestamp:      ts,
	})
	require.NoError(t, err)
	require.NoError(t, messages.UpdateEmotion(context.Background(), userMsg.ID, "HAPPY"))

	_, err = messages.Append(context.Background(), &domain.Message{
		ConversationID: conv.ID,
		Sender:         domain.SenderBot,
		Content:        "hi there",
		Timestamp:      ts.Add(time.Second),
	})
	require.NoError(t, err)

	views, err := svc.ListMessages(context.Background(), conv.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "user", views[0].Sender)
	assert.Equal(t, "hello", views[0].Content)
	require.NotNil(t, views[0].Emotion)
	assert.Equal(t, "HAPPY", *views[0].Emotion)
	assert.Equal(t, "09:30:15", views[0].Timestamp)

	assert.Equal(t, "bot", views[1].Sender)
	assert.Nil(t, views[1].Emotion)
}
