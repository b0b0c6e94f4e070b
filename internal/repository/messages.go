package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/resilia-ai/backend/internal/domain"
)

// MessageRepo is the Postgres-backed message store. Seq is assigned inside
// the insert so the per-conversation order is decided by the database.
type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Append(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	stored := *msg
	stored.ID = uuid.NewString()
	stored.Timestamp = msg.Timestamp.UTC()

	err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (id, conversation_id, seq, sender, content, emotion, created_at)
		 VALUES ($1, $2,
		         (SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE conversation_id = $2),
		         $3, $4, $5, $6)
		 RETURNING seq`,
		stored.ID, stored.ConversationID, string(stored.Sender), stored.Content, stored.Emotion, stored.Timestamp,
	).Scan(&stored.Seq)
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return &stored, nil
}

func (r *MessageRepo) UpdateEmotion(ctx context.Context, messageID, emotion string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE messages SET emotion = $2 WHERE id = $1`,
		messageID, emotion,
	)
	if err != nil {
		return fmt.Errorf("update emotion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID string) ([]*domain.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, conversation_id, seq, sender, content, emotion, created_at
		 FROM messages WHERE conversation_id = $1 ORDER BY seq ASC`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		var (
			msg    domain.Message
			sender string
		)
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Seq, &sender, &msg.Content, &msg.Emotion, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msg.Sender = domain.Sender(sender)
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}
