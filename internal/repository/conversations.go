package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/resilia-ai/backend/internal/domain"
)

// ConversationRepo is the Postgres-backed conversation store.
type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

func (r *ConversationRepo) Create(ctx context.Context, userID string, startTime time.Time) (*domain.Conversation, error) {
	conv := &domain.Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartTime: startTime.UTC(),
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO conversations (id, user_id, start_time) VALUES ($1, $2, $3)`,
		conv.ID, conv.UserID, conv.StartTime,
	)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

func (r *ConversationRepo) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, start_time FROM conversations WHERE id = $1`,
		id,
	).Scan(&conv.ID, &conv.UserID, &conv.StartTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	return &conv, nil
}

func (r *ConversationRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, start_time FROM conversations
		 WHERE user_id = $1 ORDER BY start_time DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	conversations := make([]*domain.Conversation, 0)
	for rows.Next() {
		var conv domain.Conversation
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.StartTime); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		conversations = append(conversations, &conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return conversations, nil
}
