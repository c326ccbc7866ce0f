package repository

import (
	"context"

	"prosecase-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatMessageRepository handles database operations for chat messages
type ChatMessageRepository struct {
	db *pgxpool.Pool
}

// NewChatMessageRepository creates a new chat message repository
func NewChatMessageRepository(db *pgxpool.Pool) *ChatMessageRepository {
	return &ChatMessageRepository{db: db}
}

// Create creates a new chat message
func (r *ChatMessageRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (
			case_id, role, content, sources, metadata
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		msg.CaseID,
		msg.Role,
		msg.Content,
		msg.Sources,
		msg.Metadata,
	).Scan(&msg.ID, &msg.CreatedAt)

	return err
}

// ListByCaseID retrieves a conversation thread in ascending creation order.
// A nil caseID selects the general thread (messages with no case).
func (r *ChatMessageRepository) ListByCaseID(ctx context.Context, caseID *uuid.UUID) ([]*models.ChatMessage, error) {
	query := `
		SELECT id, case_id, role, content, sources, metadata, created_at
		FROM chat_messages
		WHERE case_id = $1 OR ($1 IS NULL AND case_id IS NULL)
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		msg := &models.ChatMessage{}
		err := rows.Scan(
			&msg.ID,
			&msg.CaseID,
			&msg.Role,
			&msg.Content,
			&msg.Sources,
			&msg.Metadata,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}
