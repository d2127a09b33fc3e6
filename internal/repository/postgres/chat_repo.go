package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taxmitra/internal/domain"
	"taxmitra/internal/port"
)

type chatRepo struct {
	db *sqlx.DB
}

// NewChatRepo creates a new PostgreSQL-backed ChatRepository.
func NewChatRepo(db *sqlx.DB) port.ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) CreateSession(ctx context.Context, session *domain.ChatSession) error {
	session.ID = uuid.New()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	query := `INSERT INTO chat_sessions (id, user_id, title, financial_year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.Title, session.FinancialYear,
		session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("chatRepo.CreateSession: %w", err)
	}
	return nil
}

func (r *chatRepo) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.ChatSession, error) {
	var session domain.ChatSession
	err := r.db.GetContext(ctx, &session,
		"SELECT * FROM chat_sessions WHERE id = $1 AND user_id = $2", sessionID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("chatRepo.GetSession: %w", err)
	}
	return &session, nil
}

func (r *chatRepo) ListSessions(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ChatSession, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM chat_sessions WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("chatRepo.ListSessions count: %w", err)
	}

	var sessions []domain.ChatSession
	err = r.db.SelectContext(ctx, &sessions,
		"SELECT * FROM chat_sessions WHERE user_id = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3",
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("chatRepo.ListSessions: %w", err)
	}
	return sessions, total, nil
}

func (r *chatRepo) TouchSession(ctx context.Context, sessionID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE chat_sessions SET updated_at = NOW() WHERE id = $1", sessionID)
	if err != nil {
		return fmt.Errorf("chatRepo.TouchSession: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *chatRepo) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	// Messages are removed by the ON DELETE CASCADE on chat_messages.
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM chat_sessions WHERE id = $1 AND user_id = $2", sessionID, userID)
	if err != nil {
		return fmt.Errorf("chatRepo.DeleteSession: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *chatRepo) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	msg.ID = uuid.New()
	msg.CreatedAt = time.Now().UTC()

	query := `INSERT INTO chat_messages (id, session_id, user_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.SessionID, msg.UserID, msg.Role, msg.Content, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("chatRepo.CreateMessage: %w", err)
	}
	return nil
}

func (r *chatRepo) ListMessages(ctx context.Context, sessionID uuid.UUID) ([]domain.ChatMessage, error) {
	var msgs []domain.ChatMessage
	err := r.db.SelectContext(ctx, &msgs,
		"SELECT * FROM chat_messages WHERE session_id = $1 ORDER BY created_at ASC",
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("chatRepo.ListMessages: %w", err)
	}
	return msgs, nil
}
