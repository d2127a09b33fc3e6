package port

import (
	"context"

	"github.com/google/uuid"

	"taxmitra/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// CalculationRepository defines the contract for tax-calculation snapshots.
// A user holds at most one snapshot per financial year; Upsert replaces it.
type CalculationRepository interface {
	Upsert(ctx context.Context, calc *domain.TaxCalculation) error
	GetByUserYear(ctx context.Context, userID uuid.UUID, financialYear string) (*domain.TaxCalculation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TaxCalculation, error)
	Delete(ctx context.Context, userID uuid.UUID, financialYear string) error
}

// DocumentRepository defines the contract for document metadata persistence.
// All query methods include userID so users only ever see their own files.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, userID, docID uuid.UUID) (*domain.Document, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Document, int, error)
	ListByCategory(ctx context.Context, userID uuid.UUID, category domain.DocumentCategory, offset, limit int) ([]domain.Document, int, error)
	UpdateStatus(ctx context.Context, userID, docID uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, userID, docID uuid.UUID) error
}

// UpdateRepository defines the contract for regulatory-update persistence.
type UpdateRepository interface {
	Create(ctx context.Context, update *domain.RegulatoryUpdate) error
	GetByID(ctx context.Context, updateID uuid.UUID) (*domain.RegulatoryUpdate, error)
	List(ctx context.Context, status domain.UpdateStatus, filters domain.UpdateFilters, offset, limit int) ([]domain.RegulatoryUpdate, int, error)
	Update(ctx context.Context, update *domain.RegulatoryUpdate) error
	Delete(ctx context.Context, updateID uuid.UUID) error
}

// ChatRepository defines the contract for advisor chat persistence.
type ChatRepository interface {
	CreateSession(ctx context.Context, session *domain.ChatSession) error
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.ChatSession, error)
	ListSessions(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ChatSession, int, error)
	TouchSession(ctx context.Context, sessionID uuid.UUID) error
	DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error
	CreateMessage(ctx context.Context, msg *domain.ChatMessage) error
	ListMessages(ctx context.Context, sessionID uuid.UUID) ([]domain.ChatMessage, error)
}
