package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a registered filer.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	PAN          *string   `db:"pan" json:"pan"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// TaxCalculation is a persisted computation snapshot, keyed by user and
// financial year. Saving again for the same year replaces the snapshot.
type TaxCalculation struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	UserID          uuid.UUID       `db:"user_id" json:"user_id"`
	FinancialYear   string          `db:"financial_year" json:"financial_year"`
	Regime          Regime          `db:"regime" json:"regime"`
	GrossIncome     decimal.Decimal `db:"gross_income" json:"gross_income"`
	OtherDeductions decimal.Decimal `db:"other_deductions" json:"other_deductions"`
	IsSalaried      bool            `db:"is_salaried" json:"is_salaried"`
	Age             int             `db:"age" json:"age"`
	TotalTax        decimal.Decimal `db:"total_tax" json:"total_tax"`
	Result          json.RawMessage `db:"result" json:"result"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// Document stores metadata about an uploaded tax document.
type Document struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	UserID        uuid.UUID        `db:"user_id" json:"user_id"`
	Category      DocumentCategory `db:"category" json:"category"`
	FinancialYear string           `db:"financial_year" json:"financial_year"`
	FileName      string           `db:"file_name" json:"file_name"`
	OriginalName  string           `db:"original_name" json:"original_name"`
	FileType      FileType         `db:"file_type" json:"file_type"`
	FileSize      int64            `db:"file_size" json:"file_size"`
	S3Bucket      string           `db:"s3_bucket" json:"s3_bucket"`
	S3Key         string           `db:"s3_key" json:"s3_key"`
	ContentType   string           `db:"content_type" json:"content_type"`
	Status        FileStatus       `db:"status" json:"status"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`
}

// RegulatoryUpdate is an entry in the regulatory-updates feed.
type RegulatoryUpdate struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	Title         string         `db:"title" json:"title"`
	Body          string         `db:"body" json:"body"`
	Category      UpdateCategory `db:"category" json:"category"`
	FinancialYear string         `db:"financial_year" json:"financial_year"`
	SourceURL     string         `db:"source_url" json:"source_url"`
	Status        UpdateStatus   `db:"status" json:"status"`
	PublishedAt   *time.Time     `db:"published_at" json:"published_at"`
	CreatedBy     uuid.UUID      `db:"created_by" json:"created_by"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// UpdateFilters narrows regulatory-update listings.
type UpdateFilters struct {
	Category      UpdateCategory
	FinancialYear string
}

// ChatSession groups advisor chat messages for a user.
type ChatSession struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	Title         string    `db:"title" json:"title"`
	FinancialYear string    `db:"financial_year" json:"financial_year"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// ChatMessage is a single message in an advisor chat session.
type ChatMessage struct {
	ID        uuid.UUID `db:"id" json:"id"`
	SessionID uuid.UUID `db:"session_id" json:"session_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Role      ChatRole  `db:"role" json:"role"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
