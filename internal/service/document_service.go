package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"taxmitra/internal/config"
	"taxmitra/internal/domain"
	"taxmitra/internal/port"
)

// DocumentUploadInput is the DTO for document upload requests.
type DocumentUploadInput struct {
	UserID        uuid.UUID
	Category      domain.DocumentCategory
	FinancialYear string
	File          multipart.File
	Header        *multipart.FileHeader
}

// DocumentService defines the document management contract.
type DocumentService interface {
	Upload(ctx context.Context, input DocumentUploadInput) (*domain.Document, error)
	GetByID(ctx context.Context, userID, docID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Document, int, error)
	ListByCategory(ctx context.Context, userID uuid.UUID, category domain.DocumentCategory, offset, limit int) ([]domain.Document, int, error)
	GetDownloadURL(ctx context.Context, userID, docID uuid.UUID) (string, error)
	Delete(ctx context.Context, userID, docID uuid.UUID) error
}

type documentService struct {
	docRepo port.DocumentRepository
	storage port.ObjectStorage
	cfg     *config.S3Config
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	docRepo port.DocumentRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) DocumentService {
	return &documentService{
		docRepo: docRepo,
		storage: storage,
		cfg:     cfg,
	}
}

func (s *documentService) Upload(ctx context.Context, input DocumentUploadInput) (*domain.Document, error) {
	if !domain.ValidDocumentCategories[input.Category] {
		return nil, domain.ErrInvalidCategory
	}

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])

	_, validContent := domain.AllowedContentTypes[detectedType]
	if !validContent {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	fileID := uuid.New()
	s3Key := fmt.Sprintf("users/%s/documents/%s/%s", input.UserID, fileID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	doc := &domain.Document{
		ID:            fileID,
		UserID:        input.UserID,
		Category:      input.Category,
		FinancialYear: input.FinancialYear,
		FileName:      fileID.String() + "." + ext,
		OriginalName:  input.Header.Filename,
		FileType:      fileType,
		FileSize:      input.Header.Size,
		S3Bucket:      s.cfg.Bucket,
		S3Key:         s3Key,
		ContentType:   contentType,
		Status:        domain.FileStatusPending,
	}

	log.Printf("documentService.Upload: uploading %s (%s, %d bytes) for user %s",
		input.Header.Filename, contentType, input.Header.Size, input.UserID)

	// Persist metadata with pending status
	if err := s.docRepo.Create(ctx, doc); err != nil {
		log.Printf("documentService.Upload: failed to create metadata: %v", err)
		return nil, fmt.Errorf("creating document metadata: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("documentService.Upload: S3 upload failed for document %s: %v", doc.ID, err)
		_ = s.docRepo.UpdateStatus(ctx, doc.UserID, doc.ID, domain.FileStatusFailed)
		return nil, domain.ErrUploadFailed
	}

	if err := s.docRepo.UpdateStatus(ctx, doc.UserID, doc.ID, domain.FileStatusUploaded); err != nil {
		return nil, fmt.Errorf("updating document status: %w", err)
	}
	doc.Status = domain.FileStatusUploaded

	return doc, nil
}

func (s *documentService) GetByID(ctx context.Context, userID, docID uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, userID, docID)
}

func (s *documentService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	return s.docRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *documentService) ListByCategory(ctx context.Context, userID uuid.UUID, category domain.DocumentCategory, offset, limit int) ([]domain.Document, int, error) {
	if !domain.ValidDocumentCategories[category] {
		return nil, 0, domain.ErrInvalidCategory
	}
	return s.docRepo.ListByCategory(ctx, userID, category, offset, limit)
}

func (s *documentService) GetDownloadURL(ctx context.Context, userID, docID uuid.UUID) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, userID, docID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, doc.S3Bucket, doc.S3Key, s.cfg.PresignExpiry)
}

func (s *documentService) Delete(ctx context.Context, userID, docID uuid.UUID) error {
	log.Printf("documentService.Delete: deleting document %s for user %s", docID, userID)

	doc, err := s.docRepo.GetByID(ctx, userID, docID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, doc.S3Bucket, doc.S3Key); err != nil {
		log.Printf("documentService.Delete: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}

	return s.docRepo.Delete(ctx, userID, docID)
}
