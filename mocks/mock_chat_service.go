package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taxmitra/internal/domain"
	"taxmitra/internal/service"
)

// MockChatService is a mock implementation of service.ChatService.
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) CreateSession(ctx context.Context, userID uuid.UUID, input service.CreateSessionInput) (*domain.ChatSession, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatSession), args.Error(1)
}

func (m *MockChatService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*service.SessionDetail, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionDetail), args.Error(1)
}

func (m *MockChatService) ListSessions(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ChatSession, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ChatSession), args.Int(1), args.Error(2)
}

func (m *MockChatService) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}

func (m *MockChatService) SendMessage(ctx context.Context, userID, sessionID uuid.UUID, input service.SendMessageInput) (*domain.ChatMessage, error) {
	args := m.Called(ctx, userID, sessionID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatMessage), args.Error(1)
}
