package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"taxmitra/internal/domain"
	"taxmitra/internal/port"
	"taxmitra/internal/tax"
)

var hundred = decimal.NewFromInt(100)

// CreateSessionInput is the DTO for starting an advisor chat session.
type CreateSessionInput struct {
	Title         string `json:"title"`
	FinancialYear string `json:"financial_year" binding:"required"`
}

// SendMessageInput is the DTO for sending a chat message.
type SendMessageInput struct {
	Content string `json:"content" binding:"required"`
}

// SessionDetail bundles a session with its full message history.
type SessionDetail struct {
	Session  *domain.ChatSession  `json:"session"`
	Messages []domain.ChatMessage `json:"messages"`
}

// ChatService defines the advisor chat contract. Replies are generated by a
// keyword-based responder over the user's own schedule and saved calculations,
// so answers are deterministic and never leave the server.
type ChatService interface {
	CreateSession(ctx context.Context, userID uuid.UUID, input CreateSessionInput) (*domain.ChatSession, error)
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*SessionDetail, error)
	ListSessions(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ChatSession, int, error)
	DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error
	SendMessage(ctx context.Context, userID, sessionID uuid.UUID, input SendMessageInput) (*domain.ChatMessage, error)
}

type chatService struct {
	chatRepo port.ChatRepository
	taxSvc   TaxService
}

// NewChatService creates a new ChatService implementation.
func NewChatService(chatRepo port.ChatRepository, taxSvc TaxService) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		taxSvc:   taxSvc,
	}
}

func (s *chatService) CreateSession(ctx context.Context, userID uuid.UUID, input CreateSessionInput) (*domain.ChatSession, error) {
	title := input.Title
	if title == "" {
		title = "Tax questions " + input.FinancialYear
	}
	session := &domain.ChatSession{
		UserID:        userID,
		Title:         title,
		FinancialYear: input.FinancialYear,
	}
	if err := s.chatRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *chatService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*SessionDetail, error) {
	session, err := s.chatRepo.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	messages, err := s.chatRepo.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &SessionDetail{Session: session, Messages: messages}, nil
}

func (s *chatService) ListSessions(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ChatSession, int, error) {
	return s.chatRepo.ListSessions(ctx, userID, offset, limit)
}

func (s *chatService) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	return s.chatRepo.DeleteSession(ctx, userID, sessionID)
}

func (s *chatService) SendMessage(ctx context.Context, userID, sessionID uuid.UUID, input SendMessageInput) (*domain.ChatMessage, error) {
	session, err := s.chatRepo.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	userMsg := &domain.ChatMessage{
		SessionID: sessionID,
		UserID:    userID,
		Role:      domain.ChatRoleUser,
		Content:   input.Content,
	}
	if err := s.chatRepo.CreateMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	reply := &domain.ChatMessage{
		SessionID: sessionID,
		UserID:    userID,
		Role:      domain.ChatRoleAssistant,
		Content:   s.respond(ctx, userID, session.FinancialYear, input.Content),
	}
	if err := s.chatRepo.CreateMessage(ctx, reply); err != nil {
		return nil, err
	}
	if err := s.chatRepo.TouchSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return reply, nil
}

// respond maps the message to one of a fixed set of intents and answers from
// schedule data and the user's saved calculation for the session's year.
func (s *chatService) respond(ctx context.Context, userID uuid.UUID, financialYear, message string) string {
	msg := strings.ToLower(message)

	switch {
	case containsAny(msg, "regime", "compare", "which is better", "old vs new"):
		return s.respondRegime(ctx, userID, financialYear)
	case containsAny(msg, "slab", "bracket", "rate"):
		return s.respondSlabs(financialYear)
	case containsAny(msg, "80c", "80d", "nps", "deduction", "invest", "save tax"):
		return s.respondDeductions(financialYear)
	case containsAny(msg, "my tax", "how much", "liability", "calculation"):
		return s.respondLiability(ctx, userID, financialYear)
	default:
		return "I can help with your saved calculation, the slab rates for " + financialYear +
			", deduction limits, and choosing between the old and new regimes. " +
			"Try asking \"which regime is better for me?\" or \"what are the slabs?\"."
	}
}

func (s *chatService) respondRegime(ctx context.Context, userID uuid.UUID, financialYear string) string {
	calc, err := s.calcInput(ctx, userID, financialYear)
	if err != nil {
		return "Run a calculation for " + financialYear + " first and I can compare both regimes on your numbers."
	}
	cmp, err := s.taxSvc.Compare(ctx, *calc)
	if err != nil {
		return "I could not compare regimes for " + financialYear + " right now."
	}
	if cmp.Saving.IsZero() {
		return fmt.Sprintf("Both regimes come to the same tax for you in %s: %s INR.",
			financialYear, cmp.Old.TotalTax.StringFixed(2))
	}
	return fmt.Sprintf("For %s the %s regime works out cheaper for you: %s INR against %s INR, saving %s INR.",
		financialYear, cmp.Recommended,
		totalFor(cmp, cmp.Recommended).StringFixed(2),
		totalFor(cmp, cmp.Recommended.Other()).StringFixed(2),
		cmp.Saving.StringFixed(2))
}

func (s *chatService) respondSlabs(financialYear string) string {
	var b strings.Builder
	for _, regime := range domain.Regimes {
		info, err := s.taxSvc.GetSchedule(financialYear, regime)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "%s-regime slabs for %s:\n", regime, financialYear)
		for _, slab := range info.Slabs {
			if slab.Unbounded() {
				fmt.Fprintf(&b, "  above %s: %s%%\n", slab.From.StringFixed(0), slab.Rate.Mul(hundred).StringFixed(0))
			} else {
				fmt.Fprintf(&b, "  %s to %s: %s%%\n", slab.From.StringFixed(0), slab.To.StringFixed(0), slab.Rate.Mul(hundred).StringFixed(0))
			}
		}
	}
	if b.Len() == 0 {
		return "I have no slab schedule configured for " + financialYear + "."
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *chatService) respondDeductions(financialYear string) string {
	info, err := s.taxSvc.GetSchedule(financialYear, domain.RegimeOld)
	if err != nil || len(info.DeductionCaps) == 0 {
		return "Itemized deductions apply under the old regime only, and I have no caps configured for " + financialYear + "."
	}
	var b strings.Builder
	b.WriteString("Under the old regime for " + financialYear + " you can claim:\n")
	for _, dc := range info.DeductionCaps {
		fmt.Fprintf(&b, "  %s, up to %s INR: %s\n", dc.Title, dc.Cap.StringFixed(0), dc.Description)
	}
	b.WriteString("The new regime skips these in exchange for wider slabs.")
	return b.String()
}

func (s *chatService) respondLiability(ctx context.Context, userID uuid.UUID, financialYear string) string {
	saved, err := s.taxSvc.GetCalculation(ctx, userID, financialYear)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "You have no saved calculation for " + financialYear + " yet. Run one from the calculator and ask me again."
		}
		return "I could not load your saved calculation for " + financialYear + " right now."
	}
	return fmt.Sprintf("Your saved %s calculation under the %s regime puts your total tax at %s INR on a gross income of %s INR.",
		saved.FinancialYear, saved.Regime, saved.TotalTax.StringFixed(2), saved.GrossIncome.StringFixed(2))
}

func (s *chatService) calcInput(ctx context.Context, userID uuid.UUID, financialYear string) (*CalculateInput, error) {
	saved, err := s.taxSvc.GetCalculation(ctx, userID, financialYear)
	if err != nil {
		return nil, err
	}
	return &CalculateInput{
		FinancialYear:   saved.FinancialYear,
		Regime:          saved.Regime,
		GrossIncome:     saved.GrossIncome,
		OtherDeductions: saved.OtherDeductions,
		IsSalaried:      saved.IsSalaried,
		Age:             saved.Age,
	}, nil
}

func totalFor(cmp *tax.Comparison, regime domain.Regime) decimal.Decimal {
	if regime == domain.RegimeOld {
		return cmp.Old.TotalTax
	}
	return cmp.New.TotalTax
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
