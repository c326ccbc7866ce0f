package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"prosecase-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ChatService handles guidance conversations. Threads are case-scoped or,
// with a nil case id, general.
type ChatService struct {
	messages ChatMessageStore
	cases    CaseStore
	analysis *AnalysisService
	logger   *zap.Logger
}

// ChatServiceOption is a functional option for ChatService
type ChatServiceOption func(*ChatService)

// ChatWithMessageStore sets the chat message store
func ChatWithMessageStore(s ChatMessageStore) ChatServiceOption {
	return func(svc *ChatService) { svc.messages = s }
}

// ChatWithCaseStore sets the case store
func ChatWithCaseStore(s CaseStore) ChatServiceOption {
	return func(svc *ChatService) { svc.cases = s }
}

// ChatWithAnalysisService sets the analysis service
func ChatWithAnalysisService(a *AnalysisService) ChatServiceOption {
	return func(svc *ChatService) { svc.analysis = a }
}

// ChatWithLogger sets the logger
func ChatWithLogger(logger *zap.Logger) ChatServiceOption {
	return func(svc *ChatService) { svc.logger = logger }
}

// NewChatService creates a new chat service
func NewChatService(opts ...ChatServiceOption) *ChatService {
	svc := &ChatService{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// SendMessageRequest represents one incoming user turn.
type SendMessageRequest struct {
	CaseID  *uuid.UUID // nil means the general thread
	Content string
}

// SendMessageResult returns both persisted turns of the exchange.
type SendMessageResult struct {
	UserMessage      *models.ChatMessage `json:"user_message"`
	AssistantMessage *models.ChatMessage `json:"assistant_message"`
}

// SendMessage persists the user turn, asks the guidance model, and persists
// the assistant turn. Guidance failure fails the request — answering is the
// sole purpose of the call — but the already-persisted user turn remains.
func (s *ChatService) SendMessage(ctx context.Context, req SendMessageRequest) (*SendMessageResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: message content is required", ErrValidation)
	}

	var jurisdiction, caseContext string
	if req.CaseID != nil {
		kase, err := s.cases.GetByID(ctx, *req.CaseID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrCaseNotFound
			}
			return nil, fmt.Errorf("load case: %w", err)
		}
		jurisdiction = kase.Jurisdiction
		caseContext = formatCaseContext(kase)
	}

	userMsg := &models.ChatMessage{
		CaseID:  req.CaseID,
		Role:    models.RoleUser,
		Content: req.Content,
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	guidance, err := s.analysis.GetGuidance(ctx, req.Content, jurisdiction, caseContext)
	if err != nil {
		return nil, err
	}

	assistantMsg := &models.ChatMessage{
		CaseID:  req.CaseID,
		Role:    models.RoleAssistant,
		Content: guidance.Answer,
		Sources: guidance.Sources,
	}
	if err := s.messages.Create(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("persist assistant message: %w", err)
	}

	return &SendMessageResult{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	}, nil
}

// GetThread lists a conversation in ascending creation order.
func (s *ChatService) GetThread(ctx context.Context, caseID *uuid.UUID) ([]*models.ChatMessage, error) {
	return s.messages.ListByCaseID(ctx, caseID)
}

// formatCaseContext renders the case fields the guidance prompt can use.
func formatCaseContext(kase *models.Case) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Case: %s\n", kase.Title)
	fmt.Fprintf(&sb, "Plaintiff: %s\nDefendant: %s\n", kase.Plaintiff, kase.Defendant)
	fmt.Fprintf(&sb, "Jurisdiction: %s\nStatus: %s\n", kase.Jurisdiction, kase.Status)
	if kase.CaseNumber != nil {
		fmt.Fprintf(&sb, "Case number: %s\n", *kase.CaseNumber)
	}
	if kase.Description != nil {
		fmt.Fprintf(&sb, "Description: %s\n", *kase.Description)
	}
	return sb.String()
}
