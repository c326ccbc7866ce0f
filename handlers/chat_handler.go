package handlers

import (
	"errors"
	"net/http"

	"prosecase-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandler serves the guidance chat endpoints. Threads are addressed by
// a context id: a case UUID, or "general" (or no id at all) for the thread
// not tied to any case.
type ChatHandler struct {
	chat   *service.ChatService
	logger *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chat:   chat,
		logger: logger.Named("chat"),
	}
}

// GetThread handles GET /api/chat and GET /api/chat/:contextId
func (h *ChatHandler) GetThread(c *gin.Context) {
	caseID, ok := parseContextID(c, c.Param("contextId"))
	if !ok {
		return
	}

	messages, err := h.chat.GetThread(c.Request.Context(), caseID)
	if err != nil {
		h.logger.Error("get thread", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load messages")
		return
	}
	respondData(c, http.StatusOK, messages)
}

// SendMessageRequest is the body for POST /api/chat. CaseID may be a case
// UUID, "general", or absent.
type SendMessageRequest struct {
	CaseID  string `json:"case_id"`
	Content string `json:"content"`
}

// SendMessage handles POST /api/chat
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	caseID, ok := parseContextID(c, req.CaseID)
	if !ok {
		return
	}

	result, err := h.chat.SendMessage(c.Request.Context(), service.SendMessageRequest{
		CaseID:  caseID,
		Content: req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		case errors.Is(err, service.ErrCaseNotFound):
			respondError(c, http.StatusNotFound, "CASE_NOT_FOUND", "Case not found")
		default:
			h.logger.Error("send message", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "GUIDANCE_FAILED", "Failed to answer the message")
		}
		return
	}
	respondData(c, http.StatusOK, result)
}

// parseContextID maps a thread context id to an optional case id. Empty and
// "general" mean the general thread. Responds 400 on a malformed id.
func parseContextID(c *gin.Context, raw string) (*uuid.UUID, bool) {
	if raw == "" || raw == "general" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Context id must be a case UUID or \"general\"")
		return nil, false
	}
	return &id, true
}
