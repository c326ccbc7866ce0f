package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"prosecase-backend/models"
	"prosecase-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// DeadlineHandler serves the deadline endpoints.
type DeadlineHandler struct {
	deadlines service.DeadlineStore
	cases     service.CaseStore
	logger    *zap.Logger
}

// NewDeadlineHandler creates a new deadline handler
func NewDeadlineHandler(deadlines service.DeadlineStore, cases service.CaseStore, logger *zap.Logger) *DeadlineHandler {
	return &DeadlineHandler{
		deadlines: deadlines,
		cases:     cases,
		logger:    logger.Named("deadlines"),
	}
}

// ListDeadlines handles GET /api/deadlines
func (h *DeadlineHandler) ListDeadlines(c *gin.Context) {
	deadlines, err := h.deadlines.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list deadlines", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list deadlines")
		return
	}
	respondData(c, http.StatusOK, deadlines)
}

// ListUpcoming handles GET /api/deadlines/upcoming: incomplete deadlines
// due within the next 30 days, soonest first.
func (h *DeadlineHandler) ListUpcoming(c *gin.Context) {
	deadlines, err := h.deadlines.ListUpcoming(c.Request.Context())
	if err != nil {
		h.logger.Error("list upcoming deadlines", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list deadlines")
		return
	}
	respondData(c, http.StatusOK, deadlines)
}

// CreateDeadlineRequest is the body for POST /api/deadlines.
type CreateDeadlineRequest struct {
	CaseID       uuid.UUID `json:"case_id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	DueDate      time.Time `json:"due_date"`
	DeadlineType string    `json:"deadline_type"`
}

// CreateDeadline handles POST /api/deadlines
func (h *DeadlineHandler) CreateDeadline(c *gin.Context) {
	var req CreateDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if req.CaseID == uuid.Nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "case_id is required")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "title is required")
		return
	}
	if req.DueDate.IsZero() {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "due_date is required")
		return
	}
	if strings.TrimSpace(req.DeadlineType) == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "deadline_type is required")
		return
	}

	if _, err := h.cases.GetByID(c.Request.Context(), req.CaseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(c, http.StatusNotFound, "CASE_NOT_FOUND", "Case not found")
			return
		}
		h.logger.Error("get case", zap.String("case_id", req.CaseID.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load case")
		return
	}

	deadline := &models.Deadline{
		CaseID:       req.CaseID,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		DeadlineType: req.DeadlineType,
	}
	if err := h.deadlines.Create(c.Request.Context(), deadline); err != nil {
		h.logger.Error("create deadline", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create deadline")
		return
	}
	respondData(c, http.StatusCreated, deadline)
}

// UpdateDeadlineRequest is the body for PATCH /api/deadlines/:id. Absent
// fields keep their stored values.
type UpdateDeadlineRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	DueDate      *time.Time `json:"due_date"`
	DeadlineType *string    `json:"deadline_type"`
	Completed    *bool      `json:"completed"`
	ReminderSent *bool      `json:"reminder_sent"`
}

// UpdateDeadline handles PATCH /api/deadlines/:id
func (h *DeadlineHandler) UpdateDeadline(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	deadline, err := h.deadlines.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(c, http.StatusNotFound, "DEADLINE_NOT_FOUND", "Deadline not found")
			return
		}
		h.logger.Error("get deadline", zap.String("deadline_id", id.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load deadline")
		return
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "title cannot be empty")
			return
		}
		deadline.Title = *req.Title
	}
	if req.Description != nil {
		deadline.Description = req.Description
	}
	if req.DueDate != nil {
		deadline.DueDate = *req.DueDate
	}
	if req.DeadlineType != nil {
		deadline.DeadlineType = *req.DeadlineType
	}
	if req.Completed != nil {
		deadline.Completed = *req.Completed
	}
	if req.ReminderSent != nil {
		deadline.ReminderSent = *req.ReminderSent
	}

	if err := h.deadlines.Update(c.Request.Context(), deadline); err != nil {
		// the deadline can vanish between the load above and the write
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(c, http.StatusNotFound, "DEADLINE_NOT_FOUND", "Deadline not found")
			return
		}
		h.logger.Error("update deadline", zap.String("deadline_id", id.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update deadline")
		return
	}
	respondData(c, http.StatusOK, deadline)
}
