package handlers

import (
	"errors"
	"net/http"
	"strings"

	"prosecase-backend/models"
	"prosecase-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CaseHandler serves the case CRUD endpoints and the per-case sub-listings.
type CaseHandler struct {
	cases     service.CaseStore
	documents service.DocumentStore
	deadlines service.DeadlineStore
	logger    *zap.Logger
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(cases service.CaseStore, documents service.DocumentStore, deadlines service.DeadlineStore, logger *zap.Logger) *CaseHandler {
	return &CaseHandler{
		cases:     cases,
		documents: documents,
		deadlines: deadlines,
		logger:    logger.Named("cases"),
	}
}

// CreateCaseRequest is the body for POST /api/cases.
type CreateCaseRequest struct {
	Title        string  `json:"title"`
	CaseNumber   *string `json:"case_number"`
	Plaintiff    string  `json:"plaintiff"`
	Defendant    string  `json:"defendant"`
	Jurisdiction string  `json:"jurisdiction"`
	Status       string  `json:"status"`
	Description  *string `json:"description"`
}

// ListCases handles GET /api/cases
func (h *CaseHandler) ListCases(c *gin.Context) {
	cases, err := h.cases.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list cases", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list cases")
		return
	}
	respondData(c, http.StatusOK, cases)
}

// GetCase handles GET /api/cases/:id
func (h *CaseHandler) GetCase(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	kase, err := h.cases.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(c, http.StatusNotFound, "CASE_NOT_FOUND", "Case not found")
			return
		}
		h.logger.Error("get case", zap.String("case_id", id.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load case")
		return
	}
	respondData(c, http.StatusOK, kase)
}

// CreateCase handles POST /api/cases
func (h *CaseHandler) CreateCase(c *gin.Context) {
	var req CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	for field, value := range map[string]string{
		"title":        req.Title,
		"plaintiff":    req.Plaintiff,
		"defendant":    req.Defendant,
		"jurisdiction": req.Jurisdiction,
	} {
		if strings.TrimSpace(value) == "" {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", field+" is required")
			return
		}
	}

	status := models.CaseStatusActive
	if req.Status != "" {
		status = models.CaseStatus(req.Status)
		if !validCaseStatus(status) {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status must be active, pending, or closed")
			return
		}
	}

	kase := &models.Case{
		Title:        req.Title,
		CaseNumber:   req.CaseNumber,
		Plaintiff:    req.Plaintiff,
		Defendant:    req.Defendant,
		Jurisdiction: req.Jurisdiction,
		Status:       status,
		Description:  req.Description,
	}
	if err := h.cases.Create(c.Request.Context(), kase); err != nil {
		h.logger.Error("create case", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create case")
		return
	}
	respondData(c, http.StatusCreated, kase)
}

// UpdateCaseRequest is the body for PATCH /api/cases/:id. Absent fields
// keep their stored values.
type UpdateCaseRequest struct {
	Title        *string `json:"title"`
	CaseNumber   *string `json:"case_number"`
	Plaintiff    *string `json:"plaintiff"`
	Defendant    *string `json:"defendant"`
	Jurisdiction *string `json:"jurisdiction"`
	Status       *string `json:"status"`
	Description  *string `json:"description"`
}

// UpdateCase handles PATCH /api/cases/:id
func (h *CaseHandler) UpdateCase(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	kase, err := h.cases.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(c, http.StatusNotFound, "CASE_NOT_FOUND", "Case not found")
			return
		}
		h.logger.Error("get case", zap.String("case_id", id.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load case")
		return
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "title cannot be empty")
			return
		}
		kase.Title = *req.Title
	}
	if req.CaseNumber != nil {
		kase.CaseNumber = req.CaseNumber
	}
	if req.Plaintiff != nil {
		kase.Plaintiff = *req.Plaintiff
	}
	if req.Defendant != nil {
		kase.Defendant = *req.Defendant
	}
	if req.Jurisdiction != nil {
		kase.Jurisdiction = *req.Jurisdiction
	}
	if req.Status != nil {
		status := models.CaseStatus(*req.Status)
		if !validCaseStatus(status) {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status must be active, pending, or closed")
			return
		}
		kase.Status = status
	}
	if req.Description != nil {
		kase.Description = req.Description
	}

	if err := h.cases.Update(c.Request.Context(), kase); err != nil {
		h.logger.Error("update case", zap.String("case_id", id.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update case")
		return
	}
	respondData(c, http.StatusOK, kase)
}

// ListCaseDocuments handles GET /api/cases/:id/documents
func (h *CaseHandler) ListCaseDocuments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if !h.caseExists(c, id) {
		return
	}

	docs, err := h.documents.ListByCaseID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("list case documents", zap.String("case_id", id.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list documents")
		return
	}
	respondData(c, http.StatusOK, docs)
}

// ListCaseDeadlines handles GET /api/cases/:id/deadlines
func (h *CaseHandler) ListCaseDeadlines(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if !h.caseExists(c, id) {
		return
	}

	deadlines, err := h.deadlines.ListByCaseID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("list case deadlines", zap.String("case_id", id.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list deadlines")
		return
	}
	respondData(c, http.StatusOK, deadlines)
}

// caseExists resolves the case and writes the error response itself when
// the case is missing or the lookup fails.
func (h *CaseHandler) caseExists(c *gin.Context, id uuid.UUID) bool {
	if _, err := h.cases.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(c, http.StatusNotFound, "CASE_NOT_FOUND", "Case not found")
			return false
		}
		h.logger.Error("get case", zap.String("case_id", id.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load case")
		return false
	}
	return true
}

// parseIDParam parses the :id path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func validCaseStatus(s models.CaseStatus) bool {
	switch s {
	case models.CaseStatusActive, models.CaseStatusPending, models.CaseStatusClosed:
		return true
	}
	return false
}
