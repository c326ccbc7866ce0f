package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"prosecase-backend/extract"
	"prosecase-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentHandler serves document intake, retrieval, and AI generation.
type DocumentHandler struct {
	documents      *service.DocumentService
	analysis       *service.AnalysisService
	store          service.DocumentStore
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documents *service.DocumentService, analysis *service.AnalysisService, store service.DocumentStore, maxUploadBytes int64, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documents:      documents,
		analysis:       analysis,
		store:          store,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.Named("documents"),
	}
}

// ListDocuments handles GET /api/documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	docs, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list documents", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list documents")
		return
	}
	respondData(c, http.StatusOK, docs)
}

// GetDocument handles GET /api/documents/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	doc, err := h.documents.GetDocument(c.Request.Context(), id)
	if err != nil {
		h.respondIntakeError(c, err)
		return
	}
	respondData(c, http.StatusOK, doc)
}

// CreateDocumentRequest is the body for POST /api/documents: inline content,
// no file.
type CreateDocumentRequest struct {
	CaseID       uuid.UUID `json:"case_id"`
	Title        string    `json:"title"`
	DocumentType string    `json:"document_type"`
	Content      string    `json:"content"`
}

// CreateDocument handles POST /api/documents
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	doc, err := h.documents.UploadDocument(c.Request.Context(), service.UploadDocumentRequest{
		CaseID:       req.CaseID,
		Title:        req.Title,
		DocumentType: req.DocumentType,
		Content:      req.Content,
	})
	if err != nil {
		h.respondIntakeError(c, err)
		return
	}
	respondData(c, http.StatusCreated, doc)
}

// UploadDocument handles POST /api/documents/upload (multipart). Expected
// form fields: caseId, title, documentType, and either a file part or a
// content field.
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	caseID, err := uuid.Parse(c.PostForm("caseId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "caseId must be a valid UUID")
		return
	}

	req := service.UploadDocumentRequest{
		CaseID:       caseID,
		Title:        c.PostForm("title"),
		DocumentType: c.PostForm("documentType"),
		Content:      c.PostForm("content"),
	}

	fileHeader, err := c.FormFile("file")
	if err == nil {
		if fileHeader.Size > h.maxUploadBytes {
			respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Uploaded file exceeds the size limit")
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Could not read uploaded file")
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
		f.Close()
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Could not read uploaded file")
			return
		}
		if int64(len(data)) > h.maxUploadBytes {
			respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Uploaded file exceeds the size limit")
			return
		}

		req.FileData = data
		req.FileName = fileHeader.Filename
		req.MimeType = fileHeader.Header.Get("Content-Type")
	}

	doc, err := h.documents.UploadDocument(c.Request.Context(), req)
	if err != nil {
		h.respondIntakeError(c, err)
		return
	}
	respondData(c, http.StatusCreated, doc)
}

// GenerateDocumentRequest is the body for POST /api/documents/generate.
type GenerateDocumentRequest struct {
	DocumentType string `json:"document_type"`
	Jurisdiction string `json:"jurisdiction"`
	Plaintiff    string `json:"plaintiff"`
	Defendant    string `json:"defendant"`
	CaseInfo     string `json:"case_info"`
	Instructions string `json:"instructions"`
}

// GenerateDocument handles POST /api/documents/generate. The draft is
// returned to the caller, not persisted.
func (h *DocumentHandler) GenerateDocument(c *gin.Context) {
	var req GenerateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	for field, value := range map[string]string{
		"document_type": req.DocumentType,
		"jurisdiction":  req.Jurisdiction,
	} {
		if strings.TrimSpace(value) == "" {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", field+" is required")
			return
		}
	}

	content, err := h.analysis.GenerateDocument(c.Request.Context(), service.GenerateDocumentRequest{
		DocumentType: req.DocumentType,
		Jurisdiction: req.Jurisdiction,
		Plaintiff:    req.Plaintiff,
		Defendant:    req.Defendant,
		CaseInfo:     req.CaseInfo,
		Instructions: req.Instructions,
	})
	if err != nil {
		h.logger.Error("generate document", zap.String("document_type", req.DocumentType), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "GENERATION_FAILED", "Document generation failed")
		return
	}
	respondData(c, http.StatusOK, gin.H{"content": content})
}

// respondIntakeError maps intake pipeline errors to HTTP responses.
func (h *DocumentHandler) respondIntakeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, service.ErrCaseNotFound):
		respondError(c, http.StatusNotFound, "CASE_NOT_FOUND", "Case not found")
	case errors.Is(err, service.ErrDocumentNotFound):
		respondError(c, http.StatusNotFound, "DOCUMENT_NOT_FOUND", "Document not found")
	case errors.Is(err, extract.ErrUnsupportedMediaType):
		respondError(c, http.StatusBadRequest, "UNSUPPORTED_MEDIA_TYPE", "Unsupported file type; use TXT, PDF, or DOCX")
	case errors.Is(err, extract.ErrEmptyContent):
		respondError(c, http.StatusBadRequest, "EMPTY_DOCUMENT", "The document contains no extractable text")
	case errors.Is(err, extract.ErrExtractionFailed):
		respondError(c, http.StatusBadRequest, "EXTRACTION_FAILED", "The file could not be parsed")
	default:
		h.logger.Error("document intake", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process document")
	}
}
