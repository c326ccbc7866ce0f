package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"prosecase-backend/extract"
	"prosecase-backend/models"
	"prosecase-backend/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrCaseNotFound     = errors.New("case not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrValidation       = errors.New("invalid request")
)

// DocumentService orchestrates the document intake pipeline: validation,
// case resolution, text extraction, AI analysis, compliance checking for
// complaints, and persistence.
type DocumentService struct {
	cases     CaseStore
	documents DocumentStore
	learning  LearningDataStore
	analysis  *AnalysisService
	files     storage.Storage
	logger    *zap.Logger
}

// DocumentServiceOption is a functional option for DocumentService
type DocumentServiceOption func(*DocumentService)

// WithCaseStore sets the case store
func WithCaseStore(s CaseStore) DocumentServiceOption {
	return func(svc *DocumentService) { svc.cases = s }
}

// WithDocumentStore sets the document store
func WithDocumentStore(s DocumentStore) DocumentServiceOption {
	return func(svc *DocumentService) { svc.documents = s }
}

// WithLearningDataStore sets the learning data store
func WithLearningDataStore(s LearningDataStore) DocumentServiceOption {
	return func(svc *DocumentService) { svc.learning = s }
}

// WithAnalysisService sets the analysis service
func WithAnalysisService(a *AnalysisService) DocumentServiceOption {
	return func(svc *DocumentService) { svc.analysis = a }
}

// WithFileStorage sets the blob store used to retain uploaded originals
func WithFileStorage(fs storage.Storage) DocumentServiceOption {
	return func(svc *DocumentService) { svc.files = fs }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) DocumentServiceOption {
	return func(svc *DocumentService) { svc.logger = logger }
}

// NewDocumentService creates a new document service
func NewDocumentService(opts ...DocumentServiceOption) *DocumentService {
	svc := &DocumentService{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// UploadDocumentRequest represents a request to ingest a document, either
// from an uploaded file or from inline content.
type UploadDocumentRequest struct {
	CaseID       uuid.UUID
	Title        string
	DocumentType string

	// Inline content, used when no file is supplied
	Content string

	// Uploaded file, held entirely in memory
	FileData []byte
	FileName string
	MimeType string
}

// UploadDocument runs the intake pipeline and returns the persisted record.
// Validation, case lookup, and extraction failures abort the request; AI
// analysis failures degrade to nil fields on the stored document.
func (s *DocumentService) UploadDocument(ctx context.Context, req UploadDocumentRequest) (*models.Document, error) {
	// Validate input
	if req.CaseID == uuid.Nil {
		return nil, fmt.Errorf("%w: caseId is required", ErrValidation)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(req.DocumentType) == "" {
		return nil, fmt.Errorf("%w: documentType is required", ErrValidation)
	}

	// Resolve the owning case
	kase, err := s.cases.GetByID(ctx, req.CaseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("load case: %w", err)
	}

	// Obtain text
	var text string
	switch {
	case len(req.FileData) > 0:
		text, err = extract.Extract(req.FileData, req.MimeType, req.FileName)
		if err != nil {
			return nil, err
		}
	case strings.TrimSpace(req.Content) != "":
		text = strings.TrimSpace(req.Content)
	default:
		return nil, fmt.Errorf("%w: a file or content is required", ErrValidation)
	}

	doc := &models.Document{
		CaseID:       req.CaseID,
		Title:        req.Title,
		DocumentType: req.DocumentType,
		Content:      text,
	}
	if req.FileName != "" {
		doc.FileName = &req.FileName
		size := int64(len(req.FileData))
		doc.FileSize = &size
	}

	// Analyze; failure is non-fatal and leaves a nil analysis field
	analysis, err := s.analysis.AnalyzeDocument(ctx, text, req.DocumentType, kase.Jurisdiction)
	if err != nil {
		s.logger.Warn("document analysis skipped",
			zap.String("document_type", req.DocumentType),
			zap.Error(err))
	} else {
		doc.AIAnalysis = analysis
	}

	// Complaints additionally get a pleading sufficiency check and a
	// best-effort learning capture
	if isComplaint(req.DocumentType) {
		compliance, err := s.analysis.CheckCompliance(ctx, text, kase.Jurisdiction)
		if err != nil {
			s.logger.Warn("compliance check skipped", zap.Error(err))
		} else {
			doc.ComplianceCheck = compliance
		}

		if patterns := s.analysis.LearnFromDocument(ctx, req.DocumentType, kase.Jurisdiction, text, doc.ComplianceCheck); patterns != nil {
			s.recordLearning(ctx, req.DocumentType, kase.Jurisdiction, patterns)
		}
	}

	// Retain the uploaded original; the document record is the source of
	// truth, so a blob store fault only costs the original file
	if len(req.FileData) > 0 && s.files != nil {
		path, err := s.files.Upload(ctx, uuid.New(), req.FileName, bytes.NewReader(req.FileData))
		if err != nil {
			s.logger.Warn("original file not retained",
				zap.String("file_name", req.FileName),
				zap.Error(err))
		} else {
			doc.StoragePath = &path
		}
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("persist document: %w", err)
	}

	return doc, nil
}

// isComplaint reports whether a document type denotes a complaint.
func isComplaint(documentType string) bool {
	return strings.Contains(strings.ToLower(documentType), "complaint")
}

// recordLearning appends a learning entry; failures are logged and ignored
// since the log is advisory.
func (s *DocumentService) recordLearning(ctx context.Context, documentType, jurisdiction string, patterns *models.LearningPatterns) {
	if s.learning == nil {
		return
	}

	entry := &models.LearningData{
		Category:     "document_analysis",
		Jurisdiction: &jurisdiction,
		DocumentType: &documentType,
		Patterns:     *patterns,
	}
	if err := s.learning.Create(ctx, entry); err != nil {
		s.logger.Warn("learning entry not persisted", zap.Error(err))
	}
}

// GetDocument retrieves a document by id.
func (s *DocumentService) GetDocument(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}
