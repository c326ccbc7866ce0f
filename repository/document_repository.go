package repository

import (
	"context"

	"prosecase-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository handles database operations for documents
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document record
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (
			case_id, title, document_type, content, file_name, file_size,
			storage_path, ai_analysis, compliance_check
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		doc.CaseID,
		doc.Title,
		doc.DocumentType,
		doc.Content,
		doc.FileName,
		doc.FileSize,
		doc.StoragePath,
		doc.AIAnalysis,
		doc.ComplianceCheck,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)

	return err
}

const documentColumns = `id, case_id, title, document_type, content, file_name,
	file_size, storage_path, ai_analysis, compliance_check, created_at, updated_at`

func scanDocument(row interface{ Scan(...any) error }) (*models.Document, error) {
	doc := &models.Document{}
	err := row.Scan(
		&doc.ID,
		&doc.CaseID,
		&doc.Title,
		&doc.DocumentType,
		&doc.Content,
		&doc.FileName,
		&doc.FileSize,
		&doc.StoragePath,
		&doc.AIAnalysis,
		&doc.ComplianceCheck,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRow(ctx, query, id))
}

// List retrieves all documents, newest first
func (r *DocumentRepository) List(ctx context.Context) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// ListByCaseID retrieves all documents for a case, newest first
func (r *DocumentRepository) ListByCaseID(ctx context.Context, caseID uuid.UUID) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE case_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// Update updates a document and refreshes its updated_at timestamp
func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := `
		UPDATE documents SET
			title = $2,
			document_type = $3,
			content = $4,
			file_name = $5,
			file_size = $6,
			storage_path = $7,
			ai_analysis = $8,
			compliance_check = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		doc.ID,
		doc.Title,
		doc.DocumentType,
		doc.Content,
		doc.FileName,
		doc.FileSize,
		doc.StoragePath,
		doc.AIAnalysis,
		doc.ComplianceCheck,
	).Scan(&doc.UpdatedAt)

	return err
}
