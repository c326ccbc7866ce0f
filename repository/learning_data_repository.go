package repository

import (
	"context"
	"fmt"

	"prosecase-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LearningDataRepository handles database operations for learning data.
// The table is an append-only log of model-derived pattern summaries.
type LearningDataRepository struct {
	db *pgxpool.Pool
}

// NewLearningDataRepository creates a new learning data repository
func NewLearningDataRepository(db *pgxpool.Pool) *LearningDataRepository {
	return &LearningDataRepository{db: db}
}

// Create creates a new learning data entry
func (r *LearningDataRepository) Create(ctx context.Context, ld *models.LearningData) error {
	query := `
		INSERT INTO learning_data (
			category, jurisdiction, document_type, patterns, success_metrics
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		ld.Category,
		ld.Jurisdiction,
		ld.DocumentType,
		ld.Patterns,
		ld.SuccessMetrics,
	).Scan(&ld.ID, &ld.CreatedAt, &ld.UpdatedAt)

	return err
}

const learningColumns = `id, category, jurisdiction, document_type, patterns,
	success_metrics, created_at, updated_at`

func (r *LearningDataRepository) queryLearningData(ctx context.Context, query string, args ...any) ([]*models.LearningData, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.LearningData
	for rows.Next() {
		ld := &models.LearningData{}
		err := rows.Scan(
			&ld.ID,
			&ld.Category,
			&ld.Jurisdiction,
			&ld.DocumentType,
			&ld.Patterns,
			&ld.SuccessMetrics,
			&ld.CreatedAt,
			&ld.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ld)
	}

	return entries, rows.Err()
}

// List retrieves all learning data entries, newest first
func (r *LearningDataRepository) List(ctx context.Context) ([]*models.LearningData, error) {
	query := `SELECT ` + learningColumns + ` FROM learning_data ORDER BY created_at DESC`
	return r.queryLearningData(ctx, query)
}

// ListByCategory retrieves learning data for a category, optionally filtered
// by jurisdiction, newest first
func (r *LearningDataRepository) ListByCategory(ctx context.Context, category string, jurisdiction *string) ([]*models.LearningData, error) {
	query := `SELECT ` + learningColumns + ` FROM learning_data WHERE category = $1`
	args := []any{category}

	if jurisdiction != nil {
		query += fmt.Sprintf(" AND jurisdiction = $%d", len(args)+1)
		args = append(args, *jurisdiction)
	}

	query += " ORDER BY created_at DESC"

	return r.queryLearningData(ctx, query, args...)
}
