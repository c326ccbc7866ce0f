package repository

import (
	"context"

	"prosecase-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CaseRepository handles database operations for cases
type CaseRepository struct {
	db *pgxpool.Pool
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *pgxpool.Pool) *CaseRepository {
	return &CaseRepository{db: db}
}

// Create creates a new case
func (r *CaseRepository) Create(ctx context.Context, c *models.Case) error {
	query := `
		INSERT INTO cases (
			title, case_number, plaintiff, defendant, jurisdiction, status, description
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		c.Title,
		c.CaseNumber,
		c.Plaintiff,
		c.Defendant,
		c.Jurisdiction,
		c.Status,
		c.Description,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	return err
}

// GetByID retrieves a case by ID
func (r *CaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	c := &models.Case{}
	query := `
		SELECT id, title, case_number, plaintiff, defendant, jurisdiction,
			status, description, created_at, updated_at
		FROM cases
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Title,
		&c.CaseNumber,
		&c.Plaintiff,
		&c.Defendant,
		&c.Jurisdiction,
		&c.Status,
		&c.Description,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return c, nil
}

// List retrieves all cases, newest first
func (r *CaseRepository) List(ctx context.Context) ([]*models.Case, error) {
	query := `
		SELECT id, title, case_number, plaintiff, defendant, jurisdiction,
			status, description, created_at, updated_at
		FROM cases
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []*models.Case
	for rows.Next() {
		c := &models.Case{}
		err := rows.Scan(
			&c.ID,
			&c.Title,
			&c.CaseNumber,
			&c.Plaintiff,
			&c.Defendant,
			&c.Jurisdiction,
			&c.Status,
			&c.Description,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}

	return cases, rows.Err()
}

// Update updates a case and refreshes its updated_at timestamp
func (r *CaseRepository) Update(ctx context.Context, c *models.Case) error {
	query := `
		UPDATE cases SET
			title = $2,
			case_number = $3,
			plaintiff = $4,
			defendant = $5,
			jurisdiction = $6,
			status = $7,
			description = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		c.ID,
		c.Title,
		c.CaseNumber,
		c.Plaintiff,
		c.Defendant,
		c.Jurisdiction,
		c.Status,
		c.Description,
	).Scan(&c.UpdatedAt)

	return err
}

// Delete deletes a case; owned documents, deadlines, and chat messages
// cascade at the schema level
func (r *CaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cases WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
