package repository

import (
	"context"
	"time"

	"prosecase-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// upcomingWindowDays is the horizon for upcoming-deadline queries.
const upcomingWindowDays = 30

// UpcomingWindow returns the [from, to) interval a deadline's due date must
// fall in to count as upcoming.
func UpcomingWindow(now time.Time) (time.Time, time.Time) {
	return now, now.AddDate(0, 0, upcomingWindowDays)
}

// DeadlineRepository handles database operations for deadlines
type DeadlineRepository struct {
	db *pgxpool.Pool
}

// NewDeadlineRepository creates a new deadline repository
func NewDeadlineRepository(db *pgxpool.Pool) *DeadlineRepository {
	return &DeadlineRepository{db: db}
}

// Create creates a new deadline
func (r *DeadlineRepository) Create(ctx context.Context, d *models.Deadline) error {
	query := `
		INSERT INTO deadlines (
			case_id, title, description, due_date, deadline_type, completed, reminder_sent
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		d.CaseID,
		d.Title,
		d.Description,
		d.DueDate,
		d.DeadlineType,
		d.Completed,
		d.ReminderSent,
	).Scan(&d.ID, &d.CreatedAt)

	return err
}

const deadlineColumns = `id, case_id, title, description, due_date,
	deadline_type, completed, reminder_sent, created_at`

func scanDeadline(row interface{ Scan(...any) error }) (*models.Deadline, error) {
	d := &models.Deadline{}
	err := row.Scan(
		&d.ID,
		&d.CaseID,
		&d.Title,
		&d.Description,
		&d.DueDate,
		&d.DeadlineType,
		&d.Completed,
		&d.ReminderSent,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// GetByID retrieves a deadline by ID
func (r *DeadlineRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Deadline, error) {
	query := `SELECT ` + deadlineColumns + ` FROM deadlines WHERE id = $1`
	return scanDeadline(r.db.QueryRow(ctx, query, id))
}

func (r *DeadlineRepository) queryDeadlines(ctx context.Context, query string, args ...any) ([]*models.Deadline, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deadlines []*models.Deadline
	for rows.Next() {
		d, err := scanDeadline(rows)
		if err != nil {
			return nil, err
		}
		deadlines = append(deadlines, d)
	}

	return deadlines, rows.Err()
}

// List retrieves all deadlines in ascending due-date order
func (r *DeadlineRepository) List(ctx context.Context) ([]*models.Deadline, error) {
	query := `SELECT ` + deadlineColumns + ` FROM deadlines ORDER BY due_date ASC`
	return r.queryDeadlines(ctx, query)
}

// ListByCaseID retrieves all deadlines for a case in ascending due-date order
func (r *DeadlineRepository) ListByCaseID(ctx context.Context, caseID uuid.UUID) ([]*models.Deadline, error) {
	query := `SELECT ` + deadlineColumns + ` FROM deadlines
		WHERE case_id = $1
		ORDER BY due_date ASC`
	return r.queryDeadlines(ctx, query, caseID)
}

// ListUpcoming retrieves incomplete deadlines due within the next 30 days,
// ascending. Overdue and completed deadlines are excluded.
func (r *DeadlineRepository) ListUpcoming(ctx context.Context) ([]*models.Deadline, error) {
	from, to := UpcomingWindow(time.Now())
	query := `SELECT ` + deadlineColumns + ` FROM deadlines
		WHERE completed = false AND due_date >= $1 AND due_date < $2
		ORDER BY due_date ASC`
	return r.queryDeadlines(ctx, query, from, to)
}

// Update updates a deadline. Returns pgx.ErrNoRows when no deadline with
// the given id exists.
func (r *DeadlineRepository) Update(ctx context.Context, d *models.Deadline) error {
	query := `
		UPDATE deadlines SET
			title = $2,
			description = $3,
			due_date = $4,
			deadline_type = $5,
			completed = $6,
			reminder_sent = $7
		WHERE id = $1`

	ct, err := r.db.Exec(
		ctx, query,
		d.ID,
		d.Title,
		d.Description,
		d.DueDate,
		d.DeadlineType,
		d.Completed,
		d.ReminderSent,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
