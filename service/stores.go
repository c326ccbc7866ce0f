package service

import (
	"context"

	"prosecase-backend/models"
	"prosecase-backend/repository"

	"github.com/google/uuid"
)

// Narrow store interfaces, one per entity, so the backing engine is
// swappable and mockable in tests. The repository package satisfies them.

// CaseStore handles persistence for cases.
type CaseStore interface {
	Create(ctx context.Context, c *models.Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error)
	List(ctx context.Context) ([]*models.Case, error)
	Update(ctx context.Context, c *models.Case) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentStore handles persistence for documents.
type DocumentStore interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	List(ctx context.Context) ([]*models.Document, error)
	ListByCaseID(ctx context.Context, caseID uuid.UUID) ([]*models.Document, error)
	Update(ctx context.Context, doc *models.Document) error
}

// DeadlineStore handles persistence for deadlines.
type DeadlineStore interface {
	Create(ctx context.Context, d *models.Deadline) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Deadline, error)
	List(ctx context.Context) ([]*models.Deadline, error)
	ListByCaseID(ctx context.Context, caseID uuid.UUID) ([]*models.Deadline, error)
	ListUpcoming(ctx context.Context) ([]*models.Deadline, error)
	Update(ctx context.Context, d *models.Deadline) error
}

// ChatMessageStore handles persistence for chat messages. A nil case id
// addresses the general thread.
type ChatMessageStore interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	ListByCaseID(ctx context.Context, caseID *uuid.UUID) ([]*models.ChatMessage, error)
}

// LearningDataStore handles persistence for the append-only learning log.
type LearningDataStore interface {
	Create(ctx context.Context, ld *models.LearningData) error
	List(ctx context.Context) ([]*models.LearningData, error)
	ListByCategory(ctx context.Context, category string, jurisdiction *string) ([]*models.LearningData, error)
}

// Compile-time checks that the repositories satisfy the store interfaces.
var (
	_ CaseStore         = (*repository.CaseRepository)(nil)
	_ DocumentStore     = (*repository.DocumentRepository)(nil)
	_ DeadlineStore     = (*repository.DeadlineRepository)(nil)
	_ ChatMessageStore  = (*repository.ChatMessageRepository)(nil)
	_ LearningDataStore = (*repository.LearningDataRepository)(nil)
)
