package service

import (
	"context"
	"errors"

	"prosecase-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// In-memory store fakes. Lookups return pgx.ErrNoRows on a miss, matching
// the repository behavior the services map errors from.

type fakeCaseStore struct {
	cases map[uuid.UUID]*models.Case
}

func newFakeCaseStore(cases ...*models.Case) *fakeCaseStore {
	s := &fakeCaseStore{cases: make(map[uuid.UUID]*models.Case)}
	for _, c := range cases {
		s.cases[c.ID] = c
	}
	return s
}

func (s *fakeCaseStore) Create(ctx context.Context, c *models.Case) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.cases[c.ID] = c
	return nil
}

func (s *fakeCaseStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	c, ok := s.cases[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

func (s *fakeCaseStore) List(ctx context.Context) ([]*models.Case, error) {
	var out []*models.Case
	for _, c := range s.cases {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeCaseStore) Update(ctx context.Context, c *models.Case) error {
	s.cases[c.ID] = c
	return nil
}

func (s *fakeCaseStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.cases, id)
	return nil
}

type fakeDocumentStore struct {
	created   []*models.Document
	createErr error
}

func (s *fakeDocumentStore) Create(ctx context.Context, doc *models.Document) error {
	if s.createErr != nil {
		return s.createErr
	}
	doc.ID = uuid.New()
	s.created = append(s.created, doc)
	return nil
}

func (s *fakeDocumentStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	for _, doc := range s.created {
		if doc.ID == id {
			return doc, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeDocumentStore) List(ctx context.Context) ([]*models.Document, error) {
	return s.created, nil
}

func (s *fakeDocumentStore) ListByCaseID(ctx context.Context, caseID uuid.UUID) ([]*models.Document, error) {
	var out []*models.Document
	for _, doc := range s.created {
		if doc.CaseID == caseID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *fakeDocumentStore) Update(ctx context.Context, doc *models.Document) error {
	return nil
}

type fakeLearningStore struct {
	created   []*models.LearningData
	createErr error
}

func (s *fakeLearningStore) Create(ctx context.Context, ld *models.LearningData) error {
	if s.createErr != nil {
		return s.createErr
	}
	ld.ID = uuid.New()
	s.created = append(s.created, ld)
	return nil
}

func (s *fakeLearningStore) List(ctx context.Context) ([]*models.LearningData, error) {
	return s.created, nil
}

func (s *fakeLearningStore) ListByCategory(ctx context.Context, category string, jurisdiction *string) ([]*models.LearningData, error) {
	var out []*models.LearningData
	for _, ld := range s.created {
		if ld.Category != category {
			continue
		}
		if jurisdiction != nil && (ld.Jurisdiction == nil || *ld.Jurisdiction != *jurisdiction) {
			continue
		}
		out = append(out, ld)
	}
	return out, nil
}

type fakeChatStore struct {
	messages  []*models.ChatMessage
	createErr error
}

func (s *fakeChatStore) Create(ctx context.Context, msg *models.ChatMessage) error {
	if s.createErr != nil {
		return s.createErr
	}
	msg.ID = uuid.New()
	s.messages = append(s.messages, msg)
	return nil
}

func (s *fakeChatStore) ListByCaseID(ctx context.Context, caseID *uuid.UUID) ([]*models.ChatMessage, error) {
	var out []*models.ChatMessage
	for _, msg := range s.messages {
		switch {
		case caseID == nil && msg.CaseID == nil:
			out = append(out, msg)
		case caseID != nil && msg.CaseID != nil && *msg.CaseID == *caseID:
			out = append(out, msg)
		}
	}
	return out, nil
}

var errStoreDown = errors.New("store unavailable")
