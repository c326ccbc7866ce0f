package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prosecase-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDeadlineRouter(deadlines *deadlineStoreStub, cases *caseStoreStub) *gin.Engine {
	h := NewDeadlineHandler(deadlines, cases, zap.NewNop())

	r := gin.New()
	r.GET("/api/deadlines", h.ListDeadlines)
	r.GET("/api/deadlines/upcoming", h.ListUpcoming)
	r.POST("/api/deadlines", h.CreateDeadline)
	r.PATCH("/api/deadlines/:id", h.UpdateDeadline)
	return r
}

func TestCreateDeadline(t *testing.T) {
	cases := newCaseStoreStub()
	kase := seedCase(cases)
	deadlines := &deadlineStoreStub{}
	r := newDeadlineRouter(deadlines, cases)

	payload, _ := json.Marshal(CreateDeadlineRequest{
		CaseID:       kase.ID,
		Title:        "File answer",
		DueDate:      time.Now().Add(10 * 24 * time.Hour),
		DeadlineType: "filing",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/deadlines", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, deadlines.deadlines, 1)
	assert.False(t, deadlines.deadlines[0].Completed)
}

func TestCreateDeadlineMissingCase(t *testing.T) {
	deadlines := &deadlineStoreStub{}
	r := newDeadlineRouter(deadlines, newCaseStoreStub())

	payload, _ := json.Marshal(CreateDeadlineRequest{
		CaseID:       uuid.New(),
		Title:        "File answer",
		DueDate:      time.Now().Add(10 * 24 * time.Hour),
		DeadlineType: "filing",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/deadlines", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, deadlines.deadlines)
}

func TestUpdateDeadlineCompleted(t *testing.T) {
	deadlines := &deadlineStoreStub{deadlines: []*models.Deadline{{
		ID:           uuid.New(),
		CaseID:       uuid.New(),
		Title:        "File answer",
		DueDate:      time.Now().Add(5 * 24 * time.Hour),
		DeadlineType: "filing",
	}}}
	r := newDeadlineRouter(deadlines, newCaseStoreStub())

	payload := []byte(`{"completed": true}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/deadlines/"+deadlines.deadlines[0].ID.String(), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var updated models.Deadline
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.True(t, updated.Completed)
	assert.Equal(t, "File answer", updated.Title)
}

func TestUpdateDeadlineNotFound(t *testing.T) {
	r := newDeadlineRouter(&deadlineStoreStub{}, newCaseStoreStub())

	payload := []byte(`{"completed": true}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/deadlines/"+uuid.NewString(), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DEADLINE_NOT_FOUND", env.Error.Code)
}

// vanishingDeadlineStore answers the initial load but reports the row gone
// by write time, like a concurrent delete would.
type vanishingDeadlineStore struct {
	deadlineStoreStub
	deadline *models.Deadline
}

func (s *vanishingDeadlineStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Deadline, error) {
	if s.deadline != nil && s.deadline.ID == id {
		return s.deadline, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *vanishingDeadlineStore) Update(ctx context.Context, d *models.Deadline) error {
	return pgx.ErrNoRows
}

func TestUpdateDeadlineDeletedBetweenLoadAndWrite(t *testing.T) {
	deadline := &models.Deadline{
		ID:           uuid.New(),
		CaseID:       uuid.New(),
		Title:        "File answer",
		DueDate:      time.Now().Add(5 * 24 * time.Hour),
		DeadlineType: "filing",
	}
	store := &vanishingDeadlineStore{deadline: deadline}
	h := NewDeadlineHandler(store, newCaseStoreStub(), zap.NewNop())

	r := gin.New()
	r.PATCH("/api/deadlines/:id", h.UpdateDeadline)

	payload := []byte(`{"completed": true}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/deadlines/"+deadline.ID.String(), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DEADLINE_NOT_FOUND", env.Error.Code)
}
