package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"prosecase-backend/extract"
	"prosecase-backend/llm"
	"prosecase-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const analysisJSON = `{
	"summary": "A negligence complaint",
	"keyIssues": ["duty of care"],
	"parties": {"plaintiff": "Smith", "defendant": "Jones"},
	"legalClaims": ["negligence"],
	"citations": [],
	"strengths": ["clear timeline"],
	"weaknesses": ["no damages amount"],
	"recommendations": ["state damages"]
}`

const complianceJSON = `{
	"overallAssessment": "needs_improvement",
	"score": 62,
	"findings": [{
		"claim": "negligence",
		"assessment": "partially pleaded",
		"reasoning": "causation is conclusory",
		"plausibility": "conceivable",
		"suggestions": ["allege causation facts"]
	}],
	"requiredElements": [{"element": "short and plain statement", "present": true, "explanation": "present"}],
	"recommendations": ["add factual detail"]
}`

const learningJSON = `{
	"effectivePatterns": ["numbered factual allegations"],
	"issuesFound": ["conclusory causation"],
	"jurisdictionSpecificRules": [],
	"documentTypeGuidelines": ["include a prayer for relief"],
	"improvementSuggestions": ["cite the governing statute"]
}`

// routingMock answers analysis, compliance, and learning prompts with
// canned JSON, keyed off the system prompt.
func routingMock() *llm.MockClient {
	return &llm.MockClient{
		GenerateJSONFunc: func(ctx context.Context, system, prompt string, temperature float32) (string, error) {
			switch {
			case strings.Contains(system, "civil procedure"):
				return complianceJSON, nil
			case strings.Contains(system, "drafting patterns"):
				return learningJSON, nil
			default:
				return analysisJSON, nil
			}
		},
	}
}

func newTestDocumentService(cases *fakeCaseStore, docs *fakeDocumentStore, learning *fakeLearningStore, mock *llm.MockClient) *DocumentService {
	analysis := NewAnalysisService(mock, zap.NewNop())
	return NewDocumentService(
		WithCaseStore(cases),
		WithDocumentStore(docs),
		WithLearningDataStore(learning),
		WithAnalysisService(analysis),
	)
}

func testCase() *models.Case {
	return &models.Case{
		ID:           uuid.New(),
		Title:        "Smith v. Jones",
		Plaintiff:    "Smith",
		Defendant:    "Jones",
		Jurisdiction: "Texas",
		Status:       models.CaseStatusActive,
	}
}

func TestUploadDocumentMissingFields(t *testing.T) {
	kase := testCase()
	docs := &fakeDocumentStore{}
	svc := newTestDocumentService(newFakeCaseStore(kase), docs, &fakeLearningStore{}, routingMock())

	tests := []struct {
		name string
		req  UploadDocumentRequest
	}{
		{"missing case id", UploadDocumentRequest{Title: "t", DocumentType: "motion", Content: "x"}},
		{"missing title", UploadDocumentRequest{CaseID: kase.ID, DocumentType: "motion", Content: "x"}},
		{"missing type", UploadDocumentRequest{CaseID: kase.ID, Title: "t", Content: "x"}},
		{"no content or file", UploadDocumentRequest{CaseID: kase.ID, Title: "t", DocumentType: "motion"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadDocument(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Empty(t, docs.created)
}

func TestUploadDocumentCaseNotFound(t *testing.T) {
	docs := &fakeDocumentStore{}
	svc := newTestDocumentService(newFakeCaseStore(), docs, &fakeLearningStore{}, routingMock())

	_, err := svc.UploadDocument(context.Background(), UploadDocumentRequest{
		CaseID:       uuid.New(),
		Title:        "Answer",
		DocumentType: "answer",
		Content:      "Defendant denies each allegation.",
	})
	assert.ErrorIs(t, err, ErrCaseNotFound)
	assert.Empty(t, docs.created)
}

func TestUploadDocumentInlineContent(t *testing.T) {
	kase := testCase()
	docs := &fakeDocumentStore{}
	mock := routingMock()
	svc := newTestDocumentService(newFakeCaseStore(kase), docs, &fakeLearningStore{}, mock)

	doc, err := svc.UploadDocument(context.Background(), UploadDocumentRequest{
		CaseID:       kase.ID,
		Title:        "Motion to Compel",
		DocumentType: "motion",
		Content:      "  Plaintiff moves to compel discovery responses.  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Plaintiff moves to compel discovery responses.", doc.Content)
	require.NotNil(t, doc.AIAnalysis)
	assert.Equal(t, "A negligence complaint", doc.AIAnalysis.Summary)
	assert.Nil(t, doc.ComplianceCheck)
	assert.Nil(t, doc.FileName)
	// non-complaints get analysis only
	assert.Equal(t, 1, mock.GenerateJSONCalls)
	require.Len(t, docs.created, 1)
}

func TestUploadDocumentAnalysisFailureStillPersists(t *testing.T) {
	kase := testCase()
	docs := &fakeDocumentStore{}
	mock := &llm.MockClient{
		GenerateJSONFunc: func(ctx context.Context, system, prompt string, temperature float32) (string, error) {
			return "", errors.New("model overloaded")
		},
	}
	svc := newTestDocumentService(newFakeCaseStore(kase), docs, &fakeLearningStore{}, mock)

	doc, err := svc.UploadDocument(context.Background(), UploadDocumentRequest{
		CaseID:       kase.ID,
		Title:        "Motion",
		DocumentType: "motion",
		Content:      "Plaintiff moves the court.",
	})
	require.NoError(t, err)
	assert.Nil(t, doc.AIAnalysis)
	require.Len(t, docs.created, 1)
}

func TestUploadDocumentComplaintRunsComplianceAndLearning(t *testing.T) {
	kase := testCase()
	docs := &fakeDocumentStore{}
	learning := &fakeLearningStore{}
	mock := routingMock()
	svc := newTestDocumentService(newFakeCaseStore(kase), docs, learning, mock)

	doc, err := svc.UploadDocument(context.Background(), UploadDocumentRequest{
		CaseID:       kase.ID,
		Title:        "Original Complaint",
		DocumentType: "Amended Complaint",
		Content:      "Plaintiff alleges negligence.",
	})
	require.NoError(t, err)

	require.NotNil(t, doc.ComplianceCheck)
	assert.Equal(t, models.ComplianceNeedsImprovement, doc.ComplianceCheck.OverallAssessment)
	assert.Equal(t, 62, doc.ComplianceCheck.Score)

	// analysis + compliance + learning
	assert.Equal(t, 3, mock.GenerateJSONCalls)

	require.Len(t, learning.created, 1)
	entry := learning.created[0]
	assert.Equal(t, "document_analysis", entry.Category)
	require.NotNil(t, entry.Jurisdiction)
	assert.Equal(t, "Texas", *entry.Jurisdiction)
	assert.Equal(t, []string{"conclusory causation"}, entry.Patterns.IssuesFound)
}

func TestUploadDocumentLearningFailureNonFatal(t *testing.T) {
	kase := testCase()
	docs := &fakeDocumentStore{}
	learning := &fakeLearningStore{createErr: errStoreDown}
	svc := newTestDocumentService(newFakeCaseStore(kase), docs, learning, routingMock())

	_, err := svc.UploadDocument(context.Background(), UploadDocumentRequest{
		CaseID:       kase.ID,
		Title:        "Complaint",
		DocumentType: "complaint",
		Content:      "Plaintiff alleges negligence.",
	})
	require.NoError(t, err)
	require.Len(t, docs.created, 1)
}

func TestUploadDocumentUnsupportedFileAborts(t *testing.T) {
	kase := testCase()
	docs := &fakeDocumentStore{}
	svc := newTestDocumentService(newFakeCaseStore(kase), docs, &fakeLearningStore{}, routingMock())

	_, err := svc.UploadDocument(context.Background(), UploadDocumentRequest{
		CaseID:       kase.ID,
		Title:        "Legacy filing",
		DocumentType: "motion",
		FileData:     []byte("binary"),
		FileName:     "filing.doc",
		MimeType:     "application/msword",
	})
	assert.ErrorIs(t, err, extract.ErrUnsupportedMediaType)
	assert.Empty(t, docs.created)
}

func TestUploadDocumentFromTextFile(t *testing.T) {
	kase := testCase()
	docs := &fakeDocumentStore{}
	svc := newTestDocumentService(newFakeCaseStore(kase), docs, &fakeLearningStore{}, routingMock())

	doc, err := svc.UploadDocument(context.Background(), UploadDocumentRequest{
		CaseID:       kase.ID,
		Title:        "Notice",
		DocumentType: "notice",
		FileData:     []byte("NOTICE OF APPEARANCE"),
		FileName:     "notice.txt",
		MimeType:     "text/plain",
	})
	require.NoError(t, err)
	assert.Equal(t, "NOTICE OF APPEARANCE", doc.Content)
	require.NotNil(t, doc.FileName)
	assert.Equal(t, "notice.txt", *doc.FileName)
	require.NotNil(t, doc.FileSize)
	assert.Equal(t, int64(len("NOTICE OF APPEARANCE")), *doc.FileSize)
}

func TestGetDocumentNotFound(t *testing.T) {
	svc := newTestDocumentService(newFakeCaseStore(), &fakeDocumentStore{}, &fakeLearningStore{}, routingMock())

	_, err := svc.GetDocument(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestIsComplaint(t *testing.T) {
	assert.True(t, isComplaint("complaint"))
	assert.True(t, isComplaint("Amended Complaint"))
	assert.True(t, isComplaint("COMPLAINT FOR DAMAGES"))
	assert.False(t, isComplaint("motion"))
	assert.False(t, isComplaint("answer"))
}
