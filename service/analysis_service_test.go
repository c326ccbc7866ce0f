package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"prosecase-backend/llm"
	"prosecase-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAnalysisService(mock *llm.MockClient) *AnalysisService {
	return NewAnalysisService(mock, zap.NewNop())
}

func TestAnalyzeDocument(t *testing.T) {
	var seenPrompt string
	mock := &llm.MockClient{
		GenerateJSONFunc: func(ctx context.Context, system, prompt string, temperature float32) (string, error) {
			seenPrompt = prompt
			return analysisJSON, nil
		},
	}
	svc := newTestAnalysisService(mock)

	analysis, err := svc.AnalyzeDocument(context.Background(), "Plaintiff alleges negligence.", "complaint", "Texas")
	require.NoError(t, err)

	assert.Equal(t, "A negligence complaint", analysis.Summary)
	assert.Equal(t, "Smith", analysis.Parties.Plaintiff)
	assert.Contains(t, seenPrompt, "complaint")
	assert.Contains(t, seenPrompt, "Texas")
	assert.Contains(t, seenPrompt, "Plaintiff alleges negligence.")
}

func TestAnalyzeDocumentModelFailure(t *testing.T) {
	mock := &llm.MockClient{
		GenerateJSONFunc: func(ctx context.Context, system, prompt string, temperature float32) (string, error) {
			return "I cannot help with that.", nil
		},
	}
	svc := newTestAnalysisService(mock)

	_, err := svc.AnalyzeDocument(context.Background(), "text", "motion", "Texas")
	assert.ErrorIs(t, err, ErrAnalysisUnavailable)
}

func TestCheckComplianceClampsScore(t *testing.T) {
	mock := &llm.MockClient{
		GenerateJSONFunc: func(ctx context.Context, system, prompt string, temperature float32) (string, error) {
			return `{"overallAssessment": "pass", "score": 150, "findings": [], "requiredElements": [], "recommendations": []}`, nil
		},
	}
	svc := newTestAnalysisService(mock)

	check, err := svc.CheckCompliance(context.Background(), "complaint text", "Texas")
	require.NoError(t, err)
	assert.Equal(t, models.CompliancePass, check.OverallAssessment)
	assert.Equal(t, 100, check.Score)
}

func TestCheckComplianceRejectsUnknownAssessment(t *testing.T) {
	mock := &llm.MockClient{
		GenerateJSONFunc: func(ctx context.Context, system, prompt string, temperature float32) (string, error) {
			return `{"overallAssessment": "excellent", "score": 90, "findings": [], "requiredElements": [], "recommendations": []}`, nil
		},
	}
	svc := newTestAnalysisService(mock)

	_, err := svc.CheckCompliance(context.Background(), "complaint text", "Texas")
	assert.ErrorIs(t, err, ErrAnalysisUnavailable)
}

func TestGenerateDocument(t *testing.T) {
	mock := &llm.MockClient{
		GenerateTextFunc: func(ctx context.Context, system, prompt string, temperature float32) (string, error) {
			assert.Contains(t, prompt, "motion to dismiss")
			assert.Contains(t, prompt, "Western District of Texas")
			return "IN THE UNITED STATES DISTRICT COURT...", nil
		},
	}
	svc := newTestAnalysisService(mock)

	content, err := svc.GenerateDocument(context.Background(), GenerateDocumentRequest{
		DocumentType: "motion to dismiss",
		Jurisdiction: "Western District of Texas",
		Plaintiff:    "Smith",
		Defendant:    "Jones",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(content, "IN THE UNITED STATES DISTRICT COURT"))
	assert.Equal(t, 1, mock.GenerateTextCalls)
}

func TestGenerateDocumentEmptyResponse(t *testing.T) {
	mock := &llm.MockClient{
		GenerateTextFunc: func(ctx context.Context, system, prompt string, temperature float32) (string, error) {
			return "   ", nil
		},
	}
	svc := newTestAnalysisService(mock)

	_, err := svc.GenerateDocument(context.Background(), GenerateDocumentRequest{
		DocumentType: "answer",
		Jurisdiction: "Texas",
	})
	assert.ErrorIs(t, err, ErrAnalysisUnavailable)
}

func TestGetGuidanceWithCaseContext(t *testing.T) {
	var seenPrompt string
	mock := &llm.MockClient{
		GenerateJSONFunc: func(ctx context.Context, system, prompt string, temperature float32) (string, error) {
			seenPrompt = prompt
			return guidanceJSON, nil
		},
	}
	svc := newTestAnalysisService(mock)

	guidance, err := svc.GetGuidance(context.Background(), "What do I file next?", "Texas", "Case: Smith v. Jones")
	require.NoError(t, err)

	assert.Equal(t, "File your answer within 21 days of service.", guidance.Answer)
	assert.Contains(t, seenPrompt, "CASE CONTEXT:")
	assert.Contains(t, seenPrompt, "Smith v. Jones")
}

func TestLearnFromDocumentFailureReturnsNil(t *testing.T) {
	mock := &llm.MockClient{
		GenerateJSONFunc: func(ctx context.Context, system, prompt string, temperature float32) (string, error) {
			return "not json at all", nil
		},
	}
	svc := newTestAnalysisService(mock)

	patterns := svc.LearnFromDocument(context.Background(), "complaint", "Texas", "text", nil)
	assert.Nil(t, patterns)
}

func TestTruncateForPrompt(t *testing.T) {
	long := strings.Repeat("a", maxPromptChars+100)
	truncated := truncateForPrompt(long)
	assert.Less(t, len(truncated), len(long))
	assert.Contains(t, truncated, "[Content truncated")

	short := "short text"
	assert.Equal(t, short, truncateForPrompt(short))
}

func TestTruncateForPromptRuneBoundary(t *testing.T) {
	// Place a two-byte rune across the cut point; the truncated prompt must
	// stay valid UTF-8.
	long := strings.Repeat("a", maxPromptChars-1) + "é" + strings.Repeat("b", 50)
	truncated := truncateForPrompt(long)

	assert.True(t, utf8.ValidString(truncated))
	assert.Contains(t, truncated, "[Content truncated")
}
