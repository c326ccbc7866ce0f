package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"prosecase-backend/llm"
	"prosecase-backend/models"

	"go.uber.org/zap"
)

// ErrAnalysisUnavailable means the language-model call failed, returned no
// content, or returned content that does not parse as the expected shape.
var ErrAnalysisUnavailable = errors.New("analysis unavailable")

// maxPromptChars bounds document text embedded in prompts to stay inside
// model context limits.
const maxPromptChars = 30000

// AnalysisService issues prompts to the hosted language model and parses
// its structured responses.
type AnalysisService struct {
	generator llm.TextGenerator
	logger    *zap.Logger
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(generator llm.TextGenerator, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		generator: generator,
		logger:    logger.Named("analysis"),
	}
}

// generateStructured runs a JSON-mode generation and parses the result.
// Every failure mode maps to ErrAnalysisUnavailable.
func generateStructured[T any](ctx context.Context, s *AnalysisService, system, prompt string, temperature float32) (*T, error) {
	raw, err := s.generator.GenerateJSON(ctx, system, prompt, temperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}

	result, err := llm.ParseJSONResponse[T](raw)
	if err != nil {
		s.logger.Warn("unparseable model response", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}

	return &result, nil
}

func truncateForPrompt(text string) string {
	if len(text) <= maxPromptChars {
		return text
	}
	// Back the cut up to a rune boundary so a multi-byte character is never
	// split into an invalid sequence.
	cut := maxPromptChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "\n\n[Content truncated due to length...]"
}

const analyzeSystem = "You are an experienced legal assistant helping a self-represented litigant understand a legal document. Be factual and precise. Respond only with JSON."

// AnalyzeDocument analyzes a legal document's text and returns a structured
// assessment of its issues, claims, and strengths.
func (s *AnalysisService) AnalyzeDocument(ctx context.Context, text, documentType, jurisdiction string) (*models.DocumentAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze the following legal document.

DOCUMENT TYPE: %s
JURISDICTION: %s

DOCUMENT TEXT:
%s

Return a JSON object with exactly these fields:
{
  "summary": "concise summary of the document",
  "keyIssues": ["legal issues raised"],
  "parties": {"plaintiff": "name or empty string", "defendant": "name or empty string"},
  "legalClaims": ["causes of action or claims asserted"],
  "citations": ["statutes, rules, and cases cited in the document"],
  "strengths": ["aspects that support the filer's position"],
  "weaknesses": ["gaps, risks, or missing elements"],
  "recommendations": ["concrete next steps for the filer"]
}

Use empty arrays for fields with nothing to report. Do not invent citations.`,
		documentType, jurisdiction, truncateForPrompt(text))

	return generateStructured[models.DocumentAnalysis](ctx, s, analyzeSystem, prompt, 0.2)
}

const complianceSystem = "You are an experienced civil procedure attorney evaluating a complaint drafted by a self-represented litigant. Apply the governing standard strictly but fairly. Respond only with JSON."

// CheckCompliance evaluates a complaint's pleaded claims against the
// plausibility pleading standard (Rule 8(a)(2), Twombly/Iqbal).
func (s *AnalysisService) CheckCompliance(ctx context.Context, text, jurisdiction string) (*models.ComplianceCheck, error) {
	prompt := fmt.Sprintf(`Evaluate whether the following complaint states claims that are plausible on their face under the pleading standard of Fed. R. Civ. P. 8(a)(2) as interpreted by Bell Atlantic Corp. v. Twombly, 550 U.S. 544 (2007), and Ashcroft v. Iqbal, 556 U.S. 662 (2009): factual allegations, accepted as true, must allow the court to draw the reasonable inference that the defendant is liable. Labels, conclusions, and formulaic recitations of elements do not suffice.

JURISDICTION: %s

COMPLAINT TEXT:
%s

Return a JSON object with exactly these fields:
{
  "overallAssessment": "pass" | "fail" | "needs_improvement",
  "score": 0-100,
  "findings": [
    {
      "claim": "the claim evaluated",
      "assessment": "how well it is pleaded",
      "reasoning": "why",
      "plausibility": "plausible" | "conceivable" | "implausible",
      "suggestions": ["how to strengthen the claim"]
    }
  ],
  "requiredElements": [
    {"element": "pleading element", "present": true or false, "explanation": "why"}
  ],
  "recommendations": ["overall improvements"]
}`,
		jurisdiction, truncateForPrompt(text))

	check, err := generateStructured[models.ComplianceCheck](ctx, s, complianceSystem, prompt, 0.2)
	if err != nil {
		return nil, err
	}

	switch check.OverallAssessment {
	case models.CompliancePass, models.ComplianceFail, models.ComplianceNeedsImprovement:
	default:
		return nil, fmt.Errorf("%w: unexpected assessment %q", ErrAnalysisUnavailable, check.OverallAssessment)
	}

	if check.Score < 0 {
		check.Score = 0
	} else if check.Score > 100 {
		check.Score = 100
	}

	return check, nil
}

const generateSystem = "You are an experienced attorney drafting a legal document for a self-represented litigant. Use formal legal language. Avoid flowery adjectives and hyperbole."

// GenerateDocumentRequest holds inputs for document generation.
type GenerateDocumentRequest struct {
	DocumentType string
	Jurisdiction string
	Plaintiff    string
	Defendant    string
	CaseInfo     string
	Instructions string
}

// GenerateDocument drafts a legal document as free text.
func (s *AnalysisService) GenerateDocument(ctx context.Context, req GenerateDocumentRequest) (string, error) {
	prompt := fmt.Sprintf(`Draft a %s for filing in %s.

PLAINTIFF: %s
DEFENDANT: %s

CASE INFORMATION:
%s

ADDITIONAL INSTRUCTIONS:
%s

FORMATTING CONVENTIONS:
- Court caption centered at the top
- Numbered paragraphs for factual allegations
- Separate headed sections for jurisdiction, parties, claims, and prayer for relief
- Signature block with a date line at the end
- Plain text only, no markdown

Write the complete document now:`,
		req.DocumentType, req.Jurisdiction, req.Plaintiff, req.Defendant,
		req.CaseInfo, req.Instructions)

	content, err := s.generator.GenerateText(ctx, generateSystem, prompt, 0.3)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: empty document", ErrAnalysisUnavailable)
	}

	return content, nil
}

const guidanceSystem = "You are a knowledgeable legal information assistant for self-represented litigants. Explain procedure and options clearly. You provide legal information, not legal advice, and you say so when appropriate. Respond only with JSON."

// GetGuidance answers a procedural or legal question, optionally grounded in
// the context of a specific case.
func (s *AnalysisService) GetGuidance(ctx context.Context, question, jurisdiction, caseContext string) (*models.Guidance, error) {
	var contextSection string
	if caseContext != "" {
		contextSection = "\nCASE CONTEXT:\n" + truncateForPrompt(caseContext) + "\n"
	}

	prompt := fmt.Sprintf(`Answer the following question from a self-represented litigant.

JURISDICTION: %s
%s
QUESTION:
%s

Return a JSON object with exactly these fields:
{
  "answer": "a clear, practical answer",
  "sources": ["statutes, rules, or resources supporting the answer"],
  "nextSteps": ["concrete actions the litigant can take"],
  "warnings": ["deadlines, risks, or situations requiring a licensed attorney"]
}`,
		jurisdiction, contextSection, question)

	return generateStructured[models.Guidance](ctx, s, guidanceSystem, prompt, 0.4)
}

const learnSystem = "You summarize drafting patterns from legal document reviews. Respond only with JSON."

// LearnFromDocument asks the model to summarize reusable drafting patterns
// from an analyzed document. Best-effort: the result is advisory and
// non-critical, so any failure returns nil rather than an error.
func (s *AnalysisService) LearnFromDocument(ctx context.Context, documentType, jurisdiction, text string, compliance *models.ComplianceCheck) *models.LearningPatterns {
	var complianceSection string
	if compliance != nil {
		complianceSection = fmt.Sprintf("\nCOMPLIANCE RESULT: %s (score %d)\n", compliance.OverallAssessment, compliance.Score)
	}

	prompt := fmt.Sprintf(`Summarize reusable drafting patterns from this document review.

DOCUMENT TYPE: %s
JURISDICTION: %s
%s
DOCUMENT TEXT:
%s

Return a JSON object with exactly these fields:
{
  "effectivePatterns": ["drafting patterns that worked well"],
  "issuesFound": ["recurring problems observed"],
  "jurisdictionSpecificRules": ["rules specific to this jurisdiction"],
  "documentTypeGuidelines": ["guidelines for this document type"],
  "improvementSuggestions": ["suggestions for future documents"]
}`,
		documentType, jurisdiction, complianceSection, truncateForPrompt(text))

	patterns, err := generateStructured[models.LearningPatterns](ctx, s, learnSystem, prompt, 0.3)
	if err != nil {
		s.logger.Warn("learning extraction skipped", zap.Error(err))
		return nil
	}

	return patterns
}
