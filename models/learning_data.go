package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// LearningPatterns is the advisory pattern summary the model derives
// from a past document analysis
type LearningPatterns struct {
	EffectivePatterns         []string `json:"effectivePatterns"`
	IssuesFound               []string `json:"issuesFound"`
	JurisdictionSpecificRules []string `json:"jurisdictionSpecificRules"`
	DocumentTypeGuidelines    []string `json:"documentTypeGuidelines"`
	ImprovementSuggestions    []string `json:"improvementSuggestions"`
}

// Value implements driver.Valuer for JSONB
func (p LearningPatterns) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB
func (p *LearningPatterns) Scan(value interface{}) error {
	return scanJSONB(value, p)
}

// SuccessMetrics holds optional outcome metrics for a learning entry
type SuccessMetrics map[string]interface{}

// Value implements driver.Valuer for JSONB
func (m SuccessMetrics) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB
func (m *SuccessMetrics) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	return scanJSONB(value, m)
}

// LearningData is an append-only record of model-derived drafting patterns.
// Entries are written after compliance checks and never feed back into the
// analysis pipeline; ListByCategory is the read extension point.
type LearningData struct {
	ID             uuid.UUID        `json:"id"`
	Category       string           `json:"category"`
	Jurisdiction   *string          `json:"jurisdiction,omitempty"`
	DocumentType   *string          `json:"document_type,omitempty"`
	Patterns       LearningPatterns `json:"patterns"`
	SuccessMetrics SuccessMetrics   `json:"success_metrics,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
