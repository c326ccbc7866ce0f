package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AnalysisParties names the parties identified during document analysis
type AnalysisParties struct {
	Plaintiff string `json:"plaintiff"`
	Defendant string `json:"defendant"`
}

// DocumentAnalysis is the structured result of an AI document analysis
type DocumentAnalysis struct {
	Summary         string          `json:"summary"`
	KeyIssues       []string        `json:"keyIssues"`
	Parties         AnalysisParties `json:"parties"`
	LegalClaims     []string        `json:"legalClaims"`
	Citations       []string        `json:"citations"`
	Strengths       []string        `json:"strengths"`
	Weaknesses      []string        `json:"weaknesses"`
	Recommendations []string        `json:"recommendations"`
}

// Value implements driver.Valuer for JSONB
func (a DocumentAnalysis) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB
func (a *DocumentAnalysis) Scan(value interface{}) error {
	return scanJSONB(value, a)
}

// ComplianceAssessment is the overall outcome of a compliance check
type ComplianceAssessment string

const (
	CompliancePass             ComplianceAssessment = "pass"
	ComplianceFail             ComplianceAssessment = "fail"
	ComplianceNeedsImprovement ComplianceAssessment = "needs_improvement"
)

// ComplianceFinding is a per-claim finding from the pleading sufficiency check
type ComplianceFinding struct {
	Claim        string   `json:"claim"`
	Assessment   string   `json:"assessment"`
	Reasoning    string   `json:"reasoning"`
	Plausibility string   `json:"plausibility"`
	Suggestions  []string `json:"suggestions"`
}

// RequiredElement records whether a pleading element is present
type RequiredElement struct {
	Element     string `json:"element"`
	Present     bool   `json:"present"`
	Explanation string `json:"explanation"`
}

// ComplianceCheck is the structured result of a pleading sufficiency check
type ComplianceCheck struct {
	OverallAssessment ComplianceAssessment `json:"overallAssessment"`
	Score             int                  `json:"score"`
	Findings          []ComplianceFinding  `json:"findings"`
	RequiredElements  []RequiredElement    `json:"requiredElements"`
	Recommendations   []string             `json:"recommendations"`
}

// Value implements driver.Valuer for JSONB
func (c ComplianceCheck) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB
func (c *ComplianceCheck) Scan(value interface{}) error {
	return scanJSONB(value, c)
}

// Document represents a stored, text-extracted legal filing
type Document struct {
	ID              uuid.UUID         `json:"id"`
	CaseID          uuid.UUID         `json:"case_id"`
	Title           string            `json:"title"`
	DocumentType    string            `json:"document_type"`
	Content         string            `json:"content"`
	FileName        *string           `json:"file_name,omitempty"`
	FileSize        *int64            `json:"file_size,omitempty"`
	StoragePath     *string           `json:"storage_path,omitempty"`
	AIAnalysis      *DocumentAnalysis `json:"ai_analysis"`
	ComplianceCheck *ComplianceCheck  `json:"compliance_check"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// scanJSONB unmarshals a JSONB column into target, tolerating the
// value types pgx may hand back.
func scanJSONB(value interface{}, target interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, target)
}
