package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ChatRole identifies the author of a chat message
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// SourceList is a list of citation sources attached to an assistant turn
type SourceList []string

// Value implements driver.Valuer for JSONB
func (s SourceList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB
func (s *SourceList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	return scanJSONB(value, s)
}

// MessageMetadata holds free-form metadata for a chat message
type MessageMetadata map[string]interface{}

// Value implements driver.Valuer for JSONB
func (m MessageMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB
func (m *MessageMetadata) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	return scanJSONB(value, m)
}

// ChatMessage represents one turn in a guidance conversation.
// A nil CaseID means the message belongs to the general thread.
type ChatMessage struct {
	ID        uuid.UUID       `json:"id"`
	CaseID    *uuid.UUID      `json:"case_id,omitempty"`
	Role      ChatRole        `json:"role"`
	Content   string          `json:"content"`
	Sources   SourceList      `json:"sources,omitempty"`
	Metadata  MessageMetadata `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Guidance is the structured answer returned by the guidance model
type Guidance struct {
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources"`
	NextSteps []string `json:"nextSteps"`
	Warnings  []string `json:"warnings"`
}
