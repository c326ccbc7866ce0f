package models

import (
	"time"

	"github.com/google/uuid"
)

// CaseStatus represents the lifecycle status of a case
type CaseStatus string

const (
	CaseStatusActive  CaseStatus = "active"
	CaseStatusPending CaseStatus = "pending"
	CaseStatusClosed  CaseStatus = "closed"
)

// Case represents a legal matter owned by a pro-se litigant
type Case struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	CaseNumber   *string    `json:"case_number,omitempty"`
	Plaintiff    string     `json:"plaintiff"`
	Defendant    string     `json:"defendant"`
	Jurisdiction string     `json:"jurisdiction"`
	Status       CaseStatus `json:"status"`
	Description  *string    `json:"description,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
