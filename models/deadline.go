package models

import (
	"time"

	"github.com/google/uuid"
)

// Deadline represents a dated obligation tied to a case
type Deadline struct {
	ID           uuid.UUID `json:"id"`
	CaseID       uuid.UUID `json:"case_id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	DueDate      time.Time `json:"due_date"`
	DeadlineType string    `json:"deadline_type"`
	Completed    bool      `json:"completed"`
	ReminderSent bool      `json:"reminder_sent"`
	CreatedAt    time.Time `json:"created_at"`
}
