package model

import (
	"time"

	"github.com/google/uuid"
)

// Suggestion is the journal record of one resolved meal suggestion.
type Suggestion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	RequestID   string    `gorm:"size:64" json:"request_id,omitempty"`
	Ingredient  string    `gorm:"type:text;not null" json:"ingredient"`
	Restriction string    `gorm:"type:text;not null" json:"restriction"`
	Model       string    `gorm:"size:100" json:"model"`
	Outcome     string    `gorm:"size:32;not null;index" json:"outcome"`
	StatusCode  int       `gorm:"not null" json:"status_code"`
	Recipe      string    `gorm:"type:text" json:"recipe,omitempty"`
	Error       string    `gorm:"type:text" json:"error,omitempty"`
	DurationMS  int64     `json:"duration_ms"`
	ArchiveKey  string    `gorm:"size:255" json:"archive_key,omitempty"`
}
