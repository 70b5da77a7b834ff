package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ReportStatus is a state of the inspection report workflow.
type ReportStatus string

const (
	StatusDraft     ReportStatus = "DRAFT"
	StatusSubmitted ReportStatus = "SUBMITTED"
	StatusApproved  ReportStatus = "APPROVED"
	StatusRejected  ReportStatus = "REJECTED"
)

// Valid reports whether s is a known status.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s ReportStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Answers maps question ids to the inspector's answers.
type Answers map[string]interface{}

type InspectionReport struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	FormID       uint            `gorm:"not null;index" json:"formId"`
	Form         *InspectionForm `gorm:"foreignKey:FormID" json:"form,omitempty"`
	InspectorID  uint            `gorm:"not null;index" json:"inspectorId"`
	Inspector    *User           `gorm:"foreignKey:InspectorID" json:"inspector,omitempty"`
	Data         datatypes.JSON  `gorm:"type:jsonb;not null" json:"data"`
	Remarks      string          `gorm:"type:text" json:"remarks"`
	Status       ReportStatus    `gorm:"type:varchar(16);not null;default:'DRAFT';index" json:"status"`
	SubmittedAt  *time.Time      `json:"submittedAt"`
	ReviewedByID *uint           `json:"reviewedById"`
	ReviewedBy   *User           `gorm:"foreignKey:ReviewedByID" json:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time      `json:"reviewedAt"`
	AISummary    *string         `gorm:"type:text" json:"aiSummary"`
	AIEvaluation *string         `gorm:"type:varchar(16)" json:"aiEvaluation"`
	Attachments  pq.StringArray  `gorm:"type:text[]" json:"attachments"`
}

// DecodeAnswers decodes the stored answer map. An empty column yields an empty map.
func (r *InspectionReport) DecodeAnswers() (Answers, error) {
	answers := Answers{}
	if len(r.Data) == 0 {
		return answers, nil
	}
	if err := json.Unmarshal(r.Data, &answers); err != nil {
		return nil, fmt.Errorf("decode answers of report %d: %w", r.ID, err)
	}
	return answers, nil
}

// EncodeAnswers serializes answers for storage. A nil map is stored as {}.
func EncodeAnswers(answers Answers) (datatypes.JSON, error) {
	if answers == nil {
		answers = Answers{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
