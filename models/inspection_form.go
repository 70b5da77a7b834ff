package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// QuestionType is the answer widget a question expects.
type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionNumber   QuestionType = "number"
	QuestionCheckbox QuestionType = "checkbox"
)

// Question is one checkpoint on an inspection form.
type Question struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Type     QuestionType `json:"type"`
	Unit     string       `json:"unit,omitempty"`
	Required bool         `json:"required"`
}

// InspectionForm owns its question set as a single JSON document; edits replace
// the whole set.
type InspectionForm struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Title       string         `gorm:"not null" json:"title"`
	Version     int            `gorm:"not null;default:1" json:"version"`
	Questions   datatypes.JSON `gorm:"type:jsonb;not null" json:"questions"`
	IsActive    bool           `gorm:"not null;default:true;index" json:"isActive"`
	CreatedByID uint           `gorm:"not null" json:"createdById"`
	CreatedBy   *User          `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
}

// QuestionList decodes the stored question set.
func (f *InspectionForm) QuestionList() ([]Question, error) {
	if len(f.Questions) == 0 {
		return []Question{}, nil
	}
	var questions []Question
	if err := json.Unmarshal(f.Questions, &questions); err != nil {
		return nil, fmt.Errorf("decode questions of form %d: %w", f.ID, err)
	}
	return questions, nil
}

// SetQuestions replaces the stored question set.
func (f *InspectionForm) SetQuestions(questions []Question) error {
	if questions == nil {
		questions = []Question{}
	}
	raw, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	f.Questions = datatypes.JSON(raw)
	return nil
}

// ValidateQuestions checks that every question has an id, text and a known type,
// and that ids are unique within the set.
func ValidateQuestions(questions []Question) error {
	seen := make(map[string]struct{}, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			return fmt.Errorf("question %d is missing an id", i+1)
		}
		if q.Text == "" {
			return fmt.Errorf("question %q is missing text", q.ID)
		}
		switch q.Type {
		case QuestionText, QuestionNumber, QuestionCheckbox:
		default:
			return fmt.Errorf("question %q has unknown type %q", q.ID, q.Type)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}
