package models

import (
	"time"
)

// Severity grades how serious a guideline breach is.
type Severity string

const (
	SeverityMinor    Severity = "MINOR"
	SeverityMajor    Severity = "MAJOR"
	SeverityCritical Severity = "CRITICAL"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityMinor, SeverityMajor, SeverityCritical:
		return true
	}
	return false
}

type Guideline struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Severity    Severity  `gorm:"type:varchar(16);not null;default:'MINOR';index" json:"severity"`
	UpdatedByID uint      `gorm:"not null" json:"updatedById"`
	UpdatedBy   *User     `gorm:"foreignKey:UpdatedByID" json:"updatedBy,omitempty"`
}
