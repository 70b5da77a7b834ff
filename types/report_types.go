package types

import (
	"time"

	"github.com/freshcheck/api-go/models"
)

// ReportScope narrows report queries to what a caller may see. A nil field does
// not constrain the query.
type ReportScope struct {
	InspectorID *uint
	Status      *models.ReportStatus
}

// Allows reports whether r falls inside the scope.
func (s ReportScope) Allows(r *models.InspectionReport) bool {
	if s.InspectorID != nil && r.InspectorID != *s.InspectorID {
		return false
	}
	if s.Status != nil && r.Status != *s.Status {
		return false
	}
	return true
}

// ReportFilter is a list query: the caller's scope intersected with optional
// request narrowing.
type ReportFilter struct {
	Scope  ReportScope
	Status *models.ReportStatus
	FormID *uint
}

// DraftChanges carries the mutable fields of a draft report. Nil fields are left
// untouched.
type DraftChanges struct {
	Data    *models.Answers
	Remarks *string
}

// Transition describes one conditional status change. The store applies it only
// when the report is currently in From (and owned by OwnerID when set).
type Transition struct {
	ReportID uint
	From     models.ReportStatus
	To       models.ReportStatus
	ActorID  uint
	OwnerID  *uint
	Remarks  *string
	At       time.Time
}
