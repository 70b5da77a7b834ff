// Package services holds the domain rules of FreshCheck: the report workflow,
// read-side visibility, dashboard shaping and report summaries.
package services

import (
	"strings"

	"github.com/freshcheck/api-go/apperrors"
	"github.com/freshcheck/api-go/models"
)

// Action is a workflow operation that changes a report's status.
type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Rule is the guard of one action.
type Rule struct {
	From models.ReportStatus
	To   models.ReportStatus
	// Roles may perform the action.
	Roles []models.Role
	// OwnerOnly restricts the action to the report's inspector.
	OwnerOnly bool
	// RemarksRequired rejects blank remarks.
	RemarksRequired bool
}

var rules = map[Action]Rule{
	ActionSubmit: {
		From:      models.StatusDraft,
		To:        models.StatusSubmitted,
		Roles:     []models.Role{models.RoleInspector},
		OwnerOnly: true,
	},
	ActionApprove: {
		From:  models.StatusSubmitted,
		To:    models.StatusApproved,
		Roles: []models.Role{models.RoleAdmin},
	},
	ActionReject: {
		From:            models.StatusSubmitted,
		To:              models.StatusRejected,
		Roles:           []models.Role{models.RoleAdmin},
		RemarksRequired: true,
	},
}

// RuleFor returns the guard of action.
func RuleFor(action Action) (Rule, bool) {
	r, ok := rules[action]
	return r, ok
}

// CanTransition reports whether the workflow has an edge from -> to.
func CanTransition(from, to models.ReportStatus) bool {
	for _, r := range rules {
		if r.From == from && r.To == to {
			return true
		}
	}
	return false
}

// CheckAction validates an action against the caller and the report's current
// state. Ownership is checked before state so a stranger never learns the status.
func CheckAction(action Action, role models.Role, callerID uint, report *models.InspectionReport, remarks string) error {
	rule, ok := rules[action]
	if !ok {
		return apperrors.ErrInvalidTransition
	}
	if !roleIn(role, rule.Roles) {
		return apperrors.ErrForbidden
	}
	if rule.OwnerOnly && report.InspectorID != callerID {
		return apperrors.ErrForbidden
	}
	if rule.RemarksRequired && isBlank(remarks) {
		return apperrors.Validation("Remarks are required")
	}
	if report.Status != rule.From {
		return apperrors.New(apperrors.KindInvalidTransition,
			"Cannot "+string(action)+" a report in status "+string(report.Status))
	}
	return nil
}

// CheckDraftEdit guards data/remarks edits: only the owner, only while DRAFT.
func CheckDraftEdit(callerID uint, report *models.InspectionReport) error {
	if report.InspectorID != callerID {
		return apperrors.ErrForbidden
	}
	if report.Status != models.StatusDraft {
		return apperrors.New(apperrors.KindInvalidTransition, "Only draft reports can be edited")
	}
	return nil
}

func roleIn(role models.Role, roles []models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
