package services

import (
	"math"

	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/types"
)

// ComplianceScore is round(100 * approved / (submitted + approved + rejected)),
// or 0 when nothing has been submitted.
func ComplianceScore(submitted, approved, rejected int64) int {
	total := submitted + approved + rejected
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(approved) / float64(total) * 100))
}

// DashboardShape lists the role-specific blocks of the dashboard.
type DashboardShape struct {
	InspectorCounts bool
	AdminCounts     bool
}

// ShapeFor returns the dashboard extras a role receives.
func ShapeFor(role models.Role) DashboardShape {
	switch role {
	case models.RoleInspector:
		return DashboardShape{InspectorCounts: true}
	case models.RoleAdmin:
		return DashboardShape{AdminCounts: true}
	default:
		return DashboardShape{}
	}
}

// BuildDashboard derives the dashboard payload for role from raw counts.
func BuildDashboard(role models.Role, c types.Counts) *types.DashboardStats {
	var total int64
	for _, n := range c.Reports {
		total += n
	}
	submitted := c.Reports[models.StatusSubmitted]
	approved := c.Reports[models.StatusApproved]
	rejected := c.Reports[models.StatusRejected]

	stats := &types.DashboardStats{
		TotalReports:     total,
		SubmittedReports: submitted,
		ApprovedReports:  approved,
		RejectedReports:  rejected,
		ComplianceScore:  ComplianceScore(submitted, approved, rejected),
	}

	shape := ShapeFor(role)
	if shape.InspectorCounts {
		var mine int64
		for _, n := range c.Mine {
			mine += n
		}
		drafts := c.Mine[models.StatusDraft]
		mySubmitted := c.Mine[models.StatusSubmitted]
		stats.MyReports = &mine
		stats.MyPendingReports = &drafts
		stats.MySubmittedReports = &mySubmitted
	}
	if shape.AdminCounts {
		users, forms, guidelines, pending := c.Users, c.Forms, c.Guidelines, submitted
		stats.TotalUsers = &users
		stats.TotalForms = &forms
		stats.TotalGuidelines = &guidelines
		stats.PendingApprovals = &pending
	}
	return stats
}
