package types

import "github.com/freshcheck/api-go/models"

// Counts is the raw material of the dashboard, read fresh on every request.
type Counts struct {
	Users      int64
	Guidelines int64
	Forms      int64
	Reports    map[models.ReportStatus]int64
	// Mine holds the caller's own reports by status; only filled for inspectors.
	Mine map[models.ReportStatus]int64
}

// DashboardStats is the role-shaped dashboard payload.
type DashboardStats struct {
	TotalReports     int64 `json:"totalReports"`
	SubmittedReports int64 `json:"submittedReports"`
	ApprovedReports  int64 `json:"approvedReports"`
	RejectedReports  int64 `json:"rejectedReports"`
	ComplianceScore  int   `json:"complianceScore"`

	MyReports          *int64 `json:"myReports,omitempty"`
	MyPendingReports   *int64 `json:"myPendingReports,omitempty"`
	MySubmittedReports *int64 `json:"mySubmittedReports,omitempty"`

	TotalUsers       *int64 `json:"totalUsers,omitempty"`
	TotalForms       *int64 `json:"totalForms,omitempty"`
	TotalGuidelines  *int64 `json:"totalGuidelines,omitempty"`
	PendingApprovals *int64 `json:"pendingApprovals,omitempty"`
}
