package services

import (
	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/types"
)

// VisibilityFor maps a caller to the reports they may read. Inspectors see their
// own reports, kitchen managers and hotel management see approved reports only,
// admins see everything. Unknown roles see nothing.
func VisibilityFor(role models.Role, userID uint) (types.ReportScope, bool) {
	switch role {
	case models.RoleAdmin:
		return types.ReportScope{}, true
	case models.RoleInspector:
		id := userID
		return types.ReportScope{InspectorID: &id}, true
	case models.RoleKitchenManager, models.RoleHotelManagement:
		approved := models.StatusApproved
		return types.ReportScope{Status: &approved}, true
	default:
		return types.ReportScope{}, false
	}
}
