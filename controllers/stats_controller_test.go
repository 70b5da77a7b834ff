package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/freshcheck/api-go/mocks"
	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	counts := types.Counts{
		Users: 4,
		Reports: map[models.ReportStatus]int64{
			models.StatusSubmitted: 2,
			models.StatusApproved:  3,
			models.StatusRejected:  1,
		},
		Mine: map[models.ReportStatus]int64{models.StatusDraft: 1},
	}

	t.Run("inspector counts own reports", func(t *testing.T) {
		stats := new(mocks.StatsStore)
		sc := NewStatsController(stats)
		ctx, w := newTestContext(t, http.MethodGet, "/api/stats/dashboard", "", 7, models.RoleInspector, "")
		stats.On("Counts", mock.Anything, uint(7)).Return(counts, nil)

		sc.GetDashboardStats(ctx)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, float64(50), body["complianceScore"])
		assert.Equal(t, float64(1), body["myPendingReports"])
		assert.NotContains(t, body, "pendingApprovals")
		assert.NotContains(t, body, "totalUsers")
	})

	t.Run("admin gets pending approvals", func(t *testing.T) {
		stats := new(mocks.StatsStore)
		sc := NewStatsController(stats)
		ctx, w := newTestContext(t, http.MethodGet, "/api/stats/dashboard", "", 1, models.RoleAdmin, "")
		stats.On("Counts", mock.Anything, uint(0)).Return(counts, nil)

		sc.GetDashboardStats(ctx)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, float64(2), body["pendingApprovals"])
		assert.Equal(t, float64(4), body["totalUsers"])
		assert.NotContains(t, body, "myReports")
	})
}
