package controllers

import (
	"net/http"

	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/services"
	"github.com/freshcheck/api-go/stores"
	"github.com/freshcheck/api-go/utils"
	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Stats stores.StatsStore
}

func NewStatsController(stats stores.StatsStore) *StatsController {
	return &StatsController{Stats: stats}
}

// GetDashboardStats recomputes the counts on every call.
func (sc *StatsController) GetDashboardStats(c *gin.Context) {
	user := utils.GetUser(c)

	var inspectorID uint
	if user.Role == models.RoleInspector {
		inspectorID = user.UserID
	}

	counts, err := sc.Stats.Counts(c.Request.Context(), inspectorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.BuildDashboard(user.Role, counts))
}
