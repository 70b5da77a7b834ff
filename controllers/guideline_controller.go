package controllers

import (
	"net/http"
	"strings"

	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/stores"
	"github.com/freshcheck/api-go/utils"
	"github.com/gin-gonic/gin"
)

type GuidelineController struct {
	Guidelines stores.GuidelineStore
}

type GuidelineRequest struct {
	Title    string          `json:"title" binding:"required"`
	Content  string          `json:"content" binding:"required"`
	Severity models.Severity `json:"severity"`
}

func NewGuidelineController(guidelines stores.GuidelineStore) *GuidelineController {
	return &GuidelineController{Guidelines: guidelines}
}

func (gc *GuidelineController) ListGuidelines(c *gin.Context) {
	var severity *models.Severity
	if raw := c.Query("severity"); raw != "" {
		s := models.Severity(strings.ToUpper(raw))
		if !s.Valid() {
			badRequest(c, "Unknown severity")
			return
		}
		severity = &s
	}

	guidelines, err := gc.Guidelines.List(c.Request.Context(), severity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guidelines)
}

func (gc *GuidelineController) GetGuideline(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid guideline id")
		return
	}

	guideline, err := gc.Guidelines.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guideline)
}

func (gc *GuidelineController) CreateGuideline(c *gin.Context) {
	req, ok := bindGuideline(c)
	if !ok {
		return
	}

	guideline := models.Guideline{
		Title:       req.Title,
		Content:     req.Content,
		Severity:    req.Severity,
		UpdatedByID: utils.GetUser(c).UserID,
	}
	if err := gc.Guidelines.Create(c.Request.Context(), &guideline); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, guideline)
}

func (gc *GuidelineController) UpdateGuideline(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid guideline id")
		return
	}
	req, ok := bindGuideline(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	guideline, err := gc.Guidelines.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	guideline.Title = req.Title
	guideline.Content = req.Content
	guideline.Severity = req.Severity
	guideline.UpdatedByID = utils.GetUser(c).UserID

	if err := gc.Guidelines.Update(ctx, guideline); err != nil {
		respondError(c, err)
		return
	}

	// Re-read so the editor relation matches the new UpdatedByID.
	updated, err := gc.Guidelines.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (gc *GuidelineController) DeleteGuideline(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid guideline id")
		return
	}

	if err := gc.Guidelines.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Guideline deleted successfully")
}

// bindGuideline reads and normalizes a guideline body; severity defaults to MINOR.
func bindGuideline(c *gin.Context) (*GuidelineRequest, bool) {
	var req GuidelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Title and content are required")
		return nil, false
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		badRequest(c, "Title and content are required")
		return nil, false
	}
	if req.Severity == "" {
		req.Severity = models.SeverityMinor
	}
	req.Severity = models.Severity(strings.ToUpper(string(req.Severity)))
	if !req.Severity.Valid() {
		badRequest(c, "Unknown severity")
		return nil, false
	}
	return &req, true
}
