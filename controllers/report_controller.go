package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/freshcheck/api-go/apperrors"
	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/services"
	"github.com/freshcheck/api-go/stores"
	"github.com/freshcheck/api-go/types"
	"github.com/freshcheck/api-go/utils"
	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Reports    stores.ReportStore
	Forms      stores.FormStore
	Summarizer services.Summarizer
}

type CreateReportRequest struct {
	FormID  uint           `json:"formId" binding:"required"`
	Data    models.Answers `json:"data"`
	Remarks string         `json:"remarks"`
}

type UpdateReportRequest struct {
	Data    *models.Answers `json:"data"`
	Remarks *string         `json:"remarks"`
}

type ReviewRequest struct {
	Remarks *string `json:"remarks"`
}

func NewReportController(reports stores.ReportStore, forms stores.FormStore, summarizer services.Summarizer) *ReportController {
	return &ReportController{Reports: reports, Forms: forms, Summarizer: summarizer}
}

// ListReports returns the reports visible to the caller, newest first, optionally
// narrowed by ?status= and ?formId=.
func (rc *ReportController) ListReports(c *gin.Context) {
	scope, ok := rc.scopeFor(c)
	if !ok {
		return
	}

	filter := types.ReportFilter{Scope: scope}
	if raw := c.Query("status"); raw != "" {
		status := models.ReportStatus(strings.ToUpper(raw))
		if !status.Valid() {
			badRequest(c, "Unknown status")
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("formId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			badRequest(c, "Invalid form id")
			return
		}
		formID := uint(id)
		filter.FormID = &formID
	}

	reports, err := rc.Reports.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (rc *ReportController) GetReport(c *gin.Context) {
	report, ok := rc.visibleReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

func (rc *ReportController) GetReportHistory(c *gin.Context) {
	report, ok := rc.visibleReport(c)
	if !ok {
		return
	}

	history, err := rc.Reports.History(c.Request.Context(), report.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// CreateReport opens a DRAFT for the caller against an active form.
func (rc *ReportController) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Form id is required")
		return
	}

	ctx := c.Request.Context()
	form, err := rc.Forms.GetByID(ctx, req.FormID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !form.IsActive {
		respondError(c, apperrors.NotFound("Form"))
		return
	}

	data, err := models.EncodeAnswers(req.Data)
	if err != nil {
		badRequest(c, "Answers could not be encoded")
		return
	}

	report := models.InspectionReport{
		FormID:      form.ID,
		InspectorID: utils.GetUser(c).UserID,
		Data:        data,
		Remarks:     req.Remarks,
		Status:      models.StatusDraft,
	}
	if err := rc.Reports.Create(ctx, &report); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// UpdateReport edits answers and remarks of the caller's own draft.
func (rc *ReportController) UpdateReport(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid report id")
		return
	}

	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	user := utils.GetUser(c)
	report, err := rc.Reports.Get(ctx, id, types.ReportScope{})
	if err != nil {
		respondError(c, err)
		return
	}
	if err := services.CheckDraftEdit(user.UserID, report); err != nil {
		respondError(c, err)
		return
	}

	updated, err := rc.Reports.UpdateDraft(ctx, id, user.UserID, types.DraftChanges{
		Data:    req.Data,
		Remarks: req.Remarks,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SubmitReport moves the caller's draft to SUBMITTED and attaches a summary.
func (rc *ReportController) SubmitReport(c *gin.Context) {
	report, ok := rc.transition(c, services.ActionSubmit, nil)
	if !ok {
		return
	}
	rc.attachSummary(c, report)
	c.JSON(http.StatusOK, report)
}

func (rc *ReportController) ApproveReport(c *gin.Context) {
	var req ReviewRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	report, ok := rc.transition(c, services.ActionApprove, req.Remarks)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

func (rc *ReportController) RejectReport(c *gin.Context) {
	var req ReviewRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	report, ok := rc.transition(c, services.ActionReject, req.Remarks)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// RefreshSummary regenerates the summary of any report.
func (rc *ReportController) RefreshSummary(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid report id")
		return
	}

	ctx := c.Request.Context()
	report, err := rc.Reports.Get(ctx, id, types.ReportScope{})
	if err != nil {
		respondError(c, err)
		return
	}

	answers, err := report.DecodeAnswers()
	if err != nil {
		respondError(c, apperrors.Internal(err))
		return
	}
	summary := rc.Summarizer.Summarize(ctx, answers)
	if err := rc.Reports.SetSummary(ctx, report.ID, summary); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// transition runs one workflow action. The report is read unscoped so that a
// stranger gets forbidden rather than not-found; the store then re-checks the
// status and ownership atomically.
func (rc *ReportController) transition(c *gin.Context, action services.Action, remarks *string) (*models.InspectionReport, bool) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid report id")
		return nil, false
	}

	ctx := c.Request.Context()
	user := utils.GetUser(c)
	report, err := rc.Reports.Get(ctx, id, types.ReportScope{})
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	var remarksText string
	if remarks != nil {
		remarksText = *remarks
	}
	if err := services.CheckAction(action, user.Role, user.UserID, report, remarksText); err != nil {
		respondError(c, err)
		return nil, false
	}

	rule, _ := services.RuleFor(action)
	t := types.Transition{
		ReportID: id,
		From:     rule.From,
		To:       rule.To,
		ActorID:  user.UserID,
		At:       time.Now(),
	}
	if rule.OwnerOnly {
		owner := user.UserID
		t.OwnerID = &owner
	}
	// A present field overwrites the remarks, even when it is blank.
	if remarks != nil {
		trimmed := strings.TrimSpace(*remarks)
		t.Remarks = &trimmed
	}

	updated, err := rc.Reports.Transition(ctx, t)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return updated, true
}

// attachSummary is best-effort: the submit has already been committed.
func (rc *ReportController) attachSummary(c *gin.Context, report *models.InspectionReport) {
	if rc.Summarizer == nil {
		return
	}
	answers, err := report.DecodeAnswers()
	if err != nil {
		log.Printf("Report %d: answers unreadable, summary skipped: %v", report.ID, err)
		return
	}

	ctx := c.Request.Context()
	summary := rc.Summarizer.Summarize(ctx, answers)
	if err := rc.Reports.SetSummary(ctx, report.ID, summary); err != nil {
		log.Printf("Report %d: failed to store summary: %v", report.ID, err)
		return
	}
	text := summary.Summary
	evaluation := string(summary.Evaluation)
	report.AISummary = &text
	report.AIEvaluation = &evaluation
}

func (rc *ReportController) scopeFor(c *gin.Context) (types.ReportScope, bool) {
	user := utils.GetUser(c)
	scope, ok := services.VisibilityFor(user.Role, user.UserID)
	if !ok {
		respondError(c, apperrors.ErrForbidden)
		return types.ReportScope{}, false
	}
	return scope, true
}

func (rc *ReportController) visibleReport(c *gin.Context) (*models.InspectionReport, bool) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid report id")
		return nil, false
	}
	scope, ok := rc.scopeFor(c)
	if !ok {
		return nil, false
	}

	report, err := rc.Reports.Get(c.Request.Context(), id, scope)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return report, true
}

// bindOptionalJSON binds a body that may be absent entirely.
func bindOptionalJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err.Error())
		return false
	}
	return true
}
