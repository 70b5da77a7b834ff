package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/freshcheck/api-go/apperrors"
	"github.com/freshcheck/api-go/mocks"
	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReportController() (*ReportController, *mocks.ReportStore, *mocks.FormStore, *mocks.Summarizer) {
	reports := new(mocks.ReportStore)
	forms := new(mocks.FormStore)
	summarizer := new(mocks.Summarizer)
	return NewReportController(reports, forms, summarizer), reports, forms, summarizer
}

func decodeMessage(t *testing.T, body []byte) string {
	var resp MessageResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Message
}

func TestListReportsAppliesVisibility(t *testing.T) {
	approved := models.StatusApproved
	inspector := uint(7)

	tests := []struct {
		name   string
		role   models.Role
		query  string
		filter types.ReportFilter
	}{
		{"admin sees all", models.RoleAdmin, "", types.ReportFilter{}},
		{"inspector sees own", models.RoleInspector, "", types.ReportFilter{Scope: types.ReportScope{InspectorID: &inspector}}},
		{"kitchen manager sees approved", models.RoleKitchenManager, "", types.ReportFilter{Scope: types.ReportScope{Status: &approved}}},
		{"hotel management sees approved", models.RoleHotelManagement, "", types.ReportFilter{Scope: types.ReportScope{Status: &approved}}},
		{"admin narrows by status", models.RoleAdmin, "?status=approved", types.ReportFilter{Status: &approved}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, reports, _, _ := newReportController()
			ctx, w := newTestContext(t, http.MethodGet, "/api/reports"+tt.query, "", 7, tt.role, "")
			reports.On("List", mock.Anything, tt.filter).Return([]models.InspectionReport{{ID: 1}}, nil)

			rc.ListReports(ctx)

			assert.Equal(t, http.StatusOK, w.Code)
			reports.AssertExpectations(t)
		})
	}
}

func TestListReportsRejectsBadStatus(t *testing.T) {
	rc, reports, _, _ := newReportController()
	ctx, w := newTestContext(t, http.MethodGet, "/api/reports?status=LOST", "", 1, models.RoleAdmin, "")

	rc.ListReports(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	reports.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGetReportHiddenIsNotFound(t *testing.T) {
	rc, reports, _, _ := newReportController()
	approved := models.StatusApproved
	ctx, w := newTestContext(t, http.MethodGet, "/api/reports/3", "", 9, models.RoleKitchenManager, "3")
	reports.On("Get", mock.Anything, uint(3), types.ReportScope{Status: &approved}).Return(nil, apperrors.NotFound("Report"))

	rc.GetReport(ctx)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Report not found", decodeMessage(t, w.Body.Bytes()))
}

func TestCreateReport(t *testing.T) {
	rc, reports, forms, _ := newReportController()
	ctx, w := newTestContext(t, http.MethodPost, "/api/reports", `{"formId":2,"data":{"q1":true},"remarks":"ok"}`, 7, models.RoleInspector, "")

	forms.On("GetByID", mock.Anything, uint(2)).Return(&models.InspectionForm{ID: 2, IsActive: true}, nil)
	reports.On("Create", mock.Anything, mock.MatchedBy(func(r *models.InspectionReport) bool {
		return r.FormID == 2 && r.InspectorID == 7 && r.Status == models.StatusDraft &&
			string(r.Data) == `{"q1":true}` && r.Remarks == "ok"
	})).Return(nil)

	rc.CreateReport(ctx)

	assert.Equal(t, http.StatusCreated, w.Code)
	reports.AssertExpectations(t)
}

func TestCreateReportEmptyDataStoredAsObject(t *testing.T) {
	rc, reports, forms, _ := newReportController()
	ctx, w := newTestContext(t, http.MethodPost, "/api/reports", `{"formId":2}`, 7, models.RoleInspector, "")

	forms.On("GetByID", mock.Anything, uint(2)).Return(&models.InspectionForm{ID: 2, IsActive: true}, nil)
	reports.On("Create", mock.Anything, mock.MatchedBy(func(r *models.InspectionReport) bool {
		return string(r.Data) == `{}`
	})).Return(nil)

	rc.CreateReport(ctx)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateReportInactiveForm(t *testing.T) {
	rc, reports, forms, _ := newReportController()
	ctx, w := newTestContext(t, http.MethodPost, "/api/reports", `{"formId":2}`, 7, models.RoleInspector, "")
	forms.On("GetByID", mock.Anything, uint(2)).Return(&models.InspectionForm{ID: 2, IsActive: false}, nil)

	rc.CreateReport(ctx)

	assert.Equal(t, http.StatusNotFound, w.Code)
	reports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateReportByNonOwner(t *testing.T) {
	rc, reports, _, _ := newReportController()
	ctx, w := newTestContext(t, http.MethodPut, "/api/reports/1", `{"remarks":"mine now"}`, 8, models.RoleInspector, "1")
	reports.On("Get", mock.Anything, uint(1), types.ReportScope{}).
		Return(&models.InspectionReport{ID: 1, InspectorID: 7, Status: models.StatusDraft}, nil)

	rc.UpdateReport(ctx)

	assert.Equal(t, http.StatusForbidden, w.Code)
	reports.AssertNotCalled(t, "UpdateDraft", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateReportAfterSubmit(t *testing.T) {
	rc, reports, _, _ := newReportController()
	ctx, w := newTestContext(t, http.MethodPut, "/api/reports/1", `{"remarks":"late"}`, 7, models.RoleInspector, "1")
	reports.On("Get", mock.Anything, uint(1), types.ReportScope{}).
		Return(&models.InspectionReport{ID: 1, InspectorID: 7, Status: models.StatusSubmitted}, nil)

	rc.UpdateReport(ctx)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateReportDraft(t *testing.T) {
	rc, reports, _, _ := newReportController()
	ctx, w := newTestContext(t, http.MethodPut, "/api/reports/1", `{"data":{"q1":"clean"}}`, 7, models.RoleInspector, "1")
	reports.On("Get", mock.Anything, uint(1), types.ReportScope{}).
		Return(&models.InspectionReport{ID: 1, InspectorID: 7, Status: models.StatusDraft}, nil)
	reports.On("UpdateDraft", mock.Anything, uint(1), uint(7), mock.MatchedBy(func(c types.DraftChanges) bool {
		return c.Data != nil && (*c.Data)["q1"] == "clean" && c.Remarks == nil
	})).Return(&models.InspectionReport{ID: 1}, nil)

	rc.UpdateReport(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	reports.AssertExpectations(t)
}

func TestSubmitReport(t *testing.T) {
	rc, reports, _, summarizer := newReportController()
	ctx, w := newTestContext(t, http.MethodPut, "/api/reports/1/submit", "", 7, models.RoleInspector, "1")

	draft := &models.InspectionReport{ID: 1, InspectorID: 7, Status: models.StatusDraft}
	submitted := &models.InspectionReport{ID: 1, InspectorID: 7, Status: models.StatusSubmitted, Data: []byte(`{"a":true}`)}
	summary := types.Summary{Summary: "fine", Evaluation: types.EvaluationGood}

	reports.On("Get", mock.Anything, uint(1), types.ReportScope{}).Return(draft, nil)
	reports.On("Transition", mock.Anything, mock.MatchedBy(func(tr types.Transition) bool {
		return tr.ReportID == 1 && tr.From == models.StatusDraft && tr.To == models.StatusSubmitted &&
			tr.OwnerID != nil && *tr.OwnerID == 7 && tr.ActorID == 7
	})).Return(submitted, nil)
	summarizer.On("Summarize", mock.Anything, models.Answers{"a": true}).Return(summary)
	reports.On("SetSummary", mock.Anything, uint(1), summary).Return(nil)

	rc.SubmitReport(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	var got models.InspectionReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.StatusSubmitted, got.Status)
	require.NotNil(t, got.AISummary)
	assert.Equal(t, "fine", *got.AISummary)
	reports.AssertExpectations(t)
	summarizer.AssertExpectations(t)
}

func TestSubmitReportSummaryFailureIsNotFatal(t *testing.T) {
	rc, reports, _, summarizer := newReportController()
	ctx, w := newTestContext(t, http.MethodPut, "/api/reports/1/submit", "", 7, models.RoleInspector, "1")

	reports.On("Get", mock.Anything, uint(1), types.ReportScope{}).
		Return(&models.InspectionReport{ID: 1, InspectorID: 7, Status: models.StatusDraft}, nil)
	reports.On("Transition", mock.Anything, mock.Anything).
		Return(&models.InspectionReport{ID: 1, InspectorID: 7, Status: models.StatusSubmitted}, nil)
	summarizer.On("Summarize", mock.Anything, mock.Anything).Return(types.Summary{Summary: "s", Evaluation: types.EvaluationPoor})
	reports.On("SetSummary", mock.Anything, uint(1), mock.Anything).Return(apperrors.Internal(assert.AnError))

	rc.SubmitReport(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitReportByNonOwner(t *testing.T) {
	rc, reports, _, summarizer := newReportController()
	ctx, w := newTestContext(t, http.MethodPut, "/api/reports/1/submit", "", 8, models.RoleInspector, "1")
	reports.On("Get", mock.Anything, uint(1), types.ReportScope{}).
		Return(&models.InspectionReport{ID: 1, InspectorID: 7, Status: models.StatusDraft}, nil)

	rc.SubmitReport(ctx)

	assert.Equal(t, http.StatusForbidden, w.Code)
	reports.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything)
	summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestSubmitReportLostRace(t *testing.T) {
	rc, reports, _, _ := newReportController()
	ctx, w := newTestContext(t, http.MethodPut, "/api/reports/1/submit", "", 7, models.RoleInspector, "1")
	reports.On("Get", mock.Anything, uint(1), types.ReportScope{}).
		Return(&models.InspectionReport{ID: 1, InspectorID: 7, Status: models.StatusDraft}, nil)
	reports.On("Transition", mock.Anything, mock.Anything).
		Return(nil, apperrors.New(apperrors.KindInvalidTransition, "Cannot move to SUBMITTED a report in status SUBMITTED"))

	rc.SubmitReport(ctx)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestApproveReport(t *testing.T) {
	rc, reports, _, _ := newReportController()
	ctx, w := newTestContext(t, http.MethodPut, "/api/reports/1/approve", `{"remarks":" Good job "}`, 1, models.RoleAdmin, "1")

	reports.On("Get", mock.Anything, uint(1), types.ReportScope{}).
		Return(&models.InspectionReport{ID: 1, InspectorID: 7, Status: models.StatusSubmitted}, nil)
	reports.On("Transition", mock.Anything, mock.MatchedBy(func(tr types.Transition) bool {
		return tr.To == models.StatusApproved && tr.OwnerID == nil && tr.ActorID == 1 &&
			tr.Remarks != nil && *tr.Remarks == "Good job"
	})).Return(&models.InspectionReport{ID: 1, Status: models.StatusApproved}, nil)

	rc.ApproveReport(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	reports.AssertExpectations(t)
}

func TestApproveReportWithoutBody(t *testing.T) {
	rc, reports, _, _ := newReportController()
	ctx, w := newTestContext(t, http.MethodPut, "/api/reports/1/approve", "", 1, models.RoleAdmin, "1")

	reports.On("Get", mock.Anything, uint(1), types.ReportScope{}).
		Return(&models.InspectionReport{ID: 1, InspectorID: 7, Status: models.StatusSubmitted}, nil)
	reports.On("Transition", mock.Anything, mock.MatchedBy(func(tr types.Transition) bool {
		return tr.Remarks == nil
	})).Return(&models.InspectionReport{ID: 1, Status: models.StatusApproved}, nil)

	rc.ApproveReport(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApproveReportClearsRemarks(t *testing.T) {
	rc, reports, _, _ := newReportController()
	ctx, w := newTestContext(t, http.MethodPut, "/api/reports/1/approve", `{"remarks":""}`, 1, models.RoleAdmin, "1")

	reports.On("Get", mock.Anything, uint(1), types.ReportScope{}).
		Return(&models.InspectionReport{ID: 1, InspectorID: 7, Status: models.StatusSubmitted, Remarks: "old note"}, nil)
	reports.On("Transition", mock.Anything, mock.MatchedBy(func(tr types.Transition) bool {
		return tr.Remarks != nil && *tr.Remarks == ""
	})).Return(&models.InspectionReport{ID: 1, Status: models.StatusApproved}, nil)

	rc.ApproveReport(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	reports.AssertExpectations(t)
}

func TestApproveDraftIsInvalidTransition(t *testing.T) {
	rc, reports, _, _ := newReportController()
	ctx, w := newTestContext(t, http.MethodPut, "/api/reports/1/approve", "", 1, models.RoleAdmin, "1")
	reports.On("Get", mock.Anything, uint(1), types.ReportScope{}).
		Return(&models.InspectionReport{ID: 1, InspectorID: 7, Status: models.StatusDraft}, nil)

	rc.ApproveReport(ctx)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRejectRequiresRemarks(t *testing.T) {
	rc, reports, _, _ := newReportController()
	ctx, w := newTestContext(t, http.MethodPut, "/api/reports/1/reject", `{"remarks":"  "}`, 1, models.RoleAdmin, "1")
	reports.On("Get", mock.Anything, uint(1), types.ReportScope{}).
		Return(&models.InspectionReport{ID: 1, InspectorID: 7, Status: models.StatusSubmitted}, nil)

	rc.RejectReport(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Remarks are required", decodeMessage(t, w.Body.Bytes()))
	reports.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything)
}

func TestRejectByManagerIsForbidden(t *testing.T) {
	rc, reports, _, _ := newReportController()
	ctx, w := newTestContext(t, http.MethodPut, "/api/reports/1/reject", `{"remarks":"no"}`, 9, models.RoleKitchenManager, "1")
	reports.On("Get", mock.Anything, uint(1), types.ReportScope{}).
		Return(&models.InspectionReport{ID: 1, InspectorID: 7, Status: models.StatusSubmitted}, nil)

	rc.RejectReport(ctx)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRefreshSummary(t *testing.T) {
	rc, reports, _, summarizer := newReportController()
	ctx, w := newTestContext(t, http.MethodPost, "/api/reports/1/summary", "", 1, models.RoleAdmin, "1")
	summary := types.Summary{Summary: "again", Evaluation: types.EvaluationAverage}

	reports.On("Get", mock.Anything, uint(1), types.ReportScope{}).
		Return(&models.InspectionReport{ID: 1, Status: models.StatusApproved, Data: []byte(`{}`)}, nil)
	summarizer.On("Summarize", mock.Anything, models.Answers{}).Return(summary)
	reports.On("SetSummary", mock.Anything, uint(1), summary).Return(nil)

	rc.RefreshSummary(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"summary":"again","evaluation":"Average"}`, w.Body.String())
}

func TestGetReportHistory(t *testing.T) {
	rc, reports, _, _ := newReportController()
	inspector := uint(7)
	ctx, w := newTestContext(t, http.MethodGet, "/api/reports/1/history", "", 7, models.RoleInspector, "1")

	reports.On("Get", mock.Anything, uint(1), types.ReportScope{InspectorID: &inspector}).
		Return(&models.InspectionReport{ID: 1, InspectorID: 7}, nil)
	reports.On("History", mock.Anything, uint(1)).Return([]models.ReportStatusHistory{
		{ReportID: 1, FromStatus: models.StatusDraft, ToStatus: models.StatusSubmitted, ChangedByID: 7},
	}, nil)

	rc.GetReportHistory(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	var history []models.ReportStatusHistory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Len(t, history, 1)
}
