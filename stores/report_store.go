package stores

import (
	"context"
	"fmt"

	"github.com/freshcheck/api-go/apperrors"
	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/types"
	"gorm.io/gorm"
)

type ReportStore interface {
	List(ctx context.Context, filter types.ReportFilter) ([]models.InspectionReport, error)
	// Get returns the report only when it falls inside scope; a hidden report is
	// reported as not found.
	Get(ctx context.Context, id uint, scope types.ReportScope) (*models.InspectionReport, error)
	Create(ctx context.Context, r *models.InspectionReport) error
	// UpdateDraft applies changes only while the report is a DRAFT owned by ownerID.
	UpdateDraft(ctx context.Context, id, ownerID uint, changes types.DraftChanges) (*models.InspectionReport, error)
	// Transition atomically moves a report between statuses and records history.
	Transition(ctx context.Context, t types.Transition) (*models.InspectionReport, error)
	SetSummary(ctx context.Context, id uint, summary types.Summary) error
	AddAttachment(ctx context.Context, id, ownerID uint, key string) (*models.InspectionReport, error)
	RemoveAttachment(ctx context.Context, id, ownerID uint, key string) (*models.InspectionReport, error)
	History(ctx context.Context, id uint) ([]models.ReportStatusHistory, error)
}

type GormReportStore struct{ DB *gorm.DB }

func (s *GormReportStore) withRelations(q *gorm.DB) *gorm.DB {
	return q.Preload("Form").Preload("Inspector").Preload("ReviewedBy")
}

func applyScope(q *gorm.DB, scope types.ReportScope) *gorm.DB {
	if scope.InspectorID != nil {
		q = q.Where("inspector_id = ?", *scope.InspectorID)
	}
	if scope.Status != nil {
		q = q.Where("status = ?", *scope.Status)
	}
	return q
}

func (s *GormReportStore) List(ctx context.Context, filter types.ReportFilter) ([]models.InspectionReport, error) {
	var reports []models.InspectionReport
	q := applyScope(s.DB.WithContext(ctx).Model(&models.InspectionReport{}), filter.Scope)
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.FormID != nil {
		q = q.Where("form_id = ?", *filter.FormID)
	}
	if err := s.withRelations(q).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, classify(err, "Report")
	}
	return reports, nil
}

func (s *GormReportStore) Get(ctx context.Context, id uint, scope types.ReportScope) (*models.InspectionReport, error) {
	var r models.InspectionReport
	q := applyScope(s.DB.WithContext(ctx).Model(&models.InspectionReport{}), scope)
	if err := s.withRelations(q).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, classify(err, "Report")
	}
	return &r, nil
}

func (s *GormReportStore) Create(ctx context.Context, r *models.InspectionReport) error {
	if err := s.DB.WithContext(ctx).Create(r).Error; err != nil {
		return classify(err, "Report")
	}
	return nil
}

func (s *GormReportStore) UpdateDraft(ctx context.Context, id, ownerID uint, changes types.DraftChanges) (*models.InspectionReport, error) {
	updates := map[string]interface{}{}
	if changes.Data != nil {
		data, err := models.EncodeAnswers(*changes.Data)
		if err != nil {
			return nil, apperrors.Validation("Answers could not be encoded")
		}
		updates["data"] = data
	}
	if changes.Remarks != nil {
		updates["remarks"] = *changes.Remarks
	}

	db := s.DB.WithContext(ctx)
	if len(updates) > 0 {
		res := db.Model(&models.InspectionReport{}).
			Where("id = ? AND inspector_id = ? AND status = ?", id, ownerID, models.StatusDraft).
			Updates(updates)
		if res.Error != nil {
			return nil, classify(res.Error, "Report")
		}
		if res.RowsAffected == 0 {
			return nil, s.explainMiss(db, id, &ownerID, "edit")
		}
	} else if err := s.requireDraftOwner(db, id, ownerID); err != nil {
		return nil, err
	}
	return s.Get(ctx, id, types.ReportScope{})
}

func (s *GormReportStore) Transition(ctx context.Context, t types.Transition) (*models.InspectionReport, error) {
	updates := map[string]interface{}{"status": t.To}
	switch t.To {
	case models.StatusSubmitted:
		updates["submitted_at"] = t.At
	case models.StatusApproved, models.StatusRejected:
		updates["reviewed_by_id"] = t.ActorID
		updates["reviewed_at"] = t.At
	}
	if t.Remarks != nil {
		updates["remarks"] = *t.Remarks
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.InspectionReport{}).Where("id = ? AND status = ?", t.ReportID, t.From)
		if t.OwnerID != nil {
			q = q.Where("inspector_id = ?", *t.OwnerID)
		}
		res := q.Updates(updates)
		if res.Error != nil {
			return classify(res.Error, "Report")
		}
		if res.RowsAffected == 0 {
			return s.explainMiss(tx, t.ReportID, t.OwnerID, "move to "+string(t.To))
		}

		history := models.ReportStatusHistory{
			ReportID:    t.ReportID,
			FromStatus:  t.From,
			ToStatus:    t.To,
			ChangedByID: t.ActorID,
		}
		if t.Remarks != nil {
			history.Remarks = *t.Remarks
		}
		return classify(tx.Create(&history).Error, "Report history")
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, t.ReportID, types.ReportScope{})
}

func (s *GormReportStore) SetSummary(ctx context.Context, id uint, summary types.Summary) error {
	evaluation := string(summary.Evaluation)
	res := s.DB.WithContext(ctx).Model(&models.InspectionReport{}).Where("id = ?", id).Updates(map[string]interface{}{
		"ai_summary":    summary.Summary,
		"ai_evaluation": evaluation,
	})
	if res.Error != nil {
		return classify(res.Error, "Report")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("Report")
	}
	return nil
}

func (s *GormReportStore) AddAttachment(ctx context.Context, id, ownerID uint, key string) (*models.InspectionReport, error) {
	db := s.DB.WithContext(ctx)
	res := db.Model(&models.InspectionReport{}).
		Where("id = ? AND inspector_id = ? AND status = ?", id, ownerID, models.StatusDraft).
		Where("NOT (? = ANY(COALESCE(attachments, '{}')))", key).
		Update("attachments", gorm.Expr("array_append(COALESCE(attachments, '{}'), ?)", key))
	if res.Error != nil {
		return nil, classify(res.Error, "Report")
	}
	if res.RowsAffected == 0 {
		if err := s.requireDraftOwner(db, id, ownerID); err != nil {
			return nil, err
		}
		// Already attached.
	}
	return s.Get(ctx, id, types.ReportScope{})
}

func (s *GormReportStore) RemoveAttachment(ctx context.Context, id, ownerID uint, key string) (*models.InspectionReport, error) {
	db := s.DB.WithContext(ctx)
	res := db.Model(&models.InspectionReport{}).
		Where("id = ? AND inspector_id = ? AND status = ?", id, ownerID, models.StatusDraft).
		Where("? = ANY(COALESCE(attachments, '{}'))", key).
		Update("attachments", gorm.Expr("array_remove(attachments, ?)", key))
	if res.Error != nil {
		return nil, classify(res.Error, "Report")
	}
	if res.RowsAffected == 0 {
		if err := s.requireDraftOwner(db, id, ownerID); err != nil {
			return nil, err
		}
		return nil, apperrors.NotFound("Attachment")
	}
	return s.Get(ctx, id, types.ReportScope{})
}

func (s *GormReportStore) History(ctx context.Context, id uint) ([]models.ReportStatusHistory, error) {
	var history []models.ReportStatusHistory
	err := s.DB.WithContext(ctx).Preload("ChangedBy").
		Where("report_id = ?", id).
		Order("created_at ASC, id ASC").
		Find(&history).Error
	if err != nil {
		return nil, classify(err, "Report history")
	}
	return history, nil
}

func (s *GormReportStore) requireDraftOwner(db *gorm.DB, id, ownerID uint) error {
	var r models.InspectionReport
	if err := db.Select("id", "inspector_id", "status").First(&r, id).Error; err != nil {
		return classify(err, "Report")
	}
	if r.InspectorID != ownerID {
		return apperrors.ErrForbidden
	}
	if r.Status != models.StatusDraft {
		return apperrors.New(apperrors.KindInvalidTransition, "Only draft reports can be edited")
	}
	return nil
}

// explainMiss re-reads a report after a conditional update matched no row, to
// tell a missing report from a foreign one from a stale status.
func (s *GormReportStore) explainMiss(db *gorm.DB, id uint, ownerID *uint, action string) error {
	var r models.InspectionReport
	if err := db.Select("id", "inspector_id", "status").First(&r, id).Error; err != nil {
		return classify(err, "Report")
	}
	if ownerID != nil && r.InspectorID != *ownerID {
		return apperrors.ErrForbidden
	}
	return apperrors.New(apperrors.KindInvalidTransition,
		fmt.Sprintf("Cannot %s a report in status %s", action, r.Status))
}
