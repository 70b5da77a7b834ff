package mocks

import (
	"context"

	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/types"
	"github.com/stretchr/testify/mock"
)

type ReportStore struct{ mock.Mock }

func report(args mock.Arguments) (*models.InspectionReport, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InspectionReport), args.Error(1)
}

func (m *ReportStore) List(ctx context.Context, filter types.ReportFilter) ([]models.InspectionReport, error) {
	args := m.Called(ctx, filter)
	reports, _ := args.Get(0).([]models.InspectionReport)
	return reports, args.Error(1)
}

func (m *ReportStore) Get(ctx context.Context, id uint, scope types.ReportScope) (*models.InspectionReport, error) {
	return report(m.Called(ctx, id, scope))
}

func (m *ReportStore) Create(ctx context.Context, r *models.InspectionReport) error {
	return m.Called(ctx, r).Error(0)
}

func (m *ReportStore) UpdateDraft(ctx context.Context, id, ownerID uint, changes types.DraftChanges) (*models.InspectionReport, error) {
	return report(m.Called(ctx, id, ownerID, changes))
}

func (m *ReportStore) Transition(ctx context.Context, t types.Transition) (*models.InspectionReport, error) {
	return report(m.Called(ctx, t))
}

func (m *ReportStore) SetSummary(ctx context.Context, id uint, summary types.Summary) error {
	return m.Called(ctx, id, summary).Error(0)
}

func (m *ReportStore) AddAttachment(ctx context.Context, id, ownerID uint, key string) (*models.InspectionReport, error) {
	return report(m.Called(ctx, id, ownerID, key))
}

func (m *ReportStore) RemoveAttachment(ctx context.Context, id, ownerID uint, key string) (*models.InspectionReport, error) {
	return report(m.Called(ctx, id, ownerID, key))
}

func (m *ReportStore) History(ctx context.Context, id uint) ([]models.ReportStatusHistory, error) {
	args := m.Called(ctx, id)
	history, _ := args.Get(0).([]models.ReportStatusHistory)
	return history, args.Error(1)
}
