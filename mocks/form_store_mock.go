package mocks

import (
	"context"

	"github.com/freshcheck/api-go/models"
	"github.com/stretchr/testify/mock"
)

type FormStore struct{ mock.Mock }

func (m *FormStore) List(ctx context.Context, includeInactive bool) ([]models.InspectionForm, error) {
	args := m.Called(ctx, includeInactive)
	forms, _ := args.Get(0).([]models.InspectionForm)
	return forms, args.Error(1)
}

func (m *FormStore) GetByID(ctx context.Context, id uint) (*models.InspectionForm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InspectionForm), args.Error(1)
}

func (m *FormStore) Create(ctx context.Context, f *models.InspectionForm) error {
	return m.Called(ctx, f).Error(0)
}

func (m *FormStore) Update(ctx context.Context, f *models.InspectionForm) error {
	return m.Called(ctx, f).Error(0)
}

func (m *FormStore) Deactivate(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
