package mocks

import (
	"context"

	"github.com/freshcheck/api-go/models"
	"github.com/stretchr/testify/mock"
)

type GuidelineStore struct{ mock.Mock }

func (m *GuidelineStore) List(ctx context.Context, severity *models.Severity) ([]models.Guideline, error) {
	args := m.Called(ctx, severity)
	guidelines, _ := args.Get(0).([]models.Guideline)
	return guidelines, args.Error(1)
}

func (m *GuidelineStore) GetByID(ctx context.Context, id uint) (*models.Guideline, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guideline), args.Error(1)
}

func (m *GuidelineStore) Create(ctx context.Context, g *models.Guideline) error {
	return m.Called(ctx, g).Error(0)
}

func (m *GuidelineStore) Update(ctx context.Context, g *models.Guideline) error {
	return m.Called(ctx, g).Error(0)
}

func (m *GuidelineStore) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
