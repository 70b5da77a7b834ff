package stores

import (
	"context"

	"github.com/freshcheck/api-go/models"
	"gorm.io/gorm"
)

type GuidelineStore interface {
	// List returns guidelines newest first, optionally narrowed to one severity.
	List(ctx context.Context, severity *models.Severity) ([]models.Guideline, error)
	GetByID(ctx context.Context, id uint) (*models.Guideline, error)
	Create(ctx context.Context, g *models.Guideline) error
	Update(ctx context.Context, g *models.Guideline) error
	Delete(ctx context.Context, id uint) error
}

type GormGuidelineStore struct{ DB *gorm.DB }

func (s *GormGuidelineStore) List(ctx context.Context, severity *models.Severity) ([]models.Guideline, error) {
	var guidelines []models.Guideline
	q := s.DB.WithContext(ctx).Preload("UpdatedBy")
	if severity != nil {
		q = q.Where("severity = ?", *severity)
	}
	if err := q.Order("created_at DESC").Find(&guidelines).Error; err != nil {
		return nil, classify(err, "Guideline")
	}
	return guidelines, nil
}

func (s *GormGuidelineStore) GetByID(ctx context.Context, id uint) (*models.Guideline, error) {
	var g models.Guideline
	if err := s.DB.WithContext(ctx).Preload("UpdatedBy").First(&g, id).Error; err != nil {
		return nil, classify(err, "Guideline")
	}
	return &g, nil
}

func (s *GormGuidelineStore) Create(ctx context.Context, g *models.Guideline) error {
	return classify(s.DB.WithContext(ctx).Create(g).Error, "Guideline")
}

func (s *GormGuidelineStore) Update(ctx context.Context, g *models.Guideline) error {
	res := s.DB.WithContext(ctx).Model(&models.Guideline{}).Where("id = ?", g.ID).Updates(map[string]interface{}{
		"title":         g.Title,
		"content":       g.Content,
		"severity":      g.Severity,
		"updated_by_id": g.UpdatedByID,
	})
	if res.Error != nil {
		return classify(res.Error, "Guideline")
	}
	if res.RowsAffected == 0 {
		return classify(gorm.ErrRecordNotFound, "Guideline")
	}
	return nil
}

func (s *GormGuidelineStore) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Guideline{}, id)
	if res.Error != nil {
		return classify(res.Error, "Guideline")
	}
	if res.RowsAffected == 0 {
		return classify(gorm.ErrRecordNotFound, "Guideline")
	}
	return nil
}
