package stores

import (
	"context"

	"github.com/freshcheck/api-go/models"
	"gorm.io/gorm"
)

type FormStore interface {
	// List returns forms newest first; inactive forms only when includeInactive.
	List(ctx context.Context, includeInactive bool) ([]models.InspectionForm, error)
	GetByID(ctx context.Context, id uint) (*models.InspectionForm, error)
	Create(ctx context.Context, f *models.InspectionForm) error
	// Update persists title, questions, version and isActive of f.
	Update(ctx context.Context, f *models.InspectionForm) error
	Deactivate(ctx context.Context, id uint) error
}

type GormFormStore struct{ DB *gorm.DB }

func (s *GormFormStore) List(ctx context.Context, includeInactive bool) ([]models.InspectionForm, error) {
	var forms []models.InspectionForm
	q := s.DB.WithContext(ctx).Preload("CreatedBy")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("created_at DESC").Find(&forms).Error; err != nil {
		return nil, classify(err, "Form")
	}
	return forms, nil
}

// GetByID returns the form whatever its isActive flag, so reports against a
// retired form stay readable.
func (s *GormFormStore) GetByID(ctx context.Context, id uint) (*models.InspectionForm, error) {
	var f models.InspectionForm
	if err := s.DB.WithContext(ctx).Preload("CreatedBy").First(&f, id).Error; err != nil {
		return nil, classify(err, "Form")
	}
	return &f, nil
}

func (s *GormFormStore) Create(ctx context.Context, f *models.InspectionForm) error {
	return classify(s.DB.WithContext(ctx).Create(f).Error, "Form")
}

func (s *GormFormStore) Update(ctx context.Context, f *models.InspectionForm) error {
	res := s.DB.WithContext(ctx).Model(&models.InspectionForm{}).Where("id = ?", f.ID).Updates(map[string]interface{}{
		"title":     f.Title,
		"questions": f.Questions,
		"version":   f.Version,
		"is_active": f.IsActive,
	})
	if res.Error != nil {
		return classify(res.Error, "Form")
	}
	if res.RowsAffected == 0 {
		return classify(gorm.ErrRecordNotFound, "Form")
	}
	return nil
}

func (s *GormFormStore) Deactivate(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Model(&models.InspectionForm{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return classify(res.Error, "Form")
	}
	if res.RowsAffected == 0 {
		return classify(gorm.ErrRecordNotFound, "Form")
	}
	return nil
}
