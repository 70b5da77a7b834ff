package stores

import (
	"context"

	"github.com/freshcheck/api-go/models"
	"gorm.io/gorm"
)

// UserStore abstracts user persistence.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// FindByEmail returns the user with email, or a not-found error.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uint) error
}

// GormUserStore implements UserStore using GORM.
type GormUserStore struct{ DB *gorm.DB }

func (s *GormUserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, classify(err, "User")
	}
	return users, nil
}

func (s *GormUserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, classify(err, "User")
	}
	return &u, nil
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, classify(err, "User")
	}
	return &u, nil
}

func (s *GormUserStore) Create(ctx context.Context, u *models.User) error {
	return classify(s.DB.WithContext(ctx).Create(u).Error, "User")
}

func (s *GormUserStore) Update(ctx context.Context, u *models.User) error {
	res := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"name":     u.Name,
		"email":    u.Email,
		"password": u.Password,
		"role":     u.Role,
	})
	if res.Error != nil {
		return classify(res.Error, "User")
	}
	if res.RowsAffected == 0 {
		return classify(gorm.ErrRecordNotFound, "User")
	}
	return nil
}

func (s *GormUserStore) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return classify(res.Error, "User")
	}
	if res.RowsAffected == 0 {
		return classify(gorm.ErrRecordNotFound, "User")
	}
	return nil
}
