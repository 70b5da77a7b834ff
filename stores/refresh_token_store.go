package stores

import (
	"context"
	"time"

	"github.com/freshcheck/api-go/models"
	"gorm.io/gorm"
)

type RefreshTokenStore interface {
	Create(ctx context.Context, t *models.RefreshToken) error
	// FindByHash returns the token with hash regardless of state.
	FindByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	// Revoke marks the token revoked; it reports false when it was already revoked.
	Revoke(ctx context.Context, id uint, at time.Time) (bool, error)
	RevokeAllForUser(ctx context.Context, userID uint, at time.Time) error
}

type GormRefreshTokenStore struct{ DB *gorm.DB }

func (s *GormRefreshTokenStore) Create(ctx context.Context, t *models.RefreshToken) error {
	return classify(s.DB.WithContext(ctx).Create(t).Error, "Refresh token")
}

func (s *GormRefreshTokenStore) FindByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	var t models.RefreshToken
	if err := s.DB.WithContext(ctx).Where("token_hash = ?", hash).First(&t).Error; err != nil {
		return nil, classify(err, "Refresh token")
	}
	return &t, nil
}

// Revoke is conditional so that two concurrent refreshes cannot both rotate the
// same token.
func (s *GormRefreshTokenStore) Revoke(ctx context.Context, id uint, at time.Time) (bool, error) {
	res := s.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at)
	if res.Error != nil {
		return false, classify(res.Error, "Refresh token")
	}
	return res.RowsAffected == 1, nil
}

func (s *GormRefreshTokenStore) RevokeAllForUser(ctx context.Context, userID uint, at time.Time) error {
	err := s.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", at).Error
	return classify(err, "Refresh token")
}
