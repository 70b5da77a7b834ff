package mocks

import (
	"context"
	"time"

	"github.com/freshcheck/api-go/models"
	"github.com/stretchr/testify/mock"
)

type RefreshTokenStore struct{ mock.Mock }

func (m *RefreshTokenStore) Create(ctx context.Context, t *models.RefreshToken) error {
	return m.Called(ctx, t).Error(0)
}

func (m *RefreshTokenStore) FindByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *RefreshTokenStore) Revoke(ctx context.Context, id uint, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *RefreshTokenStore) RevokeAllForUser(ctx context.Context, userID uint, at time.Time) error {
	return m.Called(ctx, userID, at).Error(0)
}
