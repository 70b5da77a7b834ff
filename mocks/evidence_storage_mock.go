package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EvidenceStorage struct{ mock.Mock }

func (m *EvidenceStorage) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *EvidenceStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *EvidenceStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *EvidenceStorage) PublicURL(key string) string {
	return m.Called(key).String(0)
}
