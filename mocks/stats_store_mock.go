package mocks

import (
	"context"

	"github.com/freshcheck/api-go/types"
	"github.com/stretchr/testify/mock"
)

type StatsStore struct{ mock.Mock }

func (m *StatsStore) Counts(ctx context.Context, inspectorID uint) (types.Counts, error) {
	args := m.Called(ctx, inspectorID)
	return args.Get(0).(types.Counts), args.Error(1)
}
