package mocks

import (
	"context"

	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/types"
	"github.com/stretchr/testify/mock"
)

type Summarizer struct{ mock.Mock }

func (m *Summarizer) Summarize(ctx context.Context, answers models.Answers) types.Summary {
	return m.Called(ctx, answers).Get(0).(types.Summary)
}
