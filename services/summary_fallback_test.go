package services

import (
	"testing"

	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/types"
	"github.com/stretchr/testify/assert"
)

func TestFallbackSummary(t *testing.T) {
	tests := []struct {
		name    string
		answers models.Answers
		want    types.Evaluation
		summary string
	}{
		{
			name:    "three of four",
			answers: models.Answers{"a": true, "b": "pass", "c": "", "d": "Yes"},
			want:    types.EvaluationAverage,
			summary: "(AI Unavailable) Automated Summary: Based on the inspection, the overall quality is rated as Average. 3 out of 4 checkpoints checks completed.",
		},
		{
			name:    "all passing",
			answers: models.Answers{"a": true, "b": "pass", "c": "ok", "d": "Yes"},
			want:    types.EvaluationGood,
			summary: "(AI Unavailable) Automated Summary: Based on the inspection, the overall quality is rated as Good. 4 out of 4 checkpoints checks completed.",
		},
		{
			name:    "no answers",
			answers: models.Answers{},
			want:    types.EvaluationPoor,
			summary: "(AI Unavailable) Automated Summary: Based on the inspection, the overall quality is rated as Poor. 0 out of 0 checkpoints checks completed.",
		},
		{
			name:    "numbers and false never count",
			answers: models.Answers{"temp": 4.5, "clean": false, "note": "fine"},
			want:    types.EvaluationPoor,
		},
		{
			name:    "exactly half is poor",
			answers: models.Answers{"a": true, "b": false},
			want:    types.EvaluationPoor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackSummary(tt.answers)
			assert.Equal(t, tt.want, got.Evaluation)
			if tt.summary != "" {
				assert.Equal(t, tt.summary, got.Summary)
			}
		})
	}
}
