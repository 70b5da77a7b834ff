package services

import (
	"fmt"

	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/types"
)

const fallbackTemplate = "(AI Unavailable) Automated Summary: Based on the inspection, the overall quality is rated as %s. %d out of %d checkpoints checks completed."

// FallbackSummary grades answers without any external service. A checkpoint
// counts when its answer is boolean true or a non-empty string; numbers and
// false never count.
func FallbackSummary(answers models.Answers) types.Summary {
	total := len(answers)
	score := 0
	for _, v := range answers {
		if passes(v) {
			score++
		}
	}

	var percentage float64
	if total > 0 {
		percentage = float64(score) / float64(total)
	}

	evaluation := types.EvaluationPoor
	switch {
	case percentage > 0.8:
		evaluation = types.EvaluationGood
	case percentage > 0.5:
		evaluation = types.EvaluationAverage
	}

	return types.Summary{
		Summary:    fmt.Sprintf(fallbackTemplate, evaluation, score, total),
		Evaluation: evaluation,
	}
}

// passes covers the literal "true", "pass" and "Yes" answers as well, since any
// non-empty string counts.
func passes(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return len(val) > 0
	default:
		return false
	}
}
