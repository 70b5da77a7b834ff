package types

// Evaluation is the overall grade attached to a report summary.
type Evaluation string

const (
	EvaluationGood    Evaluation = "Good"
	EvaluationAverage Evaluation = "Average"
	EvaluationPoor    Evaluation = "Poor"
)

// Summary is the natural-language enrichment of a report.
type Summary struct {
	Summary    string     `json:"summary"`
	Evaluation Evaluation `json:"evaluation"`
}
