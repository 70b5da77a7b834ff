package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/types"
	"google.golang.org/genai"
)

const summaryPrompt = `Analyze the following inspection report data and provide a concise summary (max 2 sentences) and an overall evaluation (Good, Average, or Poor).

Report Data:
%s

Output strictly in valid JSON format like this:
{
  "summary": "Your summary here...",
  "evaluation": "Good" | "Average" | "Poor"
}`

// Summarizer enriches a report's answers with a summary and evaluation. It never
// fails: any problem on the primary path degrades to FallbackSummary.
type Summarizer interface {
	Summarize(ctx context.Context, answers models.Answers) types.Summary
}

// SummaryCache stores primary-path summaries keyed by a digest of the answers.
type SummaryCache interface {
	Get(key string) (types.Summary, bool)
	Put(key string, summary types.Summary) error
}

// GenerativeSummarizer asks a Gemini model for the summary. A nil Client
// disables the primary path.
type GenerativeSummarizer struct {
	Client  *genai.Client
	Model   string
	Timeout time.Duration
	Cache   SummaryCache
}

var errNoClient = errors.New("generative client not configured")

func (s *GenerativeSummarizer) Summarize(ctx context.Context, answers models.Answers) types.Summary {
	if s == nil || s.Client == nil {
		return FallbackSummary(answers)
	}

	key, keyErr := AnswersDigest(answers)
	if keyErr == nil && s.Cache != nil {
		if cached, ok := s.Cache.Get(key); ok {
			return cached
		}
	}

	summary, err := s.generate(ctx, answers)
	if err != nil {
		log.Printf("AI summary unavailable, using fallback: %v", err)
		return FallbackSummary(answers)
	}

	if keyErr == nil && s.Cache != nil {
		if err := s.Cache.Put(key, summary); err != nil {
			log.Printf("Failed to cache AI summary: %v", err)
		}
	}
	return summary
}

func (s *GenerativeSummarizer) generate(ctx context.Context, answers models.Answers) (types.Summary, error) {
	if s.Client == nil {
		return types.Summary{}, errNoClient
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	pretty, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return types.Summary{}, fmt.Errorf("encode answers: %w", err)
	}

	resp, err := s.Client.Models.GenerateContent(ctx, s.Model,
		genai.Text(fmt.Sprintf(summaryPrompt, pretty)),
		&genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.2)},
	)
	if err != nil {
		return types.Summary{}, fmt.Errorf("generate content: %w", err)
	}
	return ParseSummaryText(resp.Text())
}

// ParseSummaryText parses model output as strict JSON after stripping markdown
// code fences. An unknown evaluation becomes Average.
func ParseSummaryText(text string) (types.Summary, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return types.Summary{}, errors.New("empty model output")
	}

	var parsed struct {
		Summary    string `json:"summary"`
		Evaluation string `json:"evaluation"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return types.Summary{}, fmt.Errorf("model output is not JSON: %w", err)
	}

	summary := types.Summary{
		Summary:    parsed.Summary,
		Evaluation: normalizeEvaluation(parsed.Evaluation),
	}
	if summary.Summary == "" {
		summary.Summary = "Summary generation failed."
	}
	return summary, nil
}

func normalizeEvaluation(v string) types.Evaluation {
	switch e := types.Evaluation(v); e {
	case types.EvaluationGood, types.EvaluationAverage, types.EvaluationPoor:
		return e
	}
	return types.EvaluationAverage
}

// AnswersDigest is the cache key of an answer map. encoding/json sorts map keys,
// so equal maps always produce the same digest.
func AnswersDigest(answers models.Answers) (string, error) {
	if answers == nil {
		answers = models.Answers{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
