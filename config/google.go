package config

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/genai"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// NewGenerativeClient returns the genai client used for report summaries, or nil
// when no credentials are configured. An API key selects the Gemini API backend.
// Otherwise, with AI_USE_ADC, the client talks to Vertex AI through an OAuth2
// client built from Application Default Credentials.
func NewGenerativeClient(ctx context.Context, cfg AIConfig) (*genai.Client, error) {
	httpOptions := genai.HTTPOptions{BaseURL: cfg.Endpoint}

	if cfg.APIKey != "" {
		return genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:      cfg.APIKey,
			Backend:     genai.BackendGeminiAPI,
			HTTPOptions: httpOptions,
		})
	}
	if !cfg.UseADC {
		return nil, nil
	}

	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("load application default credentials: %w", err)
	}
	project := cfg.Project
	if project == "" {
		project = creds.ProjectID
	}
	if project == "" {
		return nil, errors.New("AI_PROJECT is required with application default credentials")
	}

	httpClient, err := google.DefaultClient(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("build oauth2 client: %w", err)
	}

	return genai.NewClient(ctx, &genai.ClientConfig{
		Backend:     genai.BackendVertexAI,
		Project:     project,
		Location:    cfg.Location,
		HTTPClient:  httpClient,
		HTTPOptions: httpOptions,
	})
}
