package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"google.golang.org/genai"
)

// GeminiSDKGenerator goes through the official genai client. Extraction is
// the same first-candidate, first-part rule as the REST generator.
type GeminiSDKGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiSDKGenerator(ctx context.Context, apiURL, apiKey, model string, httpClient *http.Client) (*GeminiSDKGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key not configured", ErrFactUnavailable)
	}

	baseURL, version := splitAPIVersion(apiURL)
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    baseURL,
			APIVersion: version,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiSDKGenerator{client: client, model: model}, nil
}

func (g *GeminiSDKGenerator) GenerateFact(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFactUnavailable, err)
	}

	text, ok := firstSDKText(resp)
	if !ok {
		return "", ErrNoFact
	}
	return text, nil
}

func firstSDKText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", false
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return "", false
	}
	text := content.Parts[0].Text
	if text == "" {
		return "", false
	}
	return text, true
}

// splitAPIVersion turns "https://host/v1beta" into ("https://host/", "v1beta").
// URLs without a trailing version segment are returned unchanged.
func splitAPIVersion(apiURL string) (string, string) {
	u, err := url.Parse(strings.TrimRight(apiURL, "/"))
	if err != nil || u.Path == "" {
		return apiURL, ""
	}
	last := path.Base(u.Path)
	if !strings.HasPrefix(last, "v1") && !strings.HasPrefix(last, "v2") {
		return apiURL, ""
	}
	u.Path = strings.TrimSuffix(path.Dir(u.Path), "/") + "/"
	return u.String(), last
}
