package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse mirrors only the path we read. Pointers let a missing level
// be told apart from a present but empty one during extraction.
type geminiResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// firstText returns candidates[0].content.parts[0].text when every level is
// present and the text is non-empty.
func (r *geminiResponse) firstText() (string, bool) {
	if r == nil || len(r.Candidates) == 0 {
		return "", false
	}
	content := r.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}
	text := content.Parts[0].Text
	if text == nil || *text == "" {
		return "", false
	}
	return *text, true
}

// GeminiRESTGenerator calls the generateContent endpoint with a plain JSON body.
type GeminiRESTGenerator struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewGeminiRESTGenerator(baseURL, apiKey, model string, client *http.Client) *GeminiRESTGenerator {
	if client == nil {
		client = http.DefaultClient
	}
	return &GeminiRESTGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  client,
	}
}

func (g *GeminiRESTGenerator) endpoint() string {
	u := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	if g.apiKey == "" {
		return u
	}
	return u + "?" + url.Values{"key": {g.apiKey}}.Encode()
}

func (g *GeminiRESTGenerator) GenerateFact(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%w: API key not configured", ErrFactUnavailable)
	}

	reqBody, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFactUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrFactUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: API returned %d: %s", ErrFactUnavailable, resp.StatusCode, truncate(string(body), 200))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrFactUnavailable, err)
	}

	text, ok := parsed.firstText()
	if !ok {
		return "", ErrNoFact
	}
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
