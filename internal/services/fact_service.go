package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/config"
)

// FactPrompt is the fixed prompt sent for every fun fact request.
const FactPrompt = "Give me a short and fun nature fact for hikers."

var (
	// ErrNoFact means the provider answered but the first candidate carried
	// no text. Structural absence and an empty answer are not distinguished.
	ErrNoFact = errors.New("no fun fact in provider response")
	// ErrFactUnavailable wraps transport, status and decoding failures.
	ErrFactUnavailable = errors.New("fun fact provider unavailable")
)

// FactGenerator asks a generative-language model for a single piece of text.
type FactGenerator interface {
	GenerateFact(ctx context.Context, prompt string) (string, error)
}

type FactService struct {
	gen       FactGenerator
	transport string
}

// NewFactService builds the generator selected by cfg.GeminiTransport.
func NewFactService(ctx context.Context, cfg *config.Config) (*FactService, error) {
	timeout := cfg.AITimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	switch cfg.GeminiTransport {
	case "sdk":
		gen, err := NewGeminiSDKGenerator(ctx, cfg.GeminiAPIURL, cfg.GeminiAPIKey, cfg.GeminiModel, client)
		if err != nil {
			return nil, err
		}
		return &FactService{gen: gen, transport: "sdk"}, nil
	case "rest", "":
		return &FactService{
			gen:       NewGeminiRESTGenerator(cfg.GeminiAPIURL, cfg.GeminiAPIKey, cfg.GeminiModel, client),
			transport: "rest",
		}, nil
	default:
		return nil, fmt.Errorf("unsupported gemini transport %q", cfg.GeminiTransport)
	}
}

// NewFactServiceWithGenerator is used when the generator is built elsewhere.
func NewFactServiceWithGenerator(gen FactGenerator) *FactService {
	return &FactService{gen: gen, transport: "custom"}
}

// Fetch returns one fun fact. It makes exactly one upstream call and never
// retries. The error is ErrNoFact or wraps ErrFactUnavailable.
func (s *FactService) Fetch(ctx context.Context) (string, error) {
	start := time.Now()
	fact, err := s.gen.GenerateFact(ctx, FactPrompt)
	latency := time.Since(start)

	if errors.Is(err, ErrNoFact) {
		slog.Info("fact provider returned no text", "action", "fact.fetch", "transport", s.transport, "latency_ms", float64(latency.Milliseconds()))
		return "", ErrNoFact
	}
	if err != nil {
		slog.Error("fact generation failed", "action", "fact.fetch", "transport", s.transport, "error", err, "latency_ms", float64(latency.Milliseconds()))
		if errors.Is(err, ErrFactUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrFactUnavailable, err)
	}
	if fact == "" {
		return "", ErrNoFact
	}
	return fact, nil
}
