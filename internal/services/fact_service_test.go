package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const echidnaFact = "Echidnas can detect prey through seismic vibration."

func geminiServer(t *testing.T, status int, body string) (*httptest.Server, *[]byte) {
	t.Helper()
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		captured, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func restService(srv *httptest.Server) *FactService {
	gen := NewGeminiRESTGenerator(srv.URL+"/v1beta", "test-key", "gemini-2.0-flash", srv.Client())
	return NewFactServiceWithGenerator(gen)
}

func TestFactService_RESTExtractsFirstText(t *testing.T) {
	srv, captured := geminiServer(t, http.StatusOK, `{
		"candidates": [
			{"content": {"parts": [{"text": "`+echidnaFact+`"}, {"text": "second part"}]}},
			{"content": {"parts": [{"text": "other candidate"}]}}
		]
	}`)

	fact, err := restService(srv).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, echidnaFact, fact)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal(*captured, &sent))
	assert.Equal(t, map[string]interface{}{
		"contents": []interface{}{
			map[string]interface{}{
				"parts": []interface{}{
					map[string]interface{}{"text": FactPrompt},
				},
			},
		},
	}, sent)
}

func TestFactService_RESTAbsenceIsNoFact(t *testing.T) {
	bodies := map[string]string{
		"empty object":     `{}`,
		"empty candidates": `{"candidates": []}`,
		"missing content":  `{"candidates": [{}]}`,
		"null content":     `{"candidates": [{"content": null}]}`,
		"empty parts":      `{"candidates": [{"content": {"parts": []}}]}`,
		"missing text":     `{"candidates": [{"content": {"parts": [{}]}}]}`,
		"empty text":       `{"candidates": [{"content": {"parts": [{"text": ""}]}}]}`,
		"second part only": `{"candidates": [{"content": {"parts": [{}, {"text": "late"}]}}]}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv, _ := geminiServer(t, http.StatusOK, body)
			_, err := restService(srv).Fetch(context.Background())
			assert.ErrorIs(t, err, ErrNoFact)
		})
	}
}

func TestFactService_RESTFailuresAreUnavailable(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		srv, _ := geminiServer(t, http.StatusTooManyRequests, `{"error":{"code":429}}`)
		_, err := restService(srv).Fetch(context.Background())
		assert.ErrorIs(t, err, ErrFactUnavailable)
	})

	t.Run("garbage body", func(t *testing.T) {
		srv, _ := geminiServer(t, http.StatusOK, `<html>oops</html>`)
		_, err := restService(srv).Fetch(context.Background())
		assert.ErrorIs(t, err, ErrFactUnavailable)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv, _ := geminiServer(t, http.StatusOK, `{}`)
		svc := restService(srv)
		srv.Close()
		_, err := svc.Fetch(context.Background())
		assert.ErrorIs(t, err, ErrFactUnavailable)
	})

	t.Run("missing key", func(t *testing.T) {
		gen := NewGeminiRESTGenerator("http://127.0.0.1:0/v1beta", "", "gemini-2.0-flash", nil)
		_, err := NewFactServiceWithGenerator(gen).Fetch(context.Background())
		assert.ErrorIs(t, err, ErrFactUnavailable)
	})
}

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (s *stubGenerator) GenerateFact(_ context.Context, prompt string) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestFactService_SingleCallNoRetry(t *testing.T) {
	gen := &stubGenerator{err: errors.New("boom")}
	_, err := NewFactServiceWithGenerator(gen).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrFactUnavailable)
	assert.Equal(t, 1, gen.calls)
}

func TestFactService_EmptyTextFromGeneratorIsNoFact(t *testing.T) {
	gen := &stubGenerator{}
	_, err := NewFactServiceWithGenerator(gen).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNoFact)
}

func TestNewFactService_Transports(t *testing.T) {
	cfg := &config.Config{GeminiAPIURL: "http://localhost/v1beta", GeminiAPIKey: "k", GeminiModel: "m"}

	svc, err := NewFactService(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "rest", svc.transport)

	cfg.GeminiTransport = "carrier-pigeon"
	_, err = NewFactService(context.Background(), cfg)
	assert.Error(t, err)
}

func TestFactService_SDKTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"`+echidnaFact+`"}]}}]}`)
	}))
	t.Cleanup(srv.Close)

	gen, err := NewGeminiSDKGenerator(context.Background(), srv.URL+"/v1beta", "test-key", "gemini-2.0-flash", srv.Client())
	require.NoError(t, err)

	fact, err := NewFactServiceWithGenerator(gen).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, echidnaFact, fact)
}

func TestSplitAPIVersion(t *testing.T) {
	base, version := splitAPIVersion("https://generativelanguage.googleapis.com/v1beta")
	assert.Equal(t, "https://generativelanguage.googleapis.com/", base)
	assert.Equal(t, "v1beta", version)

	base, version = splitAPIVersion("https://proxy.internal/gemini/v1/")
	assert.Equal(t, "https://proxy.internal/gemini/", base)
	assert.Equal(t, "v1", version)

	base, version = splitAPIVersion("https://proxy.internal")
	assert.Equal(t, "https://proxy.internal", base)
	assert.Empty(t, version)
}
