package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type fakeModels struct {
	mu      sync.Mutex
	queue   []fakeResponse
	prompts []string
	configs []*genai.GenerateContentConfig
}

func (f *fakeModels) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func (f *fakeModels) GenerateContent(_ context.Context, _ string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	for _, content := range contents {
		for _, part := range content.Parts {
			f.prompts = append(f.prompts, part.Text)
		}
	}
	f.configs = append(f.configs, config)
	return res.resp, res.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func newTestGenerator(models *fakeModels, retries int) *Generator {
	return &Generator{
		models:     models,
		modelName:  "gemini-test",
		maxRetries: retries,
		logger:     zap.NewNop(),
	}
}

func TestGeneratorRetriesOnTemporaryError(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	models.enqueue(textResponse(`{"polarity": 0.4}`), nil)

	output, err := newTestGenerator(models, 2).GenerateContent(context.Background(), "  rate this  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != `{"polarity": 0.4}` {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(models.prompts) != 2 || models.prompts[0] != "rate this" {
		t.Fatalf("unexpected prompts: %+v", models.prompts)
	}

	for _, cfg := range models.configs {
		if cfg == nil || cfg.ResponseMIMEType != "application/json" {
			t.Fatalf("expected json response type, got %+v", cfg)
		}
	}
}

func TestGeneratorStopsAfterRetriesExhausted(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	tempErr := genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"}
	models.enqueue(nil, tempErr)
	models.enqueue(nil, tempErr)

	_, err := newTestGenerator(models, 2).GenerateContent(context.Background(), "rate this")
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}

	if len(models.prompts) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.prompts))
	}
}

func TestGeneratorBackoffHonoursContext(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"})

	g := newTestGenerator(models, 3)
	g.backoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.GenerateContent(ctx, "rate this")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if len(models.prompts) != 1 {
		t.Fatalf("expected single call before backoff, got %d", len(models.prompts))
	}
}

func TestWait(t *testing.T) {
	t.Parallel()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	if err := wait(cancelled, 0); err != nil {
		t.Fatalf("expected nil for zero duration, got %v", err)
	}

	if err := wait(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("expected nil after timer, got %v", err)
	}

	if err := wait(cancelled, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGeneratorDoesNotRetryOnClientError(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"})

	_, err := newTestGenerator(models, 3).GenerateContent(context.Background(), "rate this")
	if err == nil {
		t.Fatal("expected error for invalid request")
	}

	if len(models.prompts) != 1 {
		t.Fatalf("expected single call, got %d", len(models.prompts))
	}
}

func TestGeneratorRejectsEmptyResponse(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	models.enqueue(textResponse("   "), nil)

	if _, err := newTestGenerator(models, 1).GenerateContent(context.Background(), "rate this"); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestGeneratorRequiresPrompt(t *testing.T) {
	t.Parallel()

	if _, err := newTestGenerator(&fakeModels{}, 1).GenerateContent(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty prompt")
	}

	var g *Generator
	if _, err := g.GenerateContent(context.Background(), "rate this"); err == nil {
		t.Fatal("expected error for nil generator")
	}
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := NewGenerator(context.Background(), "  ", "", 0, nil); err == nil {
		t.Fatal("expected error without api key")
	}
}
