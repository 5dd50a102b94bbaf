package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/config"
)

func TestResolveJob(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "job_100000.txt")
	newer := filepath.Join(dir, "job_110000.txt")
	for _, path := range []string{older, newer} {
		if err := os.WriteFile(path, []byte("job"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got, err := resolveJob("", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != newer {
		t.Fatalf("expected newest job %q, got %q", newer, got)
	}

	if got, _ := resolveJob("explicit.txt", dir); got != "explicit.txt" {
		t.Fatalf("expected explicit path, got %q", got)
	}
}

func TestResolveResumes(t *testing.T) {
	dir := t.TempDir()

	if _, err := resolveResumes("", false, dir); err == nil {
		t.Fatal("expected error for empty directory")
	}

	for _, name := range []string{"b.txt", "a.md", "skip.docx"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("cv"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	got, err := resolveResumes("", false, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || filepath.Base(got[0]) != "a.md" || filepath.Base(got[1]) != "b.txt" {
		t.Fatalf("unexpected resumes: %v", got)
	}

	got, err = resolveResumes("cv.pdf", true, dir)
	if err != nil || len(got) != 1 || got[0] != "cv.pdf" {
		t.Fatalf("expected explicit resume, got %v, %v", got, err)
	}
}

func TestOpenOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "report.txt")

	w, closeOut, err := openOutput(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := w.Write([]byte("report")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := closeOut(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "report" {
		t.Fatalf("unexpected file content %q, %v", data, err)
	}

	w, closeOut, err = openOutput("")
	if err != nil || w != os.Stdout || closeOut() != nil {
		t.Fatalf("expected stdout for empty path")
	}
}

func TestNewPolarityScorer(t *testing.T) {
	t.Setenv(config.GeminiKeyEnv, "")
	ctx := context.Background()

	scorer, err := newPolarityScorer(ctx, config.PolarityConfig{Provider: config.ProviderLexicon}, zap.NewNop())
	if err != nil || scorer != nil {
		t.Fatalf("expected built-in lexicon, got %v, %v", scorer, err)
	}

	if _, err := newPolarityScorer(ctx, config.PolarityConfig{Provider: "oracle"}, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown provider")
	}

	if _, err := newPolarityScorer(ctx, config.PolarityConfig{Provider: config.ProviderGemini}, zap.NewNop()); err == nil {
		t.Fatal("expected error without gemini api key")
	}
}
