package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"

	"github.com/spigell/resume-matcher/internal/analysis"
	"github.com/spigell/resume-matcher/internal/ingest"
)

const masterListName = "master_bullet_list.txt"

func loadDocument(path string) (analysis.Document, error) {
	text, err := ingest.Load(path)
	if err != nil {
		return analysis.Document{}, err
	}
	return analysis.Document{Name: filepath.Base(path), Text: text}, nil
}

func loadDocuments(paths []string) ([]analysis.Document, error) {
	docs := make([]analysis.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := loadDocument(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// resolveJob returns the explicit job path or the newest job in dir.
func resolveJob(explicit, dir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return ingest.Newest(dir)
}

// resolveResumes returns the explicit résumé, an interactively picked one, or every
// résumé in dir.
func resolveResumes(explicit string, pick bool, dir string) ([]string, error) {
	if explicit != "" {
		return []string{explicit}, nil
	}

	paths, err := ingest.List(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ingest.ErrNoDocuments, dir)
	}

	if !pick {
		return paths, nil
	}

	items := make([]string, 0, len(paths))
	for _, path := range paths {
		items = append(items, filepath.Base(path))
	}

	resumePrompt := promptui.Select{
		Label: "Choose a resume and press ENTER",
		Items: items,
	}

	idx, _, err := resumePrompt.Run()
	if err != nil {
		return nil, err
	}

	return []string{paths[idx]}, nil
}

// openOutput returns stdout or a created file together with its closer.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}

	return f, f.Close, nil
}
