package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// List returns the supported documents in dir, sorted by name.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !Supported(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	return paths, nil
}

// Newest returns the most recently modified supported document in dir.
func Newest(dir string) (string, error) {
	paths, err := List(dir)
	if err != nil {
		return "", err
	}

	var newest string
	var newestTime time.Time
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest, newestTime = path, info.ModTime()
		}
	}

	if newest == "" {
		return "", fmt.Errorf("%w in %s", ErrNoDocuments, dir)
	}

	return newest, nil
}

// ResumeName is the cache file name of an imported résumé: its stem with a .txt extension.
func ResumeName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".txt"
}

// JobName is the file name of a job description saved at t.
func JobName(t time.Time) string {
	return "job_" + t.Format("150405") + ".txt"
}

// Store writes text to dir/name, creating dir when needed, and returns the path.
func Store(dir, name, text string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	return path, nil
}
