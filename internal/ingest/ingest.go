// Package ingest turns résumé and job files into cleaned plain text.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"

	"github.com/spigell/resume-matcher/internal/textnorm"
)

var (
	ErrUnsupported = errors.New("unsupported document type")
	ErrNoDocuments = errors.New("no documents found")
)

var extensions = map[string]struct{}{
	".txt": {}, ".md": {}, ".pdf": {}, ".html": {}, ".htm": {},
}

// Supported reports whether Load understands the file extension.
func Supported(path string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load extracts and cleans the text of the document at path.
func Load(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := extensions[ext]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	var text string
	switch ext {
	case ".pdf":
		text, err = pdfText(data)
	case ".html", ".htm":
		text, err = HTMLText(bytes.NewReader(data))
	default:
		text = string(data)
	}
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", path, err)
	}

	return textnorm.Clean(text), nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

const (
	noiseSelector = "script, style, noscript, nav, header, footer, form, iframe, svg"
	blockSelector = "p, li, h1, h2, h3, h4, h5, h6, tr, div, section, article"
)

// HTMLText returns the readable text of an HTML page. Navigation and scripts are
// dropped, block elements end a line and list items keep a bullet glyph.
func HTMLText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find(noiseSelector).Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("• ")
	doc.Find(blockSelector).AppendHtml("\n")

	root := doc.Find("main, article").First()
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	lines := strings.Split(root.Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n"), nil
}
