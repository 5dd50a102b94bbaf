package bullets

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spigell/resume-matcher/internal/textnorm"
)

// MasterListHeader opens every master bullet list file.
const MasterListHeader = "=== MASTER BULLET LIST ==="

const defaultGlyph = "• "

// StripMarker trims the line and removes a leading bullet glyph or list marker.
func StripMarker(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), textnorm.BulletGlyphs+markerCutset))
}

// Aggregate collects every statement from the documents into one sorted list without
// exact duplicates.
func Aggregate(docs []string) []string {
	unique := make(map[string]struct{})
	for _, doc := range docs {
		for _, statement := range Segment(textnorm.SplitStructure(doc)) {
			unique[statement] = struct{}{}
		}
	}

	out := make([]string, 0, len(unique))
	for statement := range unique {
		out = append(out, statement)
	}
	sort.Strings(out)

	return out
}

// WriteMasterList writes the header followed by one bullet per line. Lines that
// already start with a marker are written as they are.
func WriteMasterList(w io.Writer, statements []string) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n\n", MasterListHeader); err != nil {
		return err
	}

	for _, s := range statements {
		if !strings.HasPrefix(s, "•") && !strings.HasPrefix(s, "-") && !strings.HasPrefix(s, "*") {
			s = defaultGlyph + s
		}
		if _, err := fmt.Fprintln(bw, s); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadMasterList returns the non-blank lines of a master list, without its header.
func ReadMasterList(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == MasterListHeader {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading master list: %w", err)
	}
	return lines, nil
}
