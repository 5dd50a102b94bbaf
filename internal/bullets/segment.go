// Package bullets extracts candidate statements from a document and ranks them
// against a target document.
package bullets

import (
	"regexp"
	"strings"

	"github.com/spigell/resume-matcher/internal/textnorm"
)

var statementBreaks = regexp.MustCompile(`\n+|[` + textnorm.BulletGlyphs + `]|\.(?:\s+|$)`)

const markerCutset = "-*+ \t"

// Segment splits raw text into statements on newlines, bullet glyphs and
// sentence-ending periods. A period inside a token such as "node.js" does not split.
func Segment(raw string) []string {
	parts := statementBreaks.Split(raw, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimLeft(strings.TrimSpace(part), markerCutset)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
