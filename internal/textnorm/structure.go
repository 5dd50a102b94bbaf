package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// BulletGlyphs are the list markers recognised inside running text.
const BulletGlyphs = "•·▪●◦‣"

var (
	headerMarkers = regexp.MustCompile(`(?:^|\s+)#{1,6}\s+`)
	glyphMarkers  = regexp.MustCompile(`\s*[` + BulletGlyphs + `]\s*`)
	listMarkers   = regexp.MustCompile(`(?m)(?:^|\s+)[-*+]\s+`)
	blankRuns     = regexp.MustCompile(`\n[ \t]*(?:\n[ \t]*)+`)

	boilerplate     = regexp.MustCompile(`(?i)references\s+available\s+upon\s+request\.?`)
	trailingSpaces  = regexp.MustCompile(`(?m)[ \t]+$`)
	lineBreakFixups = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// SplitStructure turns header and list markers into line breaks so that a section
// encoded with symbols is not segmented as one long statement.
func SplitStructure(text string) string {
	text = headerMarkers.ReplaceAllString(text, "\n")
	text = glyphMarkers.ReplaceAllString(text, "\n")
	text = listMarkers.ReplaceAllString(text, "\n")
	text = blankRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// Clean prepares extracted document text: unified line endings, NFC composition,
// no "references available upon request" boilerplate and no trailing blanks.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = lineBreakFixups.Replace(text)
	text = norm.NFC.String(text)
	text = boilerplate.ReplaceAllString(text, "")
	text = trailingSpaces.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}
