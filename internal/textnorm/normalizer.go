package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"go-trivia-watcher/pkg/models"
)

// noiseToken matches the standalone negation word the broadcast overlays
// on questions; it is OCR noise for search purposes. Go's RE2 has no \b
// for non-ASCII letters, so the boundaries are spelled out.
var noiseToken = regexp.MustCompile(`(?i)(^|[^\p{L}])не([^\p{L}]|$)`)

var glyphReplacer = strings.NewReplacer("«", `"`, "»", `"`, "\n", " ")

// collapseWhitespace reduces every run of two or more identical whitespace
// characters to a single one and trims the ends.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		if unicode.IsSpace(r) && r == prev {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return strings.TrimSpace(b.String())
}

// Question cleans a raw OCR question: lowercase, whitespace collapse, drop
// the rendering-noise first line when present, strip the noise token, and
// translate curly quotes and leftover newlines.
func Question(raw string) string {
	s := collapseWhitespace(strings.ToLower(raw))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	for {
		replaced := noiseToken.ReplaceAllString(s, "$1$2")
		if replaced == s {
			break
		}
		s = replaced
	}
	return glyphReplacer.Replace(s)
}

// Answers splits raw OCR button text into one entry per line, lowercased
// with per-line whitespace collapse. Empty and duplicate lines are kept in
// place so answer order is preserved.
func Answers(raw string) []string {
	lines := strings.Split(strings.TrimSpace(strings.ToLower(raw)), "\n")
	for i, line := range lines {
		lines[i] = collapseWhitespace(line)
	}
	return lines
}

// Normalize builds the final result from the two raw OCR outputs.
func Normalize(rawQuestion, rawAnswers string) models.Result {
	return models.Result{
		Question: Question(rawQuestion),
		Answers:  Answers(rawAnswers),
	}
}
