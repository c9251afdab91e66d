package loaders

import (
	"regexp"
	"strings"
)

// Patterns for header/footer noise commonly found in academic PDFs.
var (
	tripleBlank   = regexp.MustCompile(`\n\s*\n\s*\n`)
	horizontalWS  = regexp.MustCompile(`[ \t]+`)
	bareNumber    = regexp.MustCompile(`(?m)^\d+\s*$`)
	pageLabel     = regexp.MustCompile(`(?m)^\s*Page\s+\d+\s*$`)
	urlPattern    = regexp.MustCompile(`https?://[^\s]+`)
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	bulletRun     = regexp.MustCompile(`[•·▪▫◦‣⁃]{2,}`)
	dashRun       = regexp.MustCompile(`-{3,}`)
	equalsRun     = regexp.MustCompile(`={3,}`)
)

// CleanText normalizes raw extracted page text: it collapses whitespace,
// strips standalone page numbers, URLs and email addresses, and squashes
// decorative bullet/dash/equals runs.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = tripleBlank.ReplaceAllString(text, "\n\n")
	text = horizontalWS.ReplaceAllString(text, " ")

	text = bareNumber.ReplaceAllString(text, "")
	text = pageLabel.ReplaceAllString(text, "")

	text = urlPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")

	text = bulletRun.ReplaceAllString(text, "• ")
	text = dashRun.ReplaceAllString(text, "---")
	text = equalsRun.ReplaceAllString(text, "===")

	text = tripleBlank.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
