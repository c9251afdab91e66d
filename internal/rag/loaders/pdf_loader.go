package loaders

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"studymate/internal/rag/interfaces"
	"studymate/pkg/logger"
)

// NoTextSentinel is returned when a document parses fine but no page yields
// any text. It distinguishes "nothing found" (likely a scanned or image-based
// PDF that needs OCR) from a parse failure.
const NoTextSentinel = "No text content could be extracted from this PDF. This might be a scanned document or image-based PDF that requires OCR processing."

// DocumentUnreadableError reports that a file's bytes could not be parsed as
// a PDF at all.
type DocumentUnreadableError struct {
	Filename string
	Err      error
}

func (e *DocumentUnreadableError) Error() string {
	return fmt.Sprintf("document %q is not a readable PDF: %v", e.Filename, e.Err)
}

func (e *DocumentUnreadableError) Unwrap() error {
	return e.Err
}

// PdfLoader implements the Loader interface for PDF documents. Text encoding
// varies widely across PDFs and any single extraction method can silently
// produce nothing for a page, so each page is run through a preference-ordered
// list of strategies until one yields text.
type PdfLoader struct {
	log *logger.Logger
}

// NewPdfLoader creates a new PdfLoader.
func NewPdfLoader(log *logger.Logger) *PdfLoader {
	return &PdfLoader{log: log}
}

// extraction is the typed outcome of one strategy on one page: text, a
// legitimately empty page, or a strategy failure.
type extraction struct {
	text string
	err  error
}

func (e extraction) empty() bool {
	return e.err == nil && strings.TrimSpace(e.text) == ""
}

// Load parses the PDF bytes and returns the cleaned text of all pages joined
// by blank lines. When every page comes back empty it returns NoTextSentinel;
// when the bytes are not a PDF it returns a DocumentUnreadableError.
func (l *PdfLoader) Load(ctx context.Context, name string, data []byte) (text string, err error) {
	// The pdf package panics on some malformed cross-reference tables
	// instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &DocumentUnreadableError{Filename: name, Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DocumentUnreadableError{Filename: name, Err: err}
	}

	var pages []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		raw := l.extractPage(name, i, page)
		if strings.TrimSpace(raw) == "" {
			continue
		}

		cleaned := CleanText(raw)
		if cleaned != "" {
			pages = append(pages, cleaned)
		}
	}

	if len(pages) == 0 {
		l.log.Warn(fmt.Sprintf("No text content extracted from %s. This might be a scanned or image-based PDF.", name))
		return NoTextSentinel, nil
	}

	full := strings.Join(pages, "\n\n")
	l.log.Info(fmt.Sprintf("Extracted %d characters from %s (%d pages)", len(full), name, numPages))
	return full, nil
}

// extractPage tries each strategy in order of decreasing preference and
// returns the first non-empty result.
func (l *PdfLoader) extractPage(name string, pageNum int, page pdf.Page) string {
	strategies := []struct {
		name string
		run  func(pdf.Page) extraction
	}{
		{"plain", extractPlain},
		{"rows", extractRows},
		{"blocks", extractBlocks},
	}

	for _, strategy := range strategies {
		out := strategy.run(page)
		if out.err != nil {
			l.log.Debug(fmt.Sprintf("%s page %d: %s extraction failed: %v", name, pageNum, strategy.name, out.err))
			continue
		}
		if !out.empty() {
			return out.text
		}
	}
	return ""
}

// extractPlain reads the page's text layer directly.
func extractPlain(page pdf.Page) (out extraction) {
	defer recoverExtraction(&out)

	text, err := page.GetPlainText(nil)
	if err != nil {
		return extraction{err: err}
	}
	return extraction{text: text}
}

// extractRows walks the page's rows, which copes with pages whose text layer
// uses encodings the plain extractor cannot decode.
func extractRows(page pdf.Page) (out extraction) {
	defer recoverExtraction(&out)

	rows, err := page.GetTextByRow()
	if err != nil {
		return extraction{err: err}
	}

	var sb strings.Builder
	for _, row := range rows {
		for _, word := range row.Content {
			sb.WriteString(word.S)
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return extraction{text: sb.String()}
}

// extractBlocks reads the raw positioned text objects as a last resort,
// inserting line breaks whenever the vertical position changes.
func extractBlocks(page pdf.Page) (out extraction) {
	defer recoverExtraction(&out)

	content := page.Content()

	var sb strings.Builder
	lastY := -1.0
	for _, t := range content.Text {
		if lastY >= 0 && t.Y != lastY {
			sb.WriteByte('\n')
		}
		sb.WriteString(t.S)
		lastY = t.Y
	}
	return extraction{text: sb.String()}
}

func recoverExtraction(out *extraction) {
	if r := recover(); r != nil {
		*out = extraction{err: fmt.Errorf("parser panic: %v", r)}
	}
}

var _ interfaces.Loader = (*PdfLoader)(nil)
