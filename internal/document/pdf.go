package document

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfDocument reads page text lazily; pages are rebuilt row by row so that
// every visual line of the manual becomes one line of text.
type pdfDocument struct {
	file   *os.File
	reader *pdf.Reader
}

func openPDF(path string) (*pdfDocument, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	return &pdfDocument{file: f, reader: r}, nil
}

func (d *pdfDocument) NumPages() int { return d.reader.NumPage() }

func (d *pdfDocument) PageText(n int) (text string, err error) {
	if n < 0 || n >= d.reader.NumPage() {
		return "", fmt.Errorf("page %d out of range (document has %d pages)", n+1, d.reader.NumPage())
	}
	// The pdf package panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", n+1, r)
		}
	}()

	p := d.reader.Page(n + 1)
	if p.V.IsNull() {
		return "", nil
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("page %d: %w", n+1, err)
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, joinRow(row.Content))
	}
	return strings.Join(lines, "\n"), nil
}

// joinRow joins the text runs of one row in x order. Runs placed at different
// x positions are separate words and get one space between them. Runs sharing
// a position come from the same text operator (the pieces of a TJ array) and
// are concatenated, because their kerning offsets are not reported.
func joinRow(runs pdf.TextHorizontal) string {
	var b strings.Builder
	var lastX float64
	for _, run := range runs {
		if run.S == "" {
			continue
		}
		if b.Len() > 0 && run.X != lastX && !endsInSpace(b.String()) && !startsWithSpace(run.S) {
			b.WriteByte(' ')
		}
		b.WriteString(run.S)
		lastX = run.X
	}
	return b.String()
}

func endsInSpace(s string) bool {
	return strings.HasSuffix(s, " ") || strings.HasSuffix(s, "\t")
}

func startsWithSpace(s string) bool {
	return strings.HasPrefix(s, " ") || strings.HasPrefix(s, "\t")
}

func (d *pdfDocument) Close() error { return d.file.Close() }
