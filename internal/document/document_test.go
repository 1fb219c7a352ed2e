package document_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"errkb/internal/document"
	"errkb/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want document.Format
	}{
		{"oracle_errors.pdf", document.FormatPDF},
		{"ERRORS.PDF", document.FormatPDF},
		{"errors.txt", document.FormatText},
		{"errors.text", document.FormatText},
		{"errors.html", document.FormatHTML},
		{"errors.htm", document.FormatHTML},
	}
	for _, tt := range tests {
		got, err := document.Detect(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := document.Detect("errors.docx")
	assert.Error(t, err)
}

func TestOpen_TextSplitsPagesOnFormFeed(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "errors.txt", "page one\nORA-00001: unique\fpage two\f")

	doc, err := document.Open(path, "")
	require.NoError(t, err)
	defer doc.Close()

	require.Equal(t, 2, doc.NumPages())
	p1, err := doc.PageText(0)
	require.NoError(t, err)
	assert.Equal(t, "page one\nORA-00001: unique", p1)
	p2, err := doc.PageText(1)
	require.NoError(t, err)
	assert.Equal(t, "page two", p2)

	_, err = doc.PageText(2)
	assert.Error(t, err)
}

func TestOpen_HTMLSectionsArePages(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "errors.html", `<!DOCTYPE html>
<html><head><title>Errors</title><style>p { color: red }</style></head>
<body>
<section>
  <h2>ORA-00904: invalid identifier</h2>
  <p>Cause: The column name
     entered is invalid.</p>
  <p>Action: Enter a valid column name.<br>Retry.</p>
</section>
<section>
  <h2>ORA-00942: table or view does not exist</h2>
  <section><p>nested</p></section>
</section>
</body></html>`)

	doc, err := document.Open(path, document.FormatHTML)
	require.NoError(t, err)
	defer doc.Close()

	require.Equal(t, 2, doc.NumPages())
	p1, err := doc.PageText(0)
	require.NoError(t, err)
	assert.Equal(t, "ORA-00904: invalid identifier\nCause: The column name entered is invalid.\nAction: Enter a valid column name.\nRetry.", p1)

	p2, err := doc.PageText(1)
	require.NoError(t, err)
	assert.Equal(t, "ORA-00942: table or view does not exist\nnested", p2)
}

func TestOpen_HTMLWithoutSectionsIsOnePage(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "errors.htm", `<html><body><div>ORA-00001: unique constraint violated</div><script>var x = 1;</script></body></html>`)

	doc, err := document.Open(path, "")
	require.NoError(t, err)

	require.Equal(t, 1, doc.NumPages())
	text, err := doc.PageText(0)
	require.NoError(t, err)
	assert.Equal(t, "ORA-00001: unique constraint violated", text)
}

func TestOpen_MissingFileIsUnreadable(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.pdf")

	_, err := document.Open(missing, "")

	require.Error(t, err)
	assert.Equal(t, domain.EUNREADABLE, domain.ErrorCode(err))
}

func TestOpen_CorruptPDFIsUnreadable(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "oracle_errors.pdf", "this is not a pdf")

	_, err := document.Open(path, "")

	require.Error(t, err)
	assert.Equal(t, domain.EUNREADABLE, domain.ErrorCode(err))
}

func TestOpen_PDFRowsBecomeLines(t *testing.T) {
	t.Parallel()

	doc, err := document.Open(filepath.Join("testdata", "manual.pdf"), "")
	require.NoError(t, err)
	defer doc.Close()

	require.Equal(t, 2, doc.NumPages())

	p1, err := doc.PageText(0)
	require.NoError(t, err)
	assert.Equal(t, "ORA-00904: invalid identifier\n"+
		"Cause: The column name is invalid.\n"+
		"ORA-00942:table or view does not exist", p1)

	// Pieces of one TJ array share a position and are joined without a gap.
	p2, err := doc.PageText(1)
	require.NoError(t, err)
	assert.Equal(t, "ORA-01400:cannot insert NULL", p2)

	_, err = doc.PageText(2)
	assert.Error(t, err)
}

func TestOpen_PDFMalformedContentIsPageError(t *testing.T) {
	t.Parallel()

	doc, err := document.Open(filepath.Join("testdata", "broken_page.pdf"), document.FormatPDF)
	require.NoError(t, err)
	defer doc.Close()

	require.Equal(t, 1, doc.NumPages())
	_, err = doc.PageText(0)
	assert.Error(t, err)
}

func TestOpen_UnknownExtensionIsUnreadable(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "errors.docx", "x")

	_, err := document.Open(path, "")

	require.Error(t, err)
	assert.Equal(t, domain.EUNREADABLE, domain.ErrorCode(err))
}

func TestSource_Open(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "errors.txt", "ORA-00001: unique")
	src := document.NewSource(path, document.FormatText)

	doc, err := src.Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, doc.NumPages())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Open(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
