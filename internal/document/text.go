package document

import (
	"os"
	"strings"
)

// pageBreak separates pages in plain-text exports (pdftotext writes it after
// every page).
const pageBreak = "\f"

func openText(path string) (pages, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return splitPages(string(data)), nil
}

func splitPages(content string) pages {
	content = strings.TrimSuffix(content, pageBreak)
	if content == "" {
		return pages{}
	}
	return pages(strings.Split(content, pageBreak))
}
