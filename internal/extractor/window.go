package extractor

import (
	"regexp"
	"strings"
)

// lineBreak matches the same line boundaries as a universal-newline split:
// CRLF, CR, LF, vertical tab, form feed, file/group/record separators, NEL and
// the Unicode line and paragraph separators.
var lineBreak = regexp.MustCompile("\r\n|[\n\r\v\f\x1c\x1d\x1e\u0085\u2028\u2029]")

// splitLines splits page text into physical lines. A trailing line break does
// not produce a trailing empty line; blank lines in between are kept because
// they count towards the explanation window.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := lineBreak.Split(text, -1)
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// joinWindow joins lines[start:start+size] with single spaces and trims the
// result. The window never crosses the end of lines.
func joinWindow(lines []string, start, size int) string {
	end := start + size
	if end > len(lines) {
		end = len(lines)
	}
	return strings.TrimSpace(strings.Join(lines[start:end], " "))
}
