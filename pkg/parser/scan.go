package parser

import (
	"bufio"
	"io"
	"strings"
)

// commentMarker starts a comment that runs to the end of the line.
const commentMarker = "#"

// Statement is a sanitized input line: comment stripped, whitespace
// trimmed, guaranteed non-empty, tagged with its 1-based position in the
// original file.
type Statement struct {
	Text       string
	LineNumber int
}

// Scanner yields the non-empty sanitized statements of a line-oriented
// input. Line numbers always advance by one raw input line, including for
// blank and comment-only lines, so diagnostics reference the original file
// position.
type Scanner struct {
	scanner    *bufio.Scanner
	lineNumber int
	current    Statement
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{scanner: bufio.NewScanner(r)}
}

// Scan advances to the next non-empty statement. It returns false when the
// input is exhausted or a read error occurs; check Err afterwards.
func (s *Scanner) Scan() bool {
	for s.scanner.Scan() {
		s.lineNumber++
		text := sanitize(s.scanner.Text())
		if text == "" {
			continue
		}
		s.current = Statement{Text: text, LineNumber: s.lineNumber}
		return true
	}
	return false
}

// Statement returns the statement found by the last successful Scan.
func (s *Scanner) Statement() Statement { return s.current }

// Err returns the first read error encountered, if any.
func (s *Scanner) Err() error { return s.scanner.Err() }

// sanitize strips a trailing comment and surrounding whitespace from a raw
// input line.
func sanitize(text string) string {
	if i := strings.Index(text, commentMarker); i != -1 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}
