package parser

import (
	"strings"

	"github.com/alexandergillon/metromap/pkg/errors"
)

// consumeQuoted extracts the first double-quoted string from s, returning
// its contents (without the quotes) and the remaining text. Both halves are
// trimmed of surrounding whitespace.
func consumeQuoted(s string, textLineNumber int) (quoted, rest string, err error) {
	first := strings.IndexByte(s, '"')
	if first == -1 {
		return "", "", errors.New(errors.ErrCodeStructural,
			"(line %d) Double-quoted string expected.", textLineNumber)
	}
	second := strings.IndexByte(s[first+1:], '"')
	if second == -1 {
		return "", "", errors.New(errors.ErrCodeStructural,
			"(line %d) Double-quoted string expected.", textLineNumber)
	}
	second += first + 1
	return strings.TrimSpace(s[first+1 : second]), strings.TrimSpace(s[second+1:]), nil
}

// splitNames splits a comma-separated list of station names, trimming each.
func splitNames(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// consecutivePairs returns each consecutive pair of names in a
// comma-separated chain. A chain of fewer than two names is malformed.
func consecutivePairs(names []string, textLineNumber int) ([][2]string, error) {
	if len(names) < 2 {
		return nil, errors.New(errors.ErrCodeStructural,
			"(line %d) Statement has fewer than two stations when >= 2 were expected.", textLineNumber)
	}
	pairs := make([][2]string, 0, len(names)-1)
	for i := 0; i+1 < len(names); i++ {
		pairs = append(pairs, [2]string{names[i], names[i+1]})
	}
	return pairs, nil
}

// keyword returns the first whitespace-delimited token of a statement and
// the remaining text.
func keyword(text string) (kw, rest string) {
	if i := strings.IndexFunc(text, isSpace); i != -1 {
		return text[:i], strings.TrimSpace(text[i+1:])
	}
	return text, ""
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
