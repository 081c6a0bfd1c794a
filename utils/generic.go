package utils

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// Marker appended to shortened strings.
	shortenMarker = "[...]"
)

// TimeNow returns epoch UTC.
func TimeNow() int64 {
	return time.Now().UTC().Unix()
}

// GetStringArray splits comma-separated list of names.
// Quoted parts and bracketed groups are kept as a single token,
// surrounding whitespace is trimmed and a wrapping pair of matching quotes removed.
func GetStringArray(list string) []string {
	result := make([]string, 0)
	for _, v := range splitList(list, ',') {
		v = removeQuotes(strings.TrimSpace(v))
		if "" == v {
			continue
		}

		result = append(result, v)
	}

	return result
}

// Splits string by the separator respecting quotes and brackets.
func splitList(list string, separator rune) []string {
	parts := make([]string, 0)
	current := strings.Builder{}
	var quote rune
	depth := 0
	escaped := false

	for _, r := range list {
		switch {
		case escaped:
			escaped = false
		case '\\' == r && 0 != quote:
			escaped = true
		case 0 != quote:
			if r == quote {
				quote = 0
			}
		case '"' == r || '\'' == r:
			quote = r
		case '[' == r:
			depth++
		case ']' == r && depth > 0:
			depth--
		case separator == r && 0 == depth:
			parts = append(parts, current.String())
			current.Reset()
			continue
		}

		current.WriteRune(r)
	}

	return append(parts, current.String())
}

// Removes a pair of matching quotes around the value.
func removeQuotes(value string) string {
	if len(value) < 2 {
		return value
	}

	first := value[0]
	last := value[len(value)-1]
	if first == last && ('"' == first || '\'' == first) {
		return value[1 : len(value)-1]
	}

	return value
}

// ShortenIfNeeded truncates text to the max length in bytes, marking the cut.
// Cut never splits a multi-byte character.
func ShortenIfNeeded(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}

	cut := maxLength - len(shortenMarker)
	if cut < 0 {
		cut = 0
	}

	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}

	return text[:cut] + shortenMarker
}
