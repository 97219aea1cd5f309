package blog

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// WordsPerMinute is the reading speed used by ReadingTime.
const WordsPerMinute = 200

var (
	reTag        = regexp.MustCompile(`<[^>]*>`)
	reWhitespace = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
)

// dateLayouts are tried in order by FormatDate.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01",
	"2006",
}

// FormatCategory turns a hyphenated tag into a label: "case-study" -> "Case Study".
func FormatCategory(category string) string {
	parts := strings.Split(category, "-")
	for i, p := range parts {
		if p != "" && p[0] >= 'a' && p[0] <= 'z' {
			parts[i] = string(p[0]-'a'+'A') + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// FormatDate renders an ISO date as "January 2, 2006". Calendar dates are
// rendered as written, without any timezone shift.
func FormatDate(date string) string {
	date = strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return "Invalid Date"
}

// WordCount strips markup tags from content and counts whitespace-separated
// tokens. Empty text counts as a single token.
func WordCount(content string) int {
	text := reTag.ReplaceAllString(content, "")
	return len(reWhitespace.Split(text, -1))
}

// ReadingTime estimates the reading time of content, e.g. "3 min read".
// The result is never below one minute.
func ReadingTime(content string) string {
	minutes := int(math.Ceil(float64(WordCount(content)) / WordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// uriUnreserved undoes QueryEscape for the characters encodeURIComponent
// leaves alone, and writes spaces as %20 rather than +.
var uriUnreserved = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s the way browsers do for a URI component.
func EncodeURIComponent(s string) string {
	return uriUnreserved.Replace(url.QueryEscape(s))
}
