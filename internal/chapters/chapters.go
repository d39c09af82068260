// Package chapters extracts chapter markers (start offset + title) from
// free-form video description text. Descriptions follow several human
// conventions for chapter lists; each one is described by a format below and
// tried in order of how constrained it is.
package chapters

import (
	"regexp"
	"strings"
)

// Chapter is one named section of a video.
type Chapter struct {
	Start int    // offset from the beginning, in seconds
	Title string // may be empty when the line carried no text besides the timestamp
}

// format recognizes one chapter-list convention. start locates the line the
// list begins on; line decides whether a given line is a chapter entry. The
// actual values are always recovered by extractTimestamp, so line is purely
// an acceptance predicate.
type format struct {
	name  string
	start *regexp.Regexp
	line  *regexp.Regexp
}

var (
	rePostfix      = regexp.MustCompile(`(?m)^(?:\d+\.\s+)?(.+?)\s+(?:\d+:)?\d{1,2}:\d{2}$`)
	rePostfixParen = regexp.MustCompile(`(?m)^(?:\d+\.\s+)?(.+?)\s+\(\s*(?:\d+:)?\d{1,2}:\d{2}\s*\)$`)
	rePrefix       = regexp.MustCompile(`(?m)^(?:\d+\.\s+)?(?:\d+:)?\d{1,2}:\d{2}\s+(.+)$`)
)

// formats, most constrained first. The brackets start is deliberately not
// multi-line: a bracketed list only counts when it opens the description.
var formats = []*format{
	{
		name:  "lawful",
		start: regexp.MustCompile(`(?m)^0{1,2}:00`),
		line:  regexp.MustCompile(`(?:\d+:)?\d{1,2}:\d{2}\s+.+`),
	},
	{
		name:  "brackets",
		start: regexp.MustCompile(`^\[0{1,2}:00\]`),
		line:  regexp.MustCompile(`\[\s*(?:\d+:)?\d{1,2}:\d{2}\s*\]\s+.+`),
	},
	{
		name:  "parens",
		start: regexp.MustCompile(`(?m)^\(0{1,2}:00\)`),
		line:  regexp.MustCompile(`\(\s*(?:\d+:)?\d{1,2}:\d{2}\s*\)\s+.+`),
	},
	{name: "postfix", start: rePostfix, line: rePostfix},
	{name: "postfix-parens", start: rePostfixParen, line: rePostfixParen},
	{name: "prefix", start: rePrefix, line: rePrefix},
}

// Parse extracts chapter markers from a description. Formats are tried in
// order; the first one yielding at least one chapter wins. An unrecognized
// description yields an empty list, never an error. Parse is pure and safe
// for concurrent use.
func Parse(description string) []Chapter {
	for _, f := range formats {
		if out := f.parse(description); len(out) > 0 {
			return out
		}
	}
	return nil
}

func (f *format) parse(description string) []Chapter {
	lines := nonEmptyLines(description)
	if len(lines) == 0 {
		return nil
	}

	// Start patterns run against the joined text so multi-line anchors can
	// pick any line while plain ^ only fires on the first one.
	joined := strings.Join(lines, "\n")
	loc := f.start.FindStringIndex(joined)
	if loc == nil {
		return nil
	}
	first := strings.Count(joined[:loc[0]], "\n")

	var out []Chapter
	for _, line := range lines[first:] {
		if !f.line.MatchString(line) {
			continue
		}
		secs, title := extractTimestamp(line)
		out = append(out, Chapter{Start: secs, Title: title})
	}
	return out
}

// nonEmptyLines splits a description into its lines, dropping empty and
// whitespace-only ones. A trailing \r is stripped so $-anchored patterns
// behave on CRLF input; lines are otherwise left untrimmed.
func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
