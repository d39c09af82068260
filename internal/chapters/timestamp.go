package chapters

import (
	"regexp"
	"strings"
)

// timestampRe matches the first timestamp in a line: bracketed, then
// parenthesized, then bare. Hours are optional in every shape. Components
// are not range-checked; 1:99 is a valid 159 seconds.
var timestampRe = regexp.MustCompile(
	`\[\s*(?:(\d+):)?(\d{1,2}):(\d{2})\s*\]` +
		`|\(\s*(?:(\d+):)?(\d{1,2}):(\d{2})\s*\)` +
		`|(?:(\d+):)?(\d{1,2}):(\d{2})`)

// ordinalRe strips a track-number prefix ("1. ") left at the head of a line
// once its timestamp is removed.
var ordinalRe = regexp.MustCompile(`^\d+\.\s+`)

// extractTimestamp locates the first timestamp in a line and returns its
// total seconds together with the rest of the line as the title. A line
// without any timestamp is treated as an untimed title at 0 rather than
// discarded.
func extractTimestamp(line string) (int, string) {
	m := timestampRe.FindStringSubmatchIndex(line)
	if m == nil {
		return 0, line
	}

	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return line[m[2*i]:m[2*i+1]]
	}

	// Three capture groups per alternative; the minutes group of whichever
	// alternative matched is always present.
	var hours, minutes, seconds string
	for _, base := range []int{1, 4, 7} {
		if group(base+1) != "" {
			hours, minutes, seconds = group(base), group(base+1), group(base+2)
			break
		}
	}
	total := atoi(hours)*3600 + atoi(minutes)*60 + atoi(seconds)

	title := line[:m[0]] + line[m[1]:]
	title = ordinalRe.ReplaceAllString(title, "")
	return total, strings.TrimSpace(title)
}

// atoi reads the digits of s, ignoring anything else. Empty input is 0.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			n = n*10 + int(c-'0')
		}
	}
	return n
}
