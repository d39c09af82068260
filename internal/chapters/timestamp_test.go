package chapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTimestamp_BareWithHours(t *testing.T) {
	secs, title := extractTimestamp("1:02:03 Intro")
	assert.Equal(t, 3723, secs)
	assert.Equal(t, "Intro", title)
}

func TestExtractTimestamp_MissingHoursDefaultsToZero(t *testing.T) {
	secs, title := extractTimestamp("2:05 Chapter Two")
	assert.Equal(t, 125, secs)
	assert.Equal(t, "Chapter Two", title)
}

func TestExtractTimestamp_BracketedInteriorWhitespace(t *testing.T) {
	secs, title := extractTimestamp("[ 1:00:00 ] Finale")
	assert.Equal(t, 3600, secs)
	assert.Equal(t, "Finale", title)
}

func TestExtractTimestamp_Parenthesized(t *testing.T) {
	secs, title := extractTimestamp("(0:45) Verse")
	assert.Equal(t, 45, secs)
	assert.Equal(t, "Verse", title)
}

func TestExtractTimestamp_StripsLeadingOrdinal(t *testing.T) {
	secs, title := extractTimestamp("1. 0:00 Intro")
	assert.Equal(t, 0, secs)
	assert.Equal(t, "Intro", title)
}

func TestExtractTimestamp_TimestampAfterTitle(t *testing.T) {
	secs, title := extractTimestamp("Middle Bit 1:30")
	assert.Equal(t, 90, secs)
	assert.Equal(t, "Middle Bit", title)
}

func TestExtractTimestamp_NoTimestampIsUntimedTitle(t *testing.T) {
	secs, title := extractTimestamp("no markers here")
	assert.Equal(t, 0, secs)
	assert.Equal(t, "no markers here", title)
}

func TestExtractTimestamp_OutOfRangeComponentsComputedLiterally(t *testing.T) {
	// No <60 validation on purpose: 1 minute 99 seconds is 159.
	secs, _ := extractTimestamp("1:99 Overflow")
	assert.Equal(t, 159, secs)
}

func TestExtractTimestamp_EmptyTitle(t *testing.T) {
	secs, title := extractTimestamp("0:00")
	assert.Equal(t, 0, secs)
	assert.Equal(t, "", title)
}
