package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYouTubeID(t *testing.T) {
	cases := []struct {
		in   string
		id   string
		want bool
	}{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://music.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://example.com/watch?v=dQw4w9WgXcQ", "", false},
		{"some search terms", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		id, ok := YouTubeID(c.in)
		assert.Equal(t, c.want, ok, c.in)
		assert.Equal(t, c.id, id, c.in)
	}
}

func TestParseEpisodeID(t *testing.T) {
	id, err := ParseEpisodeID("https://open.spotify.com/episode/512ojhOuo1ktJprKbVcKyQ")
	require.NoError(t, err)
	assert.Equal(t, "512ojhOuo1ktJprKbVcKyQ", id)

	id, err = ParseEpisodeID("spotify:episode:512ojhOuo1ktJprKbVcKyQ")
	require.NoError(t, err)
	assert.Equal(t, "512ojhOuo1ktJprKbVcKyQ", id)

	_, err = ParseEpisodeID("https://open.spotify.com/track/512ojhOuo1ktJprKbVcKyQ")
	assert.Error(t, err)

	_, err = ParseEpisodeID("spotify:track:512ojhOuo1ktJprKbVcKyQ")
	assert.Error(t, err)
}

func TestIsSpotify(t *testing.T) {
	assert.True(t, IsSpotify("spotify:episode:abc"))
	assert.True(t, IsSpotify("https://open.spotify.com/episode/abc"))
	assert.False(t, IsSpotify("https://youtu.be/dQw4w9WgXcQ"))
}
