package metadata

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

// SpotifyClient fetches podcast episode metadata. Episode show notes carry
// the same timestamp conventions as YouTube descriptions.
type SpotifyClient struct {
	raw *spotify.Client
}

func NewSpotifyClient(clientID, clientSecret string) (*SpotifyClient, error) {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	httpClient := cfg.Client(context.Background())
	cl := spotify.New(httpClient, spotify.WithRetry(true))
	return &SpotifyClient{raw: cl}, nil
}

// IsSpotify reports whether a query points at Spotify at all.
func IsSpotify(q string) bool {
	return strings.HasPrefix(q, "spotify:") || strings.Contains(q, "open.spotify.com")
}

// ParseEpisodeID extracts the episode ID from a spotify:episode: URI or an
// open.spotify.com/episode/... URL. Only episodes have descriptions worth
// mining; other Spotify types are rejected.
func ParseEpisodeID(raw string) (string, error) {
	if strings.HasPrefix(raw, "spotify:") {
		parts := strings.Split(raw, ":")
		if len(parts) == 3 && parts[1] == "episode" {
			return parts[2], nil
		}
		return "", fmt.Errorf("not a spotify episode URI")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host != "open.spotify.com" && u.Host != "www.open.spotify.com" {
		return "", fmt.Errorf("not a spotify URL")
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "episode" {
		return parts[1], nil
	}
	return "", fmt.Errorf("only spotify episodes have descriptions")
}

func (c *SpotifyClient) GetEpisode(ctx context.Context, id string) (*VideoInfo, error) {
	ep, err := c.raw.GetEpisode(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("spotify episode: %w", err)
	}
	thumb := ""
	if len(ep.Images) > 0 {
		thumb = ep.Images[0].URL
	}
	return &VideoInfo{
		ID:          id,
		Source:      SourceSpotify,
		Title:       ep.Name,
		Uploader:    ep.Show.Name,
		Duration:    int(ep.Duration_ms) / 1000,
		Description: ep.Description,
		WebpageURL:  ep.ExternalURLs["spotify"],
		Thumbnail:   thumb,
	}, nil
}
