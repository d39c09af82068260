package metadata

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/chapbot/chapbot/internal/config"
)

// Resolver turns a user query (URL, URI or free text) into VideoInfo.
type Resolver struct {
	cfg *config.Config
}

func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve classifies the query and fetches metadata for it. Spotify episode
// links go through the Spotify API, any other URL through yt-dlp directly,
// and free text becomes a single-result YouTube search.
func (r *Resolver) Resolve(ctx context.Context, query string) (*VideoInfo, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("empty query")
	}

	if IsSpotify(q) {
		if r.cfg.SpotifyClientID == "" || r.cfg.SpotifyClientSecret == "" {
			return nil, fmt.Errorf("spotify is not enabled")
		}
		id, err := ParseEpisodeID(q)
		if err != nil {
			return nil, err
		}
		sp, err := NewSpotifyClient(r.cfg.SpotifyClientID, r.cfg.SpotifyClientSecret)
		if err != nil {
			return nil, fmt.Errorf("spotify auth: %w", err)
		}
		return sp.GetEpisode(ctx, id)
	}

	if strings.HasPrefix(q, "http://") || strings.HasPrefix(q, "https://") {
		return fetchYtdlp(ctx, q)
	}

	return fetchYtdlp(ctx, "ytsearch1:"+q)
}

var ytIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// YouTubeID extracts the 11-character watch ID from the usual URL shapes, or
// accepts a bare ID. Used to key the lookup cache before anything is fetched.
func YouTubeID(raw string) (string, bool) {
	q := strings.TrimSpace(raw)
	if ytIDRe.MatchString(q) {
		return q, true
	}
	u, err := url.Parse(q)
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.TrimPrefix(u.Host, "www.")
	switch host {
	case "youtu.be":
		id := strings.Trim(u.Path, "/")
		if ytIDRe.MatchString(id) {
			return id, true
		}
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if id := u.Query().Get("v"); ytIDRe.MatchString(id) {
			return id, true
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) == 2 && (parts[0] == "shorts" || parts[0] == "live" || parts[0] == "embed") && ytIDRe.MatchString(parts[1]) {
			return parts[1], true
		}
	}
	return "", false
}
