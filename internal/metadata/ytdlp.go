package metadata

import (
	"context"
	"fmt"
	"sync"

	ytdlp "github.com/lrstanley/go-ytdlp"
)

var installOnce sync.Once

// helpers to safely read pointer fields with defaults
func s(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
func f(ptr *float64) float64 {
	if ptr == nil {
		return 0
	}
	return *ptr
}
func b(ptr *bool) bool {
	if ptr == nil {
		return false
	}
	return *ptr
}

// fetchYtdlp runs yt-dlp -J against a URL or ytsearch query and maps the
// result. Playlist/search containers are collapsed to their first entry.
func fetchYtdlp(ctx context.Context, query string) (*VideoInfo, error) {
	installOnce.Do(func() {
		// cmd.Run will surface availability issues if this fails
		ytdlp.MustInstall(ctx, nil)
	})

	cmd := ytdlp.New().
		NoCheckCertificates().
		DumpJSON()

	res, err := cmd.Run(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp run: %w", err)
	}

	infos, err := res.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("parse yt-dlp json: %w", err)
	}
	if len(infos) == 0 || infos[0] == nil {
		return nil, fmt.Errorf("parse yt-dlp json: no info returned")
	}
	ext := infos[0]

	if len(ext.Entries) > 0 {
		for _, e := range ext.Entries {
			if e != nil {
				ext = e
				break
			}
		}
	}

	return extractedToInfo(ext), nil
}

func extractedToInfo(e *ytdlp.ExtractedInfo) *VideoInfo {
	thumb := ""
	if n := len(e.Thumbnails); n > 0 && e.Thumbnails[n-1] != nil {
		thumb = e.Thumbnails[n-1].URL
	}
	return &VideoInfo{
		ID:          e.ID,
		Source:      SourceYouTube,
		Title:       s(e.Title),
		Uploader:    s(e.Uploader),
		Duration:    int(f(e.Duration)),
		IsLive:      b(e.IsLive),
		Description: s(e.Description),
		WebpageURL:  s(e.WebpageURL),
		Thumbnail:   thumb,
	}
}
