package metadata

const (
	SourceYouTube = "youtube"
	SourceSpotify = "spotify"
)

// VideoInfo is the metadata the bot needs about one video or episode: enough
// to render a header and the raw description text the chapter engine runs on.
type VideoInfo struct {
	ID          string
	Source      string // SourceYouTube or SourceSpotify
	Title       string
	Uploader    string
	Duration    int // seconds
	IsLive      bool
	Description string
	WebpageURL  string
	Thumbnail   string
}
