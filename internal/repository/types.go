package repository

import (
	"database/sql"
	"time"
)

type Repo struct {
	db *sql.DB
}

type Settings struct {
	GuildID        string
	PageSize       int
	ReplyEphemeral bool
	LinkTimestamps bool
}

// Video is a cached metadata fetch, including the raw description the
// chapter markers were parsed from.
type Video struct {
	ID          string
	Source      string
	Title       string
	Uploader    string
	Duration    int
	IsLive      bool
	Description string
	Thumbnail   string
	WebpageURL  string
	FetchedAt   time.Time
}

type Favorite struct {
	ID      int64
	GuildID string
	Author  string
	Name    string
	Query   string
}
