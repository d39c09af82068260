package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/chapbot/chapbot/internal/chapters"
)

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertSettings(ctx context.Context, guild string) (*Settings, error) {
	_, _ = r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings(guild_id) VALUES (?)`, guild,
	)
	return r.GetSettings(ctx, guild)
}

func (r *Repo) GetSettings(ctx context.Context, guild string) (*Settings, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT guild_id, page_size, reply_ephemeral, link_timestamps
	FROM settings WHERE guild_id = ?`, guild)

	var s Settings
	var b1, b2 int
	if err := row.Scan(&s.GuildID, &s.PageSize, &b1, &b2); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	s.ReplyEphemeral = b1 != 0
	s.LinkTimestamps = b2 != 0
	return &s, nil
}

func (r *Repo) UpdateSettings(ctx context.Context, s *Settings) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE settings SET
		  page_size=?,
		  reply_ephemeral=?,
		  link_timestamps=?
		WHERE guild_id=?`,
		s.PageSize, boolToInt(s.ReplyEphemeral), boolToInt(s.LinkTimestamps), s.GuildID,
	)
	return err
}

// SaveVideo stores a fetched video and its parsed chapter list in one
// transaction, replacing any previous fetch of the same video.
func (r *Repo) SaveVideo(ctx context.Context, v *Video, chs []chapters.Chapter) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO videos(id, source, title, uploader, duration, is_live, description, thumbnail, webpage_url, fetched_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		v.ID, v.Source, v.Title, v.Uploader, v.Duration, boolToInt(v.IsLive),
		v.Description, v.Thumbnail, v.WebpageURL, v.FetchedAt.Unix(),
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM chapters WHERE video_id=?`, v.ID); err != nil {
		return err
	}
	for i, c := range chs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chapters(video_id, idx, start_seconds, title) VALUES (?,?,?,?)`,
			v.ID, i, c.Start, c.Title,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repo) GetVideo(ctx context.Context, id string) (*Video, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, source, title, uploader, duration, is_live, description, thumbnail, webpage_url, fetched_at
	FROM videos WHERE id = ?`, id)

	var v Video
	var live int
	var fetched int64
	if err := row.Scan(&v.ID, &v.Source, &v.Title, &v.Uploader, &v.Duration,
		&live, &v.Description, &v.Thumbnail, &v.WebpageURL, &fetched); err != nil {
		return nil, err
	}
	v.IsLive = live != 0
	v.FetchedAt = time.Unix(fetched, 0)
	return &v, nil
}

func (r *Repo) GetChapters(ctx context.Context, videoID string) ([]chapters.Chapter, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT start_seconds, title FROM chapters WHERE video_id=? ORDER BY idx ASC`, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []chapters.Chapter
	for rows.Next() {
		var c chapters.Chapter
		if err := rows.Scan(&c.Start, &c.Title); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// PruneBefore drops cached videos last fetched before the cutoff; their
// chapter rows go with them.
func (r *Repo) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE fetched_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *Repo) AddFavorite(ctx context.Context, f *Favorite) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites(guild_id, author_id, name, query) VALUES (?,?,?,?)`,
		f.GuildID, f.Author, f.Name, f.Query,
	)
	return err
}

func (r *Repo) RemoveFavorite(ctx context.Context, guild, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE guild_id=? AND name=?`, guild, name)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *Repo) FindFavorite(ctx context.Context, guild, name string) (*Favorite, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, guild_id, author_id, name, query FROM favorites WHERE guild_id=? AND name=?`, guild, name)
	var f Favorite
	if err := row.Scan(&f.ID, &f.GuildID, &f.Author, &f.Name, &f.Query); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *Repo) ListFavorites(ctx context.Context, guild string) ([]Favorite, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, guild_id, author_id, name, query FROM favorites WHERE guild_id=? ORDER BY name ASC`, guild)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.GuildID, &f.Author, &f.Name, &f.Query); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
