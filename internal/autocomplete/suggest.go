package autocomplete

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/chapbot/chapbot/internal/cache"
)

// Suggester completes partial queries against the YouTube suggest endpoint,
// memoizing results so keystroke-by-keystroke autocomplete doesn't hammer it.
type Suggester struct {
	memo *cache.Cache[[]string]
}

func NewSuggester() *Suggester {
	return &Suggester{memo: cache.New[[]string](time.Hour)}
}

func (s *Suggester) YouTube(query string) ([]string, error) {
	if hit, ok := s.memo.Get(query); ok {
		return hit, nil
	}

	u, _ := url.Parse("https://suggestqueries.google.com/complete/search")
	q := u.Query()
	q.Set("client", "firefox")
	q.Set("ds", "yt")
	q.Set("q", query)
	u.RawQuery = q.Encode()

	resp, err := http.Get(u.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var parsed []any
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if len(parsed) < 2 {
		return nil, nil
	}
	arr, ok := parsed[1].([]any)
	if !ok {
		return nil, nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if str, ok := v.(string); ok {
			out = append(out, str)
		}
	}
	s.memo.Set(query, out)
	return out, nil
}

// Choices maps suggestions to interaction choices. URLs are passed through
// untouched; suggesting against a pasted link makes no sense.
func (s *Suggester) Choices(query string, limit int) []*discordgo.ApplicationCommandOptionChoice {
	if limit <= 0 {
		limit = 10
	}
	if strings.HasPrefix(query, "http://") || strings.HasPrefix(query, "https://") || strings.HasPrefix(query, "spotify:") {
		return nil
	}

	yt, _ := s.YouTube(query)
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, limit)
	for _, sug := range yt {
		if len(out) >= limit {
			break
		}
		out = append(out, &discordgo.ApplicationCommandOptionChoice{
			Name:  sug,
			Value: sug,
		})
	}
	return out
}
