package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/chapbot/chapbot/internal/autocomplete"
	"github.com/chapbot/chapbot/internal/chapters"
	"github.com/chapbot/chapbot/internal/config"
	"github.com/chapbot/chapbot/internal/metadata"
	"github.com/chapbot/chapbot/internal/repository"
	"github.com/chapbot/chapbot/internal/ui"
)

type CommandHandler struct {
	cfg      *config.Config
	repo     *repository.Repo
	favs     *repository.FavoritesService
	resolver *metadata.Resolver
	suggest  *autocomplete.Suggester
}

func NewCommandHandler(cfg *config.Config, repo *repository.Repo, favs *repository.FavoritesService) *CommandHandler {
	return &CommandHandler{
		cfg:      cfg,
		repo:     repo,
		favs:     favs,
		resolver: metadata.NewResolver(cfg),
		suggest:  autocomplete.NewSuggester(),
	}
}

func (h *CommandHandler) RegisterCommands(s *discordgo.Session, appID string, guildID string) error {
	start := time.Now()
	slog.Info("registering application commands", "appID", appID, "guildID", guildID)

	cmds := []*discordgo.ApplicationCommand{
		{
			Name:        "chapters",
			Description: "Show the chapter list of a video (YouTube URL/ID, Spotify episode, or search)",
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "query", Description: "link, video ID or search terms", Type: discordgo.ApplicationCommandOptionString, Required: true, Autocomplete: true},
				{Name: "page", Description: "page of the chapter list [default: 1]", Type: discordgo.ApplicationCommandOptionInteger},
				{Name: "hidden", Description: "only show the result to you", Type: discordgo.ApplicationCommandOptionBoolean},
			},
		},
		{
			Name:        "parse",
			Description: "Extract chapter markers from pasted description text",
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "text", Description: "description text to parse", Type: discordgo.ApplicationCommandOptionString, Required: true},
			},
		},
		{
			Name:        "favorites",
			Description: "Manage favorite lookups",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "use",
					Description: "show chapters for a favorite",
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "name", Description: "favorite name", Type: discordgo.ApplicationCommandOptionString, Required: true},
						{Name: "page", Description: "page of the chapter list", Type: discordgo.ApplicationCommandOptionInteger},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "list favorites",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "create favorite",
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "name", Description: "name", Type: discordgo.ApplicationCommandOptionString, Required: true},
						{Name: "query", Description: "link or search terms", Type: discordgo.ApplicationCommandOptionString, Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "remove favorite",
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "name", Description: "name", Type: discordgo.ApplicationCommandOptionString, Required: true},
					},
				},
			},
		},
		{
			Name:        "config",
			Description: "Configure bot settings",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "get", Description: "show settings"},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "set-page-size", Description: "chapters per page", Options: []*discordgo.ApplicationCommandOption{
					{Name: "page_size", Description: "1-30", Type: discordgo.ApplicationCommandOptionInteger, Required: true},
				}},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "set-response-hidden", Description: "ephemeral chapter responses", Options: []*discordgo.ApplicationCommandOption{
					{Name: "value", Description: "true/false", Type: discordgo.ApplicationCommandOptionBoolean, Required: true},
				}},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "set-link-timestamps", Description: "deep-link chapter timestamps", Options: []*discordgo.ApplicationCommandOption{
					{Name: "value", Description: "true/false", Type: discordgo.ApplicationCommandOptionBoolean, Required: true},
				}},
			},
		},
	}

	for _, c := range cmds {
		if _, err := s.ApplicationCommandCreate(appID, guildID, c); err != nil {
			slog.Error("failed to create application command", "guildID", guildID, "command", c.Name, "err", err)
			return err
		}
		slog.Debug("registered command", "guildID", guildID, "command", c.Name)
	}

	slog.Info("finished registering commands", "guildID", guildID, "count", len(cmds), "took", time.Since(start))
	return nil
}

func (h *CommandHandler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		slog.Debug("interaction: application command", "guildID", i.GuildID, "userID", userIDOf(i), "command", i.ApplicationCommandData().Name)
		h.handleChatCommand(s, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		slog.Debug("interaction: autocomplete", "guildID", i.GuildID, "userID", userIDOf(i))
		h.handleAutocomplete(s, i)
	default:
		slog.Debug("interaction: ignored type", "type", i.Type, "guildID", i.GuildID)
	}
}

func (h *CommandHandler) handleChatCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "chapters":
		h.cmdChapters(s, i)
	case "parse":
		h.cmdParse(s, i)
	case "favorites":
		h.cmdFavorites(s, i)
	case "config":
		h.cmdConfig(s, i)
	default:
		slog.Debug("unknown command", "name", i.ApplicationCommandData().Name, "guildID", i.GuildID, "userID", userIDOf(i))
	}
}

func (h *CommandHandler) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != "chapters" {
		return
	}

	var query string
	for _, opt := range data.Options {
		if opt.Name == "query" {
			query = opt.StringValue()
		}
	}
	choices := []*discordgo.ApplicationCommandOptionChoice{}
	if strings.TrimSpace(query) != "" {
		choices = h.suggest.Choices(query, 10)
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

func (h *CommandHandler) cmdChapters(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var query string
	page := 1
	hidden := false
	for _, o := range i.ApplicationCommandData().Options {
		switch o.Name {
		case "query":
			query = o.StringValue()
		case "page":
			page = int(o.IntValue())
		case "hidden":
			hidden = o.BoolValue()
		}
	}
	h.runChapters(s, i, query, page, hidden)
}

func (h *CommandHandler) runChapters(s *discordgo.Session, i *discordgo.InteractionCreate, query string, page int, hidden bool) {
	ctx := context.Background()
	set := h.settings(ctx, i.GuildID)

	h.deferReply(s, i, hidden || set.ReplyEphemeral)

	video, chs, err := h.lookup(ctx, query)
	if err != nil {
		slog.Warn("lookup failed", "guildID", i.GuildID, "query", query, "err", err)
		h.editReply(s, i, "couldn't fetch that one")
		return
	}
	if video.IsLive {
		h.editReply(s, i, "live streams don't have chapters")
		return
	}
	if len(chs) == 0 {
		h.editReply(s, i, "no chapter markers found in that description")
		return
	}

	segs := chapters.SplitSegments(chs, video.Duration)
	if len(segs) == 0 {
		h.editReply(s, i, "no chapter markers found in that description")
		return
	}
	embed, err := ui.BuildChaptersEmbed(video, segs, page, set.PageSize, set.LinkTimestamps)
	if err != nil {
		h.editReply(s, i, err.Error())
		return
	}
	h.editReplyEmbed(s, i, embed)
	slog.Debug("served chapters", "guildID", i.GuildID, "videoID", video.ID, "count", len(segs))
}

// lookup serves a query from the video cache when it is keyed by a YouTube ID
// and still fresh, and otherwise resolves it, parses the description and
// stores the result.
func (h *CommandHandler) lookup(ctx context.Context, query string) (*repository.Video, []chapters.Chapter, error) {
	if id, ok := metadata.YouTubeID(query); ok {
		if v, err := h.repo.GetVideo(ctx, id); err == nil && time.Since(v.FetchedAt) < h.cfg.CacheTTL {
			if chs, err := h.repo.GetChapters(ctx, v.ID); err == nil {
				slog.Debug("cache hit", "videoID", id)
				return v, chs, nil
			}
		}
	}

	info, err := h.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	chs := chapters.Parse(info.Description)
	v := &repository.Video{
		ID:          info.ID,
		Source:      info.Source,
		Title:       info.Title,
		Uploader:    info.Uploader,
		Duration:    info.Duration,
		IsLive:      info.IsLive,
		Description: info.Description,
		Thumbnail:   info.Thumbnail,
		WebpageURL:  info.WebpageURL,
		FetchedAt:   time.Now(),
	}
	if v.ID != "" {
		if err := h.repo.SaveVideo(ctx, v, chs); err != nil {
			slog.Warn("cache store failed", "videoID", v.ID, "err", err)
		}
		if n, err := h.repo.PruneBefore(ctx, time.Now().Add(-h.cfg.CacheTTL)); err == nil && n > 0 {
			slog.Debug("pruned stale cache entries", "count", n)
		}
	}
	return v, chs, nil
}

func (h *CommandHandler) cmdParse(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var text string
	for _, o := range i.ApplicationCommandData().Options {
		if o.Name == "text" {
			text = o.StringValue()
		}
	}

	chs := chapters.Parse(text)
	if len(chs) == 0 {
		h.reply(s, i, "no chapter markers recognized in that text", true)
		return
	}
	h.replyEmbed(s, i, ui.BuildParsedEmbed(chs))
}

func (h *CommandHandler) cmdFavorites(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := i.ApplicationCommandData().Options
	if len(opts) == 0 {
		return
	}
	sub := opts[0]
	ctx := context.Background()

	switch sub.Name {
	case "use":
		var name string
		page := 1
		for _, o := range sub.Options {
			switch o.Name {
			case "name":
				name = o.StringValue()
			case "page":
				page = int(o.IntValue())
			}
		}
		fav, err := h.favs.Use(ctx, i.GuildID, name)
		if err != nil {
			h.reply(s, i, "no favorite by that name", true)
			return
		}
		h.runChapters(s, i, fav.Query, page, false)

	case "list":
		favs, err := h.favs.List(ctx, i.GuildID)
		if err != nil || len(favs) == 0 {
			h.reply(s, i, "no favorites yet", true)
			return
		}
		var b strings.Builder
		for _, f := range favs {
			fmt.Fprintf(&b, "**%s**: %s\n", f.Name, f.Query)
		}
		h.reply(s, i, b.String(), true)

	case "create":
		var name, query string
		for _, o := range sub.Options {
			switch o.Name {
			case "name":
				name = o.StringValue()
			case "query":
				query = o.StringValue()
			}
		}
		if err := h.favs.Create(ctx, i.GuildID, userIDOf(i), name, query); err != nil {
			slog.Warn("favorite create failed", "guildID", i.GuildID, "err", err)
			h.reply(s, i, "couldn't save that favorite", true)
			return
		}
		h.reply(s, i, fmt.Sprintf("favorite **%s** saved", strings.TrimSpace(name)), false)

	case "remove":
		var name string
		for _, o := range sub.Options {
			if o.Name == "name" {
				name = o.StringValue()
			}
		}
		n, err := h.favs.Remove(ctx, i.GuildID, name)
		if err != nil || n == 0 {
			h.reply(s, i, "no favorite by that name", true)
			return
		}
		h.reply(s, i, "favorite removed", false)
	}
}

func (h *CommandHandler) cmdConfig(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := i.ApplicationCommandData().Options
	if len(opts) == 0 {
		return
	}
	sub := opts[0]
	ctx := context.Background()

	set, err := h.repo.UpsertSettings(ctx, i.GuildID)
	if err != nil {
		slog.Error("upsert settings failed", "guildID", i.GuildID, "err", err)
		h.reply(s, i, "internal error", true)
		return
	}

	switch sub.Name {
	case "get":
		h.reply(s, i, fmt.Sprintf(
			"page size: %d\nhidden responses: %t\nlinked timestamps: %t",
			set.PageSize, set.ReplyEphemeral, set.LinkTimestamps,
		), true)
		return

	case "set-page-size":
		size := 10
		for _, o := range sub.Options {
			if o.Name == "page_size" {
				size = int(o.IntValue())
			}
		}
		if size < 1 || size > 30 {
			h.reply(s, i, "page size must be between 1 and 30", true)
			return
		}
		set.PageSize = size

	case "set-response-hidden":
		for _, o := range sub.Options {
			if o.Name == "value" {
				set.ReplyEphemeral = o.BoolValue()
			}
		}

	case "set-link-timestamps":
		for _, o := range sub.Options {
			if o.Name == "value" {
				set.LinkTimestamps = o.BoolValue()
			}
		}
	}

	if err := h.repo.UpdateSettings(ctx, set); err != nil {
		slog.Error("update settings failed", "guildID", i.GuildID, "err", err)
		h.reply(s, i, "internal error", true)
		return
	}
	h.reply(s, i, "settings updated", true)
}

func (h *CommandHandler) settings(ctx context.Context, guildID string) *repository.Settings {
	set, err := h.repo.UpsertSettings(ctx, guildID)
	if err != nil {
		slog.Warn("settings unavailable, using defaults", "guildID", guildID, "err", err)
		return &repository.Settings{GuildID: guildID, PageSize: 10, LinkTimestamps: true}
	}
	return set
}

func (h *CommandHandler) reply(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	flags := uint64(0)
	if ephemeral {
		flags = 1 << 6
	}
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlags(flags),
		},
	}); err != nil {
		slog.Warn("reply failed", "guildID", i.GuildID, "userID", userIDOf(i), "err", err)
	}
}

func (h *CommandHandler) replyEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	}); err != nil {
		slog.Warn("reply failed", "guildID", i.GuildID, "userID", userIDOf(i), "err", err)
	}
}

func (h *CommandHandler) deferReply(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) {
	flags := uint64(0)
	if ephemeral {
		flags = 1 << 6
	}
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlags(flags),
		},
	}); err != nil {
		slog.Warn("defer reply failed", "guildID", i.GuildID, "userID", userIDOf(i), "err", err)
	}
}

func (h *CommandHandler) editReply(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	}); err != nil {
		slog.Warn("edit reply failed", "guildID", i.GuildID, "userID", userIDOf(i), "err", err)
	}
}

func (h *CommandHandler) editReplyEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Warn("edit reply failed", "guildID", i.GuildID, "userID", userIDOf(i), "err", err)
	}
}

func userIDOf(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
