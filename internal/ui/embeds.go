package ui

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/chapbot/chapbot/internal/chapters"
	"github.com/chapbot/chapbot/internal/repository"
	"github.com/chapbot/chapbot/internal/utils"
)

// chapterRow renders one chapter line. YouTube rows get a deep link that
// starts playback at the chapter offset.
func chapterRow(v *repository.Video, n int, seg chapters.Segment, linkTimestamps bool) string {
	title := utils.EscapeMd(seg.Title)
	if title == "" {
		title = fmt.Sprintf("Chapter %d", n)
	}
	if linkTimestamps && v.Source == "youtube" && v.ID != "" {
		link := "https://www.youtube.com/watch?v=" + v.ID
		if seg.Start > 0 {
			link += "&t=" + fmt.Sprint(seg.Start)
		}
		title = fmt.Sprintf("[%s](%s)", title, link)
	}
	return fmt.Sprintf("`%s` %s `[ %s ]`\n", utils.PrettyTime(seg.Start), title, utils.PrettyTime(seg.Length))
}

func BuildChaptersEmbed(
	v *repository.Video,
	segs []chapters.Segment,
	page int,
	pageSize int,
	linkTimestamps bool,
) (*discordgo.MessageEmbed, error) {
	if len(segs) == 0 {
		return nil, fmt.Errorf("no chapters to show")
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if page <= 0 {
		page = 1
	}
	maxPage := (len(segs) + pageSize - 1) / pageSize
	if page > maxPage {
		return nil, fmt.Errorf("there aren't that many pages")
	}

	begin := (page - 1) * pageSize
	end := min(begin+pageSize, len(segs))

	var out strings.Builder
	for idx, seg := range segs[begin:end] {
		out.WriteString(chapterRow(v, begin+idx+1, seg, linkTimestamps))
	}

	header := fmt.Sprintf("**%s**\n\n", utils.EscapeMd(v.Title))
	if v.WebpageURL != "" {
		header = fmt.Sprintf("**[%s](%s)**\n\n", utils.EscapeMd(v.Title), v.WebpageURL)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Chapters",
		Description: header + out.String(),
		Color:       0x006400,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Chapters", Value: fmt.Sprint(len(segs)), Inline: true},
			{Name: "Length", Value: lengthStr(v.Duration), Inline: true},
			{Name: "Page", Value: fmt.Sprintf("%d out of %d", page, maxPage), Inline: true},
		},
	}
	if v.Uploader != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Source: %s", v.Uploader)}
	}
	if v.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: v.Thumbnail}
	}
	return embed, nil
}

// BuildParsedEmbed renders chapters extracted from pasted text, where there
// is no video to link back to.
func BuildParsedEmbed(chs []chapters.Chapter) *discordgo.MessageEmbed {
	var out strings.Builder
	for n, c := range chs {
		title := utils.EscapeMd(c.Title)
		if title == "" {
			title = fmt.Sprintf("Chapter %d", n+1)
		}
		fmt.Fprintf(&out, "`%s` %s\n", utils.PrettyTime(c.Start), title)
	}
	return &discordgo.MessageEmbed{
		Title:       "Chapter markers",
		Description: out.String(),
		Color:       0x006400,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d markers", len(chs))},
	}
}

func lengthStr(sec int) string {
	if sec <= 0 {
		return "-"
	}
	return utils.PrettyTime(sec)
}
