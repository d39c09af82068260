package config

import "time"

type Config struct {
	DiscordToken          string
	SpotifyClientID       string
	SpotifyClientSecret   string
	DataDir               string
	CacheTTL              time.Duration // how long fetched descriptions stay fresh
	BotStatus             string        // online/dnd/idle
	BotActivity           string
	RegisterCommandsOnBot bool
}
