package config

import (
	"os"
	"strconv"
)

type ConfigStruct struct {
	Spotify SpotifyConfig
	Options Options
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	SearchLimit  int
}

type Options struct {
	PlaylistName   string
	SongsDir       string
	DBPath         string
	RequestDelayMs int
}

var Config *ConfigStruct

func NewConfig() {
	config := &ConfigStruct{
		Spotify: SpotifyConfig{
			ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
			RefreshToken: os.Getenv("SPOTIFY_REFRESH_TOKEN"),
			SearchLimit:  getSearchLimit(),
		},
		Options: Options{
			PlaylistName:   os.Getenv("OSUSYNC_PLAYLIST_NAME"),
			SongsDir:       os.Getenv("OSUSYNC_SONGS_DIR"),
			DBPath:         os.Getenv("OSUSYNC_DB_PATH"),
			RequestDelayMs: getRequestDelayMs(),
		},
	}

	Config = config
}

func getSearchLimit() int {
	limitStr := os.Getenv("SPOTIFY_SEARCH_LIMIT")
	if limitStr == "" {
		return 10
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 10
	}
	if limit > 50 {
		return 50 // Spotify API max per search page
	}
	return limit
}

func getRequestDelayMs() int {
	delayStr := os.Getenv("OSUSYNC_REQUEST_DELAY_MS")
	if delayStr == "" {
		return 500
	}
	delay, err := strconv.Atoi(delayStr)
	if err != nil || delay < 0 {
		return 500
	}
	if delay > 10000 {
		return 10000 // Cap at 10s
	}
	return delay
}
