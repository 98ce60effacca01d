package config

import "testing"

func TestGetSearchLimit(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 10},
		{"invalid", "foo", 10},
		{"zero", "0", 10},
		{"negative", "-10", 10},
		{"min", "1", 1},
		{"mid", "25", 25},
		{"max", "50", 50},
		{"over", "51", 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SPOTIFY_SEARCH_LIMIT", tt.env)
			if got := getSearchLimit(); got != tt.want {
				t.Errorf("getSearchLimit() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetRequestDelayMs(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 500},
		{"invalid", "abc", 500},
		{"negative", "-1", 500},
		{"zero_allowed", "0", 0},
		{"small", "100", 100},
		{"default", "500", 500},
		{"large", "5000", 5000},
		{"over_cap", "60000", 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OSUSYNC_REQUEST_DELAY_MS", tt.env)
			if got := getRequestDelayMs(); got != tt.want {
				t.Errorf("getRequestDelayMs() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestNewConfigReadsEnv(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")
	t.Setenv("SPOTIFY_REFRESH_TOKEN", "refresh")
	t.Setenv("OSUSYNC_PLAYLIST_NAME", "My Maps")
	t.Setenv("OSUSYNC_SONGS_DIR", "/games/osu!/Songs")
	t.Setenv("OSUSYNC_DB_PATH", "/tmp/osusync.db")

	NewConfig()

	if Config.Spotify.ClientID != "id" || Config.Spotify.ClientSecret != "secret" || Config.Spotify.RefreshToken != "refresh" {
		t.Errorf("Spotify config = %+v", Config.Spotify)
	}
	if Config.Options.PlaylistName != "My Maps" {
		t.Errorf("PlaylistName = %q, want My Maps", Config.Options.PlaylistName)
	}
	if Config.Options.SongsDir != "/games/osu!/Songs" {
		t.Errorf("SongsDir = %q", Config.Options.SongsDir)
	}
	if Config.Options.DBPath != "/tmp/osusync.db" {
		t.Errorf("DBPath = %q", Config.Options.DBPath)
	}
}
