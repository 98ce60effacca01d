package spotify

import (
	"context"
	"testing"

	spotifyclient "github.com/zmb3/spotify/v2"
)

func TestCandidateFromTrack(t *testing.T) {
	track := spotifyclient.FullTrack{
		SimpleTrack: spotifyclient.SimpleTrack{
			ID:   "0VjIjW4GlUZAMYd2vXMi3b",
			Name: "Blinding Lights",
			Artists: []spotifyclient.SimpleArtist{
				{Name: "The Weeknd"},
			},
			ExternalURLs: map[string]string{
				"spotify": "https://open.spotify.com/track/0VjIjW4GlUZAMYd2vXMi3b",
			},
		},
	}

	got := candidateFromTrack(track)
	want := TrackCandidate{
		ID:     "0VjIjW4GlUZAMYd2vXMi3b",
		Title:  "Blinding Lights",
		Artist: "The Weeknd",
		URL:    "https://open.spotify.com/track/0VjIjW4GlUZAMYd2vXMi3b",
	}
	if got != want {
		t.Errorf("candidateFromTrack() = %+v, want %+v", got, want)
	}
}

func TestJoinArtists(t *testing.T) {
	tests := []struct {
		name    string
		artists []spotifyclient.SimpleArtist
		want    string
	}{
		{"none", nil, ""},
		{"one", []spotifyclient.SimpleArtist{{Name: "Kesha"}}, "Kesha"},
		{"many", []spotifyclient.SimpleArtist{{Name: "Kesha"}, {Name: "Pitbull"}}, "Kesha, Pitbull"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinArtists(tt.artists); got != tt.want {
				t.Errorf("joinArtists() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewClientValidatesCredentials(t *testing.T) {
	tests := []struct {
		name                            string
		clientID, clientSecret, refresh string
	}{
		{"missing id", "", "secret", "refresh"},
		{"missing secret", "id", "", "refresh"},
		{"missing refresh token", "id", "secret", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClient(context.Background(), tt.clientID, tt.clientSecret, tt.refresh, 10); err == nil {
				t.Error("NewClient() expected credential validation error")
			}
		})
	}
}
