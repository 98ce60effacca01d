package spotify

import (
	"context"
	"errors"
	"strings"
	"time"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	spotifyclient "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// Client wraps the Spotify Web API with the small collaborator surface the
// sync engine needs: field-scoped track search plus playlist find/create/list/add.
type Client struct {
	api         *spotifyclient.Client
	searchLimit int
}

// NewClient builds an authenticated Spotify client from app credentials and a
// user refresh token. The interactive authorization flow that mints the refresh
// token is out of scope here; the oauth2 transport exchanges it for access
// tokens transparently.
func NewClient(ctx context.Context, clientID, clientSecret, refreshToken string, searchLimit int) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("spotify client id and secret are required")
	}
	if refreshToken == "" {
		return nil, errors.New("spotify refresh token is required")
	}
	if searchLimit <= 0 {
		searchLimit = 10
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(clientID),
		spotifyauth.WithClientSecret(clientSecret),
		spotifyauth.WithScopes(
			spotifyauth.ScopePlaylistModifyPublic,
			spotifyauth.ScopePlaylistModifyPrivate,
			spotifyauth.ScopePlaylistReadPrivate,
		),
	)

	// An already-expired token forces a refresh on first use, surfacing bad
	// credentials before the batch starts.
	token := &oauth2.Token{
		TokenType:    "Bearer",
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour),
	}

	httpClient := auth.Client(ctx, token)
	return &Client{api: spotifyclient.New(httpClient), searchLimit: searchLimit}, nil
}

// SearchTrack runs a track search and returns the candidates in the API's
// relevance order. An empty result is a normal outcome, not an error.
func (c *Client) SearchTrack(ctx context.Context, query string) ([]TrackCandidate, error) {
	log.Tracef("Searching Spotify: %s", query)

	span := sentry.StartSpan(ctx, "spotify.search")
	span.Description = "Search Spotify API"
	span.SetTag("query", query)
	defer span.Finish()

	results, err := c.api.Search(ctx, query, spotifyclient.SearchTypeTrack, spotifyclient.Limit(c.searchLimit))
	if err != nil {
		log.Errorf("Spotify search failed for %q: %v", query, err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	var candidates []TrackCandidate
	if results.Tracks != nil {
		for _, track := range results.Tracks.Tracks {
			candidates = append(candidates, candidateFromTrack(track))
		}
	}

	log.Debugf("Search %q returned %d candidates", query, len(candidates))
	span.Status = sentry.SpanStatusOK
	span.SetData("candidates", len(candidates))
	return candidates, nil
}

// FindPlaylistByName walks the authenticated user's playlists looking for an
// exact name match. Returns the playlist ID and whether one was found.
func (c *Client) FindPlaylistByName(ctx context.Context, name string) (string, bool, error) {
	span := sentry.StartSpan(ctx, "spotify.find_playlist")
	span.Description = "Find playlist by name"
	span.SetTag("playlist_name", name)
	defer span.Finish()

	page, err := c.api.CurrentUsersPlaylists(ctx, spotifyclient.Limit(50))
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return "", false, err
	}

	for {
		for _, playlist := range page.Playlists {
			if playlist.Name == name {
				log.Debugf("Found existing playlist '%s' (%s)", name, playlist.ID)
				span.Status = sentry.SpanStatusOK
				return string(playlist.ID), true, nil
			}
		}

		err = c.api.NextPage(ctx, page)
		if errors.Is(err, spotifyclient.ErrNoMorePages) {
			break
		}
		if err != nil {
			sentry.CaptureException(err)
			span.Status = sentry.SpanStatusInternalError
			return "", false, err
		}
	}

	span.Status = sentry.SpanStatusOK
	return "", false, nil
}

// CreatePlaylist creates a new public playlist for the authenticated user.
func (c *Client) CreatePlaylist(ctx context.Context, name, description string) (string, error) {
	span := sentry.StartSpan(ctx, "spotify.create_playlist")
	span.Description = "Create playlist"
	span.SetTag("playlist_name", name)
	defer span.Finish()

	user, err := c.api.CurrentUser(ctx)
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return "", err
	}

	playlist, err := c.api.CreatePlaylistForUser(ctx, user.ID, name, description, true, false)
	if err != nil {
		log.Errorf("Failed to create playlist '%s': %v", name, err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return "", err
	}

	log.Infof("Created playlist '%s' (%s)", name, playlist.ID)
	span.Status = sentry.SpanStatusOK
	return string(playlist.ID), nil
}

// ListTracks fetches every track currently in the playlist, walking all pages.
func (c *Client) ListTracks(ctx context.Context, playlistID string) ([]PlaylistEntry, error) {
	log.Tracef("Fetching playlist items from Spotify API: %s", playlistID)

	span := sentry.StartSpan(ctx, "spotify.list_tracks")
	span.Description = "List playlist tracks"
	span.SetTag("playlist_id", playlistID)
	defer span.Finish()

	page, err := c.api.GetPlaylistItems(ctx, spotifyclient.ID(playlistID))
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError

		// Note: zmb3/spotify client doesn't provide typed errors, so we parse error strings.
		errStr := err.Error()
		if strings.Contains(errStr, "404") || strings.Contains(errStr, "Not Found") {
			return nil, errors.New("playlist not found")
		}
		if strings.Contains(errStr, "403") || strings.Contains(errStr, "Forbidden") {
			return nil, errors.New("playlist is private or not accessible")
		}
		return nil, err
	}

	var entries []PlaylistEntry
	for {
		for _, item := range page.Items {
			// Skip non-track items (podcasts, episodes, local files).
			if item.Track.Track == nil || item.Track.Track.ID == "" {
				continue
			}
			track := item.Track.Track
			entries = append(entries, PlaylistEntry{
				TrackID: string(track.ID),
				Title:   track.Name,
				Artist:  joinArtists(track.Artists),
			})
		}

		err = c.api.NextPage(ctx, page)
		if errors.Is(err, spotifyclient.ErrNoMorePages) {
			break
		}
		if err != nil {
			sentry.CaptureException(err)
			span.Status = sentry.SpanStatusInternalError
			return nil, err
		}
	}

	log.Debugf("Playlist %s currently holds %d tracks", playlistID, len(entries))
	span.Status = sentry.SpanStatusOK
	span.SetData("tracks_count", len(entries))
	return entries, nil
}

// AddTrack appends a single track to the playlist.
func (c *Client) AddTrack(ctx context.Context, playlistID, trackID string) error {
	span := sentry.StartSpan(ctx, "spotify.add_track")
	span.Description = "Add track to playlist"
	span.SetTag("playlist_id", playlistID)
	span.SetTag("track_id", trackID)
	defer span.Finish()

	if _, err := c.api.AddTracksToPlaylist(ctx, spotifyclient.ID(playlistID), spotifyclient.ID(trackID)); err != nil {
		log.Errorf("Failed to add track %s to playlist %s: %v", trackID, playlistID, err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return err
	}

	span.Status = sentry.SpanStatusOK
	return nil
}

func candidateFromTrack(track spotifyclient.FullTrack) TrackCandidate {
	return TrackCandidate{
		ID:     string(track.ID),
		Title:  track.Name,
		Artist: joinArtists(track.Artists),
		URL:    track.ExternalURLs["spotify"],
	}
}

func joinArtists(artists []spotifyclient.SimpleArtist) string {
	names := make([]string, 0, len(artists))
	for _, artist := range artists {
		names = append(names, artist.Name)
	}
	return strings.Join(names, ", ")
}
