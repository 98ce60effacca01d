package spotify

// TrackCandidate is one track returned by a search, a possible match for a beatmap.
type TrackCandidate struct {
	ID     string
	Title  string
	Artist string
	URL    string
}

// PlaylistEntry is the engine's view of a track already present in the managed playlist.
type PlaylistEntry struct {
	TrackID string
	Title   string
	Artist  string
}
