package engine

import "osusync/spotify"

// pickCandidate selects the match for a query from the search results. The
// search collaborator ranks by relevance, so the first candidate wins; no
// secondary re-scoring is applied. An empty result set means no match, which
// is a normal outcome rather than an error.
func pickCandidate(candidates []spotify.TrackCandidate) (spotify.TrackCandidate, bool) {
	if len(candidates) == 0 {
		return spotify.TrackCandidate{}, false
	}
	return candidates[0], true
}
