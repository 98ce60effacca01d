package engine

import (
	"context"

	"osusync/beatmap"
	"osusync/spotify"
)

// Outcome classifies what happened to one beatmap file.
type Outcome string

const (
	OutcomeAdded            Outcome = "added"
	OutcomeDuplicateSkipped Outcome = "duplicate_skipped"
	OutcomeNotFound         Outcome = "not_found"
	OutcomeError            Outcome = "error"
)

// ProcessingResult is the per-file record accumulated into the batch report.
// Candidate is set for Added and DuplicateSkipped outcomes; Err for Error.
type ProcessingResult struct {
	FilePath  string
	Outcome   Outcome
	Metadata  beatmap.SongMetadata
	Candidate *spotify.TrackCandidate
	Err       error
}

// BatchReport is the final outcome of one run: ordered per-file results plus
// counts by outcome. It is never mutated after the run completes.
type BatchReport struct {
	Results    []ProcessingResult
	Added      int
	Duplicates int
	NotFound   int
	Errors     int
}

func (r *BatchReport) append(res ProcessingResult) {
	r.Results = append(r.Results, res)
	switch res.Outcome {
	case OutcomeAdded:
		r.Added++
	case OutcomeDuplicateSkipped:
		r.Duplicates++
	case OutcomeNotFound:
		r.NotFound++
	case OutcomeError:
		r.Errors++
	}
}

// Total is the number of files processed so far.
func (r *BatchReport) Total() int {
	return len(r.Results)
}

// ProgressFunc reports per-file progress to the caller (CLI printer or GUI log
// view). Called once per file, in batch order.
type ProgressFunc func(index, total int, result ProcessingResult)

// Searcher is the track-search collaborator.
type Searcher interface {
	SearchTrack(ctx context.Context, query string) ([]spotify.TrackCandidate, error)
}

// PlaylistService is the playlist collaborator.
type PlaylistService interface {
	FindPlaylistByName(ctx context.Context, name string) (string, bool, error)
	CreatePlaylist(ctx context.Context, name, description string) (string, error)
	ListTracks(ctx context.Context, playlistID string) ([]spotify.PlaylistEntry, error)
	AddTrack(ctx context.Context, playlistID, trackID string) error
}
