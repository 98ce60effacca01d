// Package engine drives beatmap files through extraction, search, matching,
// duplicate detection, and playlist insertion, producing a batch report.
package engine

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"osusync/beatmap"
	"osusync/query"
	"osusync/spotify"
)

// DefaultPlaylistName is used when the caller supplies no playlist name.
const DefaultPlaylistName = "osu! Song Library"

const playlistDescription = "Songs collected from an osu! beatmap library"

// Options tunes one batch run.
type Options struct {
	// PlaylistName is the managed playlist; DefaultPlaylistName when empty.
	PlaylistName string
	// Delay is the pause between files. Spotify rate-limits aggressive
	// clients, so sequential processing with a pause is deliberate.
	Delay time.Duration
	// Progress, when set, receives each result as it is classified.
	Progress ProgressFunc
}

// Engine owns one batch run. The playlist membership map is seeded once from
// the remote playlist and updated synchronously on every add, so duplicates
// within a single run are caught without re-fetching.
type Engine struct {
	searcher  Searcher
	playlists PlaylistService
	opts      Options

	playlistID string
	known      map[string]spotify.PlaylistEntry
}

// New creates an Engine bound to the given collaborators.
func New(searcher Searcher, playlists PlaylistService, opts Options) *Engine {
	if opts.PlaylistName == "" {
		opts.PlaylistName = DefaultPlaylistName
	}
	return &Engine{
		searcher:  searcher,
		playlists: playlists,
		opts:      opts,
		known:     make(map[string]spotify.PlaylistEntry),
	}
}

// Run processes the files in order and returns the accumulated report.
// Per-file failures are recorded and the batch continues; only a setup
// failure (playlist resolution or membership listing) aborts with zero
// results. Cancelling the context stops the batch between files; the partial
// report is still valid and is returned alongside the context error.
func (e *Engine) Run(ctx context.Context, files []string) (*BatchReport, error) {
	if err := e.setup(ctx); err != nil {
		return nil, err
	}

	report := &BatchReport{}
	total := len(files)

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			log.Warnf("Batch interrupted after %d of %d files", i, total)
			return report, err
		}

		log.Infof("Processing [%d/%d]: %s", i+1, total, path)
		result := e.processFile(ctx, path)
		report.append(result)

		if e.opts.Progress != nil {
			e.opts.Progress(i, total, result)
		}

		if e.opts.Delay > 0 && i < total-1 {
			select {
			case <-ctx.Done():
			case <-time.After(e.opts.Delay):
			}
		}
	}

	log.Infof("Batch complete: %d added, %d duplicates, %d not found, %d errors",
		report.Added, report.Duplicates, report.NotFound, report.Errors)
	return report, nil
}

// setup resolves the managed playlist (reuse by name, else create) and seeds
// the membership map from its current contents.
func (e *Engine) setup(ctx context.Context) error {
	id, found, err := e.playlists.FindPlaylistByName(ctx, e.opts.PlaylistName)
	if err != nil {
		return fmt.Errorf("failed to look up playlist %q: %w", e.opts.PlaylistName, err)
	}
	if !found {
		id, err = e.playlists.CreatePlaylist(ctx, e.opts.PlaylistName, playlistDescription)
		if err != nil {
			return fmt.Errorf("failed to create playlist %q: %w", e.opts.PlaylistName, err)
		}
	}
	e.playlistID = id

	entries, err := e.playlists.ListTracks(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list playlist tracks: %w", err)
	}
	e.known = make(map[string]spotify.PlaylistEntry, len(entries))
	for _, entry := range entries {
		e.known[entry.TrackID] = entry
	}

	log.Debugf("Using playlist %s with %d existing tracks", id, len(e.known))
	return nil
}

func (e *Engine) processFile(ctx context.Context, path string) ProcessingResult {
	meta, err := beatmap.ParseFile(path)
	if err != nil {
		log.Warnf("Extraction failed for %s: %v", path, err)
		return ProcessingResult{FilePath: path, Outcome: OutcomeError, Err: err}
	}

	q := query.FromMetadata(meta)
	candidates, err := e.searcher.SearchTrack(ctx, q.String())
	if err != nil {
		return ProcessingResult{
			FilePath: path,
			Outcome:  OutcomeError,
			Metadata: meta,
			Err:      fmt.Errorf("search failed: %w", err),
		}
	}

	candidate, ok := pickCandidate(candidates)
	if !ok {
		log.Infof("No match for '%s' by '%s'", q.Title, q.Artist)
		return ProcessingResult{FilePath: path, Outcome: OutcomeNotFound, Metadata: meta}
	}

	if _, dup := e.known[candidate.ID]; dup {
		log.Infof("Skipping duplicate '%s' by '%s' (%s)", candidate.Title, candidate.Artist, candidate.ID)
		return ProcessingResult{
			FilePath:  path,
			Outcome:   OutcomeDuplicateSkipped,
			Metadata:  meta,
			Candidate: &candidate,
		}
	}

	if err := e.playlists.AddTrack(ctx, e.playlistID, candidate.ID); err != nil {
		return ProcessingResult{
			FilePath:  path,
			Outcome:   OutcomeError,
			Metadata:  meta,
			Candidate: &candidate,
			Err:       fmt.Errorf("failed to add track: %w", err),
		}
	}

	// Record the add immediately so a second beatmap resolving to the same
	// track within this run is classified as a duplicate.
	e.known[candidate.ID] = spotify.PlaylistEntry{
		TrackID: candidate.ID,
		Title:   candidate.Title,
		Artist:  candidate.Artist,
	}

	log.Infof("Added '%s' by '%s' (%s)", candidate.Title, candidate.Artist, candidate.URL)
	return ProcessingResult{
		FilePath:  path,
		Outcome:   OutcomeAdded,
		Metadata:  meta,
		Candidate: &candidate,
	}
}
