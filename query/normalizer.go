// Package query turns extracted song metadata into Spotify search queries.
package query

import (
	"regexp"
	"strings"

	"osusync/beatmap"
)

// SearchQuery is the normalized title/artist pair sent to the search collaborator.
type SearchQuery struct {
	Title  string
	Artist string
}

// Beatmap titles routinely carry trailing qualifiers that the canonical track
// title does not: "(TV Size)", "[Long Ver.]", "(Speed Up Ver.)", "(feat. X)".
// Stripping them measurably improves the search hit rate.
var trailingQualifier = regexp.MustCompile(`\s*[(\[][^()\[\]]*[)\]]\s*$`)

// FromMetadata builds a normalized SearchQuery from extracted metadata.
func FromMetadata(meta beatmap.SongMetadata) SearchQuery {
	return SearchQuery{
		Title:  NormalizeTitle(meta.Title),
		Artist: strings.TrimSpace(meta.Artist),
	}
}

// NormalizeTitle strips trailing bracketed qualifiers and surrounding
// whitespace. It is idempotent: normalizing an already-normalized title
// returns it unchanged.
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	for {
		stripped := trailingQualifier.ReplaceAllString(title, "")
		stripped = strings.TrimSpace(stripped)
		// Never normalize a title down to nothing; "(TV Size)" alone is
		// a better query than an empty string.
		if stripped == title || stripped == "" {
			return title
		}
		title = stripped
	}
}

// String composes the field-scoped query understood by the Spotify search API.
func (q SearchQuery) String() string {
	return "track:" + q.Title + " artist:" + q.Artist
}
