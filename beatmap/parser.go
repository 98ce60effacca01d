package beatmap

import (
	"bytes"
	"os"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

// ParseFile reads and parses a single .osu beatmap file.
func ParseFile(path string) (SongMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SongMetadata{}, &ExtractionError{Path: path, Reason: "cannot read file", Err: err}
	}
	return Parse(path, data)
}

// Parse extracts song metadata from raw beatmap file content.
// The format is line-oriented Key:Value pairs grouped into [Section] blocks;
// only [Metadata] and [General] are read, everything else is ignored.
// The unromanized TitleUnicode/ArtistUnicode fields win over Title/Artist
// when present and non-empty.
func Parse(path string, data []byte) (SongMetadata, error) {
	// UTF-8 with BOM is common in beatmaps exported on Windows.
	data = stripBOM(data)
	if !utf8.Valid(data) {
		return SongMetadata{}, &ExtractionError{Path: path, Reason: "file is not valid UTF-8 text"}
	}

	fields := sectionFields(string(data))

	meta := SongMetadata{
		Title:         firstNonEmpty(fields["Metadata.TitleUnicode"], fields["Metadata.Title"]),
		Artist:        firstNonEmpty(fields["Metadata.ArtistUnicode"], fields["Metadata.Artist"]),
		Version:       fields["Metadata.Version"],
		Creator:       fields["Metadata.Creator"],
		AudioFilename: fields["General.AudioFilename"],
		FilePath:      path,
	}

	if meta.Title == "" {
		return SongMetadata{}, &ExtractionError{Path: path, Reason: "missing Title field"}
	}
	if meta.Artist == "" {
		return SongMetadata{}, &ExtractionError{Path: path, Reason: "missing Artist field"}
	}

	log.Tracef("Parsed beatmap %s: '%s' by '%s'", path, meta.Title, meta.Artist)
	return meta, nil
}

// sectionFields flattens the beatmap into a "Section.Key" -> value map.
// Key:Value lines before the first [Section] header are ignored, as are
// malformed lines without a colon.
func sectionFields(content string) map[string]string {
	fields := make(map[string]string)
	section := ""

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section = trimmed[1 : len(trimmed)-1]
			continue
		}
		if section == "" {
			continue
		}

		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fields[section+"."+key] = strings.TrimSpace(value)
	}

	return fields
}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
