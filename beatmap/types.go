package beatmap

// SongMetadata holds the song fields extracted from one .osu beatmap file.
type SongMetadata struct {
	Title         string
	Artist        string
	Version       string
	Creator       string
	AudioFilename string
	FilePath      string
}

// ExtractionError reports why a beatmap file could not be turned into SongMetadata.
type ExtractionError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return "beatmap " + e.Path + ": " + e.Reason + ": " + e.Err.Error()
	}
	return "beatmap " + e.Path + ": " + e.Reason
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
