package engine

import (
	"testing"

	"osusync/spotify"
)

func TestPickCandidate(t *testing.T) {
	first := spotify.TrackCandidate{ID: "1", Title: "First"}
	second := spotify.TrackCandidate{ID: "2", Title: "Second"}

	tests := []struct {
		name       string
		candidates []spotify.TrackCandidate
		want       spotify.TrackCandidate
		wantOK     bool
	}{
		{"empty", nil, spotify.TrackCandidate{}, false},
		{"single", []spotify.TrackCandidate{first}, first, true},
		{"first wins", []spotify.TrackCandidate{first, second}, first, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickCandidate(tt.candidates)
			if ok != tt.wantOK {
				t.Fatalf("pickCandidate() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("pickCandidate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
