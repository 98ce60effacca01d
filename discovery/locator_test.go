package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

type fakeProbe struct {
	path string
	ok   bool
}

func (f fakeProbe) SongsDir() (string, bool) {
	return f.path, f.ok
}

// disabled turns off the stages a test is not exercising. Empty non-nil
// slices keep Locate from falling back to the platform defaults.
func disabled() Options {
	return Options{
		Probe:      fakeProbe{},
		Candidates: []string{},
		Roots:      []string{},
	}
}

func makeSongsDir(t *testing.T, parent string) string {
	t.Helper()
	songs := filepath.Join(parent, "osu!", "Songs")
	if err := os.MkdirAll(songs, 0755); err != nil {
		t.Fatal(err)
	}
	return songs
}

func TestLocateProbeWins(t *testing.T) {
	songs := makeSongsDir(t, t.TempDir())

	opts := disabled()
	opts.Probe = fakeProbe{path: songs, ok: true}

	got, ok := Locate(opts)
	if !ok || got != songs {
		t.Errorf("Locate() = %q, %v; want %q from probe", got, ok, songs)
	}
}

func TestLocateProbePathMustExist(t *testing.T) {
	opts := disabled()
	opts.Probe = fakeProbe{path: filepath.Join(t.TempDir(), "gone", "Songs"), ok: true}

	if got, ok := Locate(opts); ok {
		t.Errorf("Locate() = %q; probe path does not exist, want none", got)
	}
}

func TestLocateFixedCandidates(t *testing.T) {
	songs := makeSongsDir(t, t.TempDir())
	missing := filepath.Join(t.TempDir(), "nope", "osu!", "Songs")

	opts := disabled()
	opts.Candidates = []string{missing, songs}

	got, ok := Locate(opts)
	if !ok || got != songs {
		t.Errorf("Locate() = %q, %v; want first existing candidate %q", got, ok, songs)
	}
}

func TestLocateRecursiveProbeTwoLevelsDeep(t *testing.T) {
	root := t.TempDir()
	songs := makeSongsDir(t, filepath.Join(root, "Games"))

	opts := disabled()
	opts.Roots = []string{root}

	got, ok := Locate(opts)
	if !ok || got != songs {
		t.Errorf("Locate() = %q, %v; want %q found 2 levels deep", got, ok, songs)
	}
}

func TestLocateRecursiveProbeDepthBound(t *testing.T) {
	root := t.TempDir()
	// osu! sits 4 levels below the root; the probe descends at most 3.
	makeSongsDir(t, filepath.Join(root, "a", "b", "c"))

	opts := disabled()
	opts.Roots = []string{root}

	if got, ok := Locate(opts); ok {
		t.Errorf("Locate() = %q; target beyond max depth, want none", got)
	}
}

func TestLocateRecursiveProbeBreadthFirst(t *testing.T) {
	root := t.TempDir()
	// A shallow install and a deep install: breadth-first order must return
	// the shallow one.
	deep := makeSongsDir(t, filepath.Join(root, "a", "deep"))
	shallow := makeSongsDir(t, root)

	opts := disabled()
	opts.Roots = []string{root}

	got, ok := Locate(opts)
	if !ok || got != shallow {
		t.Errorf("Locate() = %q, %v; want shallow %q before deep %q", got, ok, shallow, deep)
	}
}

func TestLocateCaseInsensitiveFolderName(t *testing.T) {
	root := t.TempDir()
	songs := filepath.Join(root, "OSU!", "Songs")
	if err := os.MkdirAll(songs, 0755); err != nil {
		t.Fatal(err)
	}

	opts := disabled()
	opts.Roots = []string{root}

	got, ok := Locate(opts)
	if !ok || got != songs {
		t.Errorf("Locate() = %q, %v; want case-insensitive match %q", got, ok, songs)
	}
}

func TestLocateExhausted(t *testing.T) {
	opts := disabled()
	opts.Roots = []string{t.TempDir()}

	if got, ok := Locate(opts); ok {
		t.Errorf("Locate() = %q; want none when every stage is exhausted", got)
	}
}

func TestLocateNeverReturnsMissingPath(t *testing.T) {
	root := t.TempDir()
	songs := makeSongsDir(t, root)

	opts := disabled()
	opts.Probe = fakeProbe{path: filepath.Join(root, "phantom"), ok: true}
	opts.Candidates = []string{filepath.Join(root, "also-phantom")}
	opts.Roots = []string{root}

	got, ok := Locate(opts)
	if !ok {
		t.Fatal("Locate() found nothing, want the real Songs dir")
	}
	if got != songs {
		t.Errorf("Locate() = %q, want %q", got, songs)
	}
	if info, err := os.Stat(got); err != nil || !info.IsDir() {
		t.Errorf("Locate() returned a path that does not exist on disk: %q", got)
	}
}
