// Package discovery finds the osu! Songs library on the host machine without
// assuming a username or drive letter. It is read-only: it never creates or
// modifies directories, and it never returns a path that does not exist.
package discovery

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	installFolderName = "osu!"
	songsFolderName   = "Songs"
	defaultMaxDepth   = 3
)

// PathProbe looks up a known installation path from a system configuration
// store (the registry on Windows). Implementations return ok=false when the
// store has no answer; existence on disk is checked by the locator.
type PathProbe interface {
	SongsDir() (string, bool)
}

// Options configures a lookup. Zero values fall back to platform defaults,
// which makes the staged search injectable for tests.
type Options struct {
	Probe      PathProbe
	Candidates []string
	Roots      []string
	MaxDepth   int
}

// Locate runs the staged search: system probe, then fixed candidate paths,
// then a bounded breadth-first probe of the root directories. Each stage runs
// only if the previous one found nothing. Returns ok=false when every stage
// is exhausted; the caller must then ask the user for a path.
func Locate(opts Options) (string, bool) {
	if opts.Probe == nil {
		opts.Probe = SystemProbe()
	}
	if opts.Candidates == nil {
		opts.Candidates = defaultCandidates()
	}
	if opts.Roots == nil {
		opts.Roots = defaultRoots()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = defaultMaxDepth
	}

	if opts.Probe != nil {
		if path, ok := opts.Probe.SongsDir(); ok && dirExists(path) {
			log.Debugf("Songs directory found via system probe: %s", path)
			return path, true
		}
	}

	for _, candidate := range opts.Candidates {
		if dirExists(candidate) {
			log.Debugf("Songs directory found at known location: %s", candidate)
			return candidate, true
		}
	}

	for _, root := range opts.Roots {
		if path, ok := searchBreadthFirst(root, opts.MaxDepth); ok {
			log.Debugf("Songs directory found by hierarchical probe: %s", path)
			return path, true
		}
	}

	log.Debug("Songs directory discovery exhausted all stages")
	return "", false
}

// searchBreadthFirst scans root for a directory named like the osu! install
// folder containing a Songs subdirectory, descending at most maxDepth levels.
// Breadth-first order bounds worst-case latency: shallow hits win before deep
// subtrees are touched. Unreadable directories are skipped.
func searchBreadthFirst(root string, maxDepth int) (string, bool) {
	type frame struct {
		path  string
		depth int
	}

	queue := []frame{{path: root, depth: 0}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.depth >= maxDepth {
			continue
		}

		entries, err := os.ReadDir(current.path)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			child := filepath.Join(current.path, entry.Name())
			if strings.EqualFold(entry.Name(), installFolderName) {
				songs := filepath.Join(child, songsFolderName)
				if dirExists(songs) {
					return songs, true
				}
			}
			queue = append(queue, frame{path: child, depth: current.depth + 1})
		}
	}

	return "", false
}

// defaultCandidates enumerates the conventional install locations:
// per-user application data, documents, and common program directories.
func defaultCandidates() []string {
	var candidates []string
	sub := filepath.Join(installFolderName, songsFolderName)

	if runtime.GOOS == "windows" {
		for _, env := range []string{"LOCALAPPDATA", "APPDATA"} {
			if dir := os.Getenv(env); dir != "" {
				candidates = append(candidates, filepath.Join(dir, sub))
			}
		}
		if home, err := os.UserHomeDir(); err == nil {
			candidates = append(candidates, filepath.Join(home, "Documents", sub))
		}
		for _, drive := range []string{"C:", "D:", "E:", "F:"} {
			candidates = append(candidates,
				filepath.Join(drive+string(filepath.Separator), sub),
				filepath.Join(drive+string(filepath.Separator), "Program Files", sub),
				filepath.Join(drive+string(filepath.Separator), "Program Files (x86)", sub),
			)
		}
		return candidates
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, sub),
			filepath.Join(home, ".local", "share", sub),
			filepath.Join(home, "Documents", sub),
		)
	}
	if cfg, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(cfg, sub))
	}
	return candidates
}

// defaultRoots returns the base directories for the hierarchical probe:
// the user home first, then any mounted drive roots on Windows.
func defaultRoots() []string {
	var roots []string
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, home)
	}
	if runtime.GOOS == "windows" {
		for letter := 'C'; letter <= 'Z'; letter++ {
			drive := string(letter) + `:\`
			if dirExists(drive) {
				roots = append(roots, drive)
			}
		}
	}
	return roots
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
