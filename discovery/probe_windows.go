//go:build windows

package discovery

import (
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/windows/registry"
)

// registryProbe reads the osu! install location from the Windows registry,
// checking both the uninstall entry and the osu: protocol handler.
type registryProbe struct{}

// SystemProbe returns the registry-backed probe on Windows.
func SystemProbe() PathProbe {
	return registryProbe{}
}

func (registryProbe) SongsDir() (string, bool) {
	type probe struct {
		root  registry.Key
		path  string
		value string
	}
	probes := []probe{
		{registry.CURRENT_USER, `Software\Microsoft\Windows\CurrentVersion\Uninstall\osu!`, "InstallLocation"},
		{registry.LOCAL_MACHINE, `Software\Microsoft\Windows\CurrentVersion\Uninstall\osu!`, "InstallLocation"},
		{registry.CURRENT_USER, `Software\Classes\osu\shell\open\command`, ""},
		{registry.LOCAL_MACHINE, `Software\Classes\osu\shell\open\command`, ""},
	}

	for _, p := range probes {
		key, err := registry.OpenKey(p.root, p.path, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		value, _, err := key.GetStringValue(p.value)
		key.Close()
		if err != nil || value == "" {
			continue
		}

		installDir := value
		if p.value == "" {
			// Protocol handler commands look like: "C:\path\osu!.exe" "%1"
			installDir = installDirFromCommand(value)
			if installDir == "" {
				continue
			}
		}

		songs := filepath.Join(installDir, songsFolderName)
		log.Tracef("Registry probe candidate: %s", songs)
		return songs, true
	}

	return "", false
}

func installDirFromCommand(command string) string {
	idx := strings.Index(strings.ToLower(command), "osu!.exe")
	if idx < 0 {
		return ""
	}
	dir := strings.Trim(command[:idx], `" `)
	return filepath.Clean(dir)
}
