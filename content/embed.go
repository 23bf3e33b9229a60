// Package content holds the data-driven game definitions: tuning
// constants, unit stat sheets, lane layouts, and ability scripts. All
// files are embedded; a content/ directory on disk next to the binary
// overrides individual files for live editing.
package content

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var specFS embed.FS

//go:embed scripts/*.tengo
var scriptFS embed.FS

// Load reads a spec file, preferring the on-disk copy.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return specFS.ReadFile(clean)
}

// LoadScript reads an ability script, preferring the on-disk copy.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return scriptFS.ReadFile(clean)
}

// ModTime reports the on-disk modification time, when an override
// exists.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPath(path string) string {
	s := filepath.ToSlash(path)
	return strings.TrimPrefix(s, "content/")
}

func cleanScriptPath(path string) string {
	s := cleanPath(path)
	if !strings.HasPrefix(s, "scripts/") {
		s = "scripts/" + s
	}
	return s
}

func diskPath(clean string) string {
	return filepath.Join("content", filepath.FromSlash(clean))
}
