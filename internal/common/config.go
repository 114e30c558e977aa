package common

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const (
	// SettingsFileName is the default settings document, relative to the
	// application root.
	SettingsFileName = "config/settings.json"

	// DefaultLocation is used when the settings file names no location.
	DefaultLocation = "Home"
)

// RootSpec is the per-location set of storage root overrides. Each value is
// one of:
//
//	project:REL     resolved against the application root
//	mount:NAME/SUB  resolved against the mount alias NAME
//	/abs/path       used as-is
//	rel/path        resolved against the application root
//
// Empty values fall back to fixed defaults under <approot>/data.
type RootSpec struct {
	PDFRoot       string `json:"pdf_root"`
	ConvertedRoot string `json:"converted_root"`
	TextRoot      string `json:"text_root"`
	LibraryRoot   string `json:"library_root"`
}

// Settings mirrors the on-disk settings document.
type Settings struct {
	Location  string              `json:"location"`
	Mounts    map[string]string   `json:"mounts"`
	Locations map[string]RootSpec `json:"locations"`
}

// CurrentSpec returns the RootSpec for the active location. A location with
// no entry in the document yields the zero spec (all defaults).
func (s *Settings) CurrentSpec() RootSpec {
	if s.Locations == nil {
		return RootSpec{}
	}
	return s.Locations[s.Location]
}

// AppRoot returns the directory all project-relative paths resolve against:
// PDFSHELF_HOME if set, otherwise the directory holding the executable.
func AppRoot() string {
	if home := os.Getenv("PDFSHELF_HOME"); home != "" {
		return home
	}
	exe, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	return filepath.Dir(exe)
}

// SettingsPath returns the settings document location: PDFSHELF_SETTINGS if
// set (relative values resolve against appRoot), else the default under
// appRoot.
func SettingsPath(appRoot string) string {
	if p := os.Getenv("PDFSHELF_SETTINGS"); p != "" {
		if !filepath.IsAbs(p) {
			p = filepath.Join(appRoot, p)
		}
		return p
	}
	return filepath.Join(appRoot, SettingsFileName)
}

// LoadSettings reads the settings document. A missing or unreadable file is
// not an error: the zero document is returned so every root falls back to
// its default. PDFSHELF_LOCATION overrides the document's location.
func LoadSettings(appRoot string) *Settings {
	s := &Settings{}
	if raw, err := os.ReadFile(SettingsPath(appRoot)); err == nil {
		// A corrupt document degrades to defaults the same way a missing
		// one does.
		_ = json.Unmarshal(raw, s)
	}
	if loc := os.Getenv("PDFSHELF_LOCATION"); loc != "" {
		s.Location = loc
	}
	if s.Location == "" {
		s.Location = DefaultLocation
	}
	return s
}

// ResolveSpec turns one root spec value into an absolute path. Unresolvable
// mount references fall back to def, matching the settings document's
// forgiving contract.
func ResolveSpec(spec, appRoot string, mounts map[string]string, def string) string {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return def
	}

	if rel, ok := strings.CutPrefix(spec, "project:"); ok {
		return filepath.Join(appRoot, strings.TrimSpace(rel))
	}

	if rest, ok := strings.CutPrefix(spec, "mount:"); ok {
		name, sub, found := strings.Cut(strings.TrimSpace(rest), "/")
		if !found {
			return def
		}
		base, ok := mounts[name]
		if !ok || base == "" {
			return def
		}
		return filepath.Join(expandHome(base), sub)
	}

	if filepath.IsAbs(spec) {
		return filepath.Clean(spec)
	}
	return filepath.Join(appRoot, spec)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
