package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// AppDirName is the directory name used below the XDG config home
const AppDirName = "pri3o-dmenu-desktop"

const defaultDataDirs = "/usr/local/share/:/usr/share/"

// Resolver centralizes the XDG derived paths of pri3o.
// It computes base directories from HOME and the XDG environment.
type Resolver struct {
	homeDir string
	getenv  func(string) string
}

// NewResolver creates a Resolver for the current user and environment.
func NewResolver() *Resolver {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		homeDir = os.Getenv("HOME")
	}
	return &Resolver{
		homeDir: homeDir,
		getenv:  os.Getenv,
	}
}

// NewResolverWithEnv creates a Resolver with an explicit home dir and
// environment lookup (useful for tests).
func NewResolverWithEnv(homeDir string, getenv func(string) string) *Resolver {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Resolver{
		homeDir: homeDir,
		getenv:  getenv,
	}
}

// HomeDir returns the resolved HOME directory.
func (r *Resolver) HomeDir() string {
	return r.homeDir
}

// ConfigDir returns $XDG_CONFIG_HOME/pri3o-dmenu-desktop,
// falling back to ~/.config/pri3o-dmenu-desktop.
func (r *Resolver) ConfigDir() string {
	if base := r.getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, AppDirName)
	}
	return filepath.Join(r.homeDir, ".config", AppDirName)
}

// DataHome returns $XDG_DATA_HOME or ~/.local/share.
func (r *Resolver) DataHome() string {
	if dir := r.getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(r.homeDir, ".local", "share")
}

// DataDirs returns the entries of $XDG_DATA_DIRS or the XDG default.
func (r *Resolver) DataDirs() []string {
	value := r.getenv("XDG_DATA_DIRS")
	if value == "" {
		value = defaultDataDirs
	}

	var dirs []string
	for _, dir := range strings.Split(value, ":") {
		if dir = strings.TrimSpace(dir); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// SearchDirs returns the application directories to scan.
// The per-user directory comes last: later entries overwrite earlier ones
// for applications with identical names.
func (r *Resolver) SearchDirs() []string {
	dataDirs := r.DataDirs()
	dirs := make([]string, 0, len(dataDirs)+1)
	for _, dir := range dataDirs {
		dirs = append(dirs, filepath.Join(dir, "applications"))
	}
	return append(dirs, filepath.Join(r.DataHome(), "applications"))
}

// ExpandHome expands a leading ~ to the resolved HOME directory.
func (r *Resolver) ExpandHome(path string) string {
	if path == "~" {
		return r.homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(r.homeDir, path[2:])
	}
	return path
}
