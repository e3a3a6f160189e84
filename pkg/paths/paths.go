package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/types"
)

// Default directories and files
const (
	// HomePlaceholder is the prefix expanded to the user's home directory
	HomePlaceholder = "~"

	// DefaultDotfilesDir is the default location of the dotfiles repository
	DefaultDotfilesDir = "~/dotfiles"

	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "dotman"

	// LogFileName is the name of the log file
	LogFileName = "dotman.log"

	// SettingsFileName is the name of the user settings file
	SettingsFileName = "config.toml"
)

// HomeExpander expands a leading "~" using the current user's home directory.
type HomeExpander struct {
	// HomeDir returns the home directory; os.UserHomeDir when nil
	HomeDir func() (string, error)
}

// NewHomeExpander creates an expander backed by os.UserHomeDir
func NewHomeExpander() *HomeExpander {
	return &HomeExpander{HomeDir: os.UserHomeDir}
}

// NewStaticExpander creates an expander that always uses home
func NewStaticExpander(home string) *HomeExpander {
	return &HomeExpander{HomeDir: func() (string, error) { return home, nil }}
}

// Expand resolves "~" and "~/rest". Paths without the placeholder, including
// "~user" forms, are returned unchanged. It fails only when the path needs
// the home directory and it cannot be determined.
func (e *HomeExpander) Expand(path string) (string, error) {
	if !hasHomePrefix(path) {
		return path, nil
	}

	homeFn := e.HomeDir
	if homeFn == nil {
		homeFn = os.UserHomeDir
	}

	home, err := homeFn()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPathExpansion,
			"failed to expand home directory in path %s", path).WithDetail("path", path)
	}
	if home == "" {
		return "", errors.Newf(errors.ErrPathExpansion,
			"failed to expand home directory in path %s: home directory is empty", path).WithDetail("path", path)
	}

	if len(path) == 1 {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// hasHomePrefix matches "~" and "~/..." but not "~user"
func hasHomePrefix(path string) bool {
	if path == "" || path[0] != '~' {
		return false
	}
	return len(path) == 1 || path[1] == '/' || path[1] == filepath.Separator
}

// ResolveSource joins source with the dotfiles root and expands the result
// into an absolute path.
func ResolveSource(exp types.Expander, dotfilesRoot, source string) (string, error) {
	joined := source
	if !filepath.IsAbs(source) {
		joined = filepath.Join(dotfilesRoot, source)
	}

	expanded, err := exp.Expand(joined)
	if err != nil {
		return "", err
	}

	if !filepath.IsAbs(expanded) {
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrPathExpansion,
				"failed to get absolute path for %s", expanded).WithDetail("path", source)
		}
		expanded = abs
	}
	return expanded, nil
}

// ResolveDestination expands destination; a relative result is anchored at
// the home directory.
func ResolveDestination(exp types.Expander, destination string) (string, error) {
	expanded, err := exp.Expand(destination)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) {
		return expanded, nil
	}
	return exp.Expand(HomePlaceholder + string(filepath.Separator) + expanded)
}

// Resolve computes the absolute source and destination of a mapping.
func Resolve(exp types.Expander, dotfilesRoot string, m types.Mapping) (types.ResolvedMapping, error) {
	if strings.TrimSpace(m.Source) == "" || strings.TrimSpace(m.Destination) == "" {
		return types.ResolvedMapping{}, errors.Newf(errors.ErrInvalidInput,
			"mapping %q -> %q has an empty path", m.Source, m.Destination)
	}

	src, err := ResolveSource(exp, dotfilesRoot, m.Source)
	if err != nil {
		return types.ResolvedMapping{}, err
	}
	dest, err := ResolveDestination(exp, m.Destination)
	if err != nil {
		return types.ResolvedMapping{}, err
	}

	return types.ResolvedMapping{Mapping: m, Source: src, Destination: dest}, nil
}

// StateDir returns dotman's XDG state directory
func StateDir() string {
	// adrg/xdg caches the environment at init, so honour late overrides
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// ConfigDir returns dotman's XDG config directory
func ConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// LogFilePath returns the path of the log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// SettingsFilePath returns the path of the user settings file
func SettingsFilePath() string {
	return filepath.Join(ConfigDir(), SettingsFileName)
}
