package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
)

// GenerateSettingsContent returns the built-in settings with every value
// commented out, ready to be saved as a user settings file
func GenerateSettingsContent() string {
	return commentOutValues(DefaultSettingsContent())
}

// commentOutValues comments every assignment, leaving comments, blank lines
// and table headers as they are
func commentOutValues(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
		default:
			lines[i] = "# " + line
		}
	}
	return strings.Join(lines, "\n")
}

// WriteSettingsFile saves the generated settings to path. An existing file is
// never overwritten; written is false in that case.
func WriteSettingsFile(path string) (written bool, err error) {
	logger := logging.GetLogger("config.generate")

	if _, err := os.Lstat(path); err == nil {
		logger.Warn().Str("path", path).Msg("Settings file already exists, skipping")
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir).
			WithDetail("path", dir)
	}
	if err := os.WriteFile(path, []byte(GenerateSettingsContent()), 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write settings to %s", path).
			WithDetail("path", path)
	}

	logger.Info().Str("path", path).Msg("Wrote settings file")
	return true, nil
}
