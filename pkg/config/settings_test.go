package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the variables LoadSettings reads for the duration of a test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvDotfilesDir, "DOTMAN_DOTFILES_DIR", "DOTMAN_MAPPING_FILE", "DOTMAN_COLOR"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSettings_Defaults(t *testing.T) {
	clearEnv(t)

	s, err := LoadSettingsFrom("", nil)
	require.NoError(t, err)
	assert.Equal(t, "~/dotfiles", s.DotfilesDir)
	assert.Equal(t, "", s.MappingFile)
	assert.Equal(t, "auto", s.Color)
}

func TestLoadSettings_MissingFileIsIgnored(t *testing.T) {
	clearEnv(t)

	s, err := LoadSettingsFrom(filepath.Join(t.TempDir(), "absent.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, "~/dotfiles", s.DotfilesDir)
}

func TestLoadSettings_Precedence(t *testing.T) {
	file := writeSettings(t, "dotfiles_dir = '/from/file'\ncolor = 'never'\n")

	t.Run("file over defaults", func(t *testing.T) {
		clearEnv(t)
		s, err := LoadSettingsFrom(file, nil)
		require.NoError(t, err)
		assert.Equal(t, "/from/file", s.DotfilesDir)
		assert.Equal(t, "never", s.Color)
	})

	t.Run("DOTFILES_DIR over file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DOTFILES_DIR", "/from/compat-env")
		s, err := LoadSettingsFrom(file, nil)
		require.NoError(t, err)
		assert.Equal(t, "/from/compat-env", s.DotfilesDir)
	})

	t.Run("DOTMAN_ over DOTFILES_DIR", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DOTFILES_DIR", "/from/compat-env")
		t.Setenv("DOTMAN_DOTFILES_DIR", "/from/env")
		t.Setenv("DOTMAN_COLOR", "always")
		s, err := LoadSettingsFrom(file, nil)
		require.NoError(t, err)
		assert.Equal(t, "/from/env", s.DotfilesDir)
		assert.Equal(t, "always", s.Color)
	})

	t.Run("flags over everything", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DOTMAN_DOTFILES_DIR", "/from/env")
		s, err := LoadSettingsFrom(file, map[string]interface{}{
			KeyDotfilesDir: "/from/flag",
			KeyMappingFile: "links.toml",
		})
		require.NoError(t, err)
		assert.Equal(t, "/from/flag", s.DotfilesDir)
		assert.Equal(t, "links.toml", s.MappingFile)
		assert.Equal(t, "never", s.Color)
	})
}

func TestLoadSettings_Invalid(t *testing.T) {
	t.Run("bad color", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadSettingsFrom("", map[string]interface{}{KeyColor: "sometimes"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("empty dotfiles dir", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadSettingsFrom("", map[string]interface{}{KeyDotfilesDir: "  "})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("broken file", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadSettingsFrom(writeSettings(t, "color = ["), nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})
}

func TestLoadSettings_UsesXDGConfigHome(t *testing.T) {
	clearEnv(t)
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	require.NoError(t, os.MkdirAll(filepath.Join(configHome, "dotman"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configHome, "dotman", "config.toml"),
		[]byte("mapping_file = 'links.yaml'\n"), 0644))

	s, err := LoadSettings(nil)
	require.NoError(t, err)
	assert.Equal(t, "links.yaml", s.MappingFile)
}

func TestResolveMappingFile(t *testing.T) {
	home := t.TempDir()
	dotfiles := filepath.Join(home, "dotfiles")
	require.NoError(t, os.MkdirAll(dotfiles, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dotfiles, ".dotman.yaml"), nil, 0644))
	exp := paths.NewStaticExpander(home)

	t.Run("auto detect", func(t *testing.T) {
		s := &Settings{DotfilesDir: "~/dotfiles"}
		path, err := s.ResolveMappingFile(exp)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dotfiles, ".dotman.yaml"), path)
	})

	t.Run("relative to dotfiles dir", func(t *testing.T) {
		s := &Settings{DotfilesDir: "~/dotfiles", MappingFile: "links.toml"}
		path, err := s.ResolveMappingFile(exp)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dotfiles, "links.toml"), path)
	})

	t.Run("home relative", func(t *testing.T) {
		s := &Settings{DotfilesDir: "~/dotfiles", MappingFile: "~/links.yaml"}
		path, err := s.ResolveMappingFile(exp)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "links.yaml"), path)
	})

	t.Run("nothing found", func(t *testing.T) {
		s := &Settings{DotfilesDir: "~/elsewhere"}
		_, err := s.ResolveMappingFile(exp)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})
}

func TestDefaultSettingsContent(t *testing.T) {
	assert.Contains(t, DefaultSettingsContent(), "dotfiles_dir")
}
