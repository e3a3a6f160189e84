package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Setting keys
const (
	KeyDotfilesDir = "dotfiles_dir"
	KeyMappingFile = "mapping_file"
	KeyColor       = "color"
)

// EnvPrefix prefixes every dotman environment variable
const EnvPrefix = "DOTMAN_"

// EnvDotfilesDir is honoured alongside DOTMAN_DOTFILES_DIR
const EnvDotfilesDir = "DOTFILES_DIR"

var colorModes = []string{"auto", "always", "never"}

// Settings is the resolved runtime configuration
type Settings struct {
	DotfilesDir string `koanf:"dotfiles_dir"`
	MappingFile string `koanf:"mapping_file"`
	Color       string `koanf:"color"`
}

// LoadSettings resolves settings from defaults, the user settings file, the
// environment and overrides (explicitly set flags, keyed by setting name).
func LoadSettings(overrides map[string]interface{}) (*Settings, error) {
	return LoadSettingsFrom(paths.SettingsFilePath(), overrides)
}

// LoadSettingsFrom is LoadSettings with an explicit settings file path. A
// missing file is not an error.
func LoadSettingsFrom(settingsFile string, overrides map[string]interface{}) (*Settings, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load default settings")
	}

	// 2. User settings file
	if settingsFile != "" {
		if _, err := os.Stat(settingsFile); err == nil {
			if err := k.Load(file.Provider(settingsFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse,
					"failed to load settings from %s", settingsFile).WithDetail("path", settingsFile)
			}
			logger.Debug().Str("path", settingsFile).Msg("Loaded settings file")
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvDotfilesDir, ".", func(s string) string {
		if s == EnvDotfilesDir {
			return KeyDotfilesDir
		}
		return ""
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to read environment")
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to read environment")
	}

	// 4. Flags
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to apply flag overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(trimSpaceHookFunc()),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to decode settings")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("dotfilesDir", s.DotfilesDir).
		Str("mappingFile", s.MappingFile).
		Str("color", s.Color).
		Msg("Settings resolved")
	return &s, nil
}

// Validate checks settings values
func (s *Settings) Validate() error {
	if s.DotfilesDir == "" {
		return errors.New(errors.ErrConfigValid, "dotfiles_dir must not be empty").
			WithDetail("key", KeyDotfilesDir)
	}
	for _, mode := range colorModes {
		if s.Color == mode {
			return nil
		}
	}
	return errors.Newf(errors.ErrConfigValid, "color must be one of %s, got %q",
		strings.Join(colorModes, ", "), s.Color).WithDetail("key", KeyColor)
}

// ResolveMappingFile returns the mapping file to load: the configured one,
// relative to the dotfiles directory unless absolute, or the first default
// name found there.
func (s *Settings) ResolveMappingFile(exp types.Expander) (string, error) {
	dir, err := exp.Expand(s.DotfilesDir)
	if err != nil {
		return "", err
	}

	if s.MappingFile == "" {
		return FindMappingFile(dir)
	}

	path, err := exp.Expand(s.MappingFile)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return path, nil
}

// trimSpaceHookFunc trims surrounding whitespace from string values
func trimSpaceHookFunc() mapstructure.DecodeHookFuncKind {
	return func(from, to reflect.Kind, data interface{}) (interface{}, error) {
		if from != reflect.String || to != reflect.String {
			return data, nil
		}
		return strings.TrimSpace(data.(string)), nil
	}
}
