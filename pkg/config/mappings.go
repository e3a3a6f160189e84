package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a mapping file syntax
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// MappingFileNames are the names FindMappingFile looks for, in order
var MappingFileNames = []string{".dotman.yaml", ".dotman.yml", ".dotman.toml"}

const mappingsKey = "mappings"

// FindMappingFile returns the first mapping file present in dotfilesDir
func FindMappingFile(dotfilesDir string) (string, error) {
	for _, name := range MappingFileNames {
		path := filepath.Join(dotfilesDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.Newf(errors.ErrConfigLoad, "no mapping file (%s) found in %s",
		strings.Join(MappingFileNames, ", "), dotfilesDir).WithDetail("path", dotfilesDir)
}

// FormatFor picks the format from a file extension; anything that is not
// .toml is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// LoadMappings reads and parses the mapping file at path
func LoadMappings(path string) ([]types.Mapping, error) {
	logger := logging.GetLogger("config")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read mapping file %s", path).
			WithDetail("path", path)
	}

	mappings, err := ParseMappings(data, FormatFor(path))
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return nil, e.WithDetail("path", path)
		}
		return nil, err
	}

	logger.Debug().Str("path", path).Int("count", len(mappings)).Msg("Loaded mappings")
	return mappings, nil
}

// ParseMappings parses a mapping document.
//
// YAML accepts either a map of source to destination, kept in document
// order, or a list of {src, dest} entries. TOML accepts a [mappings] table,
// ordered by source, or a [[mappings]] array of tables.
func ParseMappings(data []byte, format Format) ([]types.Mapping, error) {
	switch format {
	case FormatYAML:
		return parseYAML(data)
	case FormatTOML:
		return parseTOML(data)
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown mapping file format %q", format)
}

func parseYAML(data []byte) ([]types.Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid YAML in mapping file")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, missingMappings()
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, invalidAt(root.Line, "mapping file must be a YAML mapping with a %q key", mappingsKey)
	}

	var value *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == mappingsKey {
			value = root.Content[i+1]
			break
		}
	}
	if value == nil {
		return nil, missingMappings()
	}

	switch value.Kind {
	case yaml.MappingNode:
		return yamlMap(value)
	case yaml.SequenceNode:
		return yamlList(value)
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			return []types.Mapping{}, nil
		}
	}
	return nil, invalidAt(value.Line, "%q must be a map or a list", mappingsKey)
}

func yamlMap(node *yaml.Node) ([]types.Mapping, error) {
	mappings := make([]types.Mapping, 0, len(node.Content)/2)
	seen := make(map[string]int, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if !isYAMLString(key) {
			return nil, invalidAt(key.Line, "mapping source must be a string")
		}
		if !isYAMLString(val) {
			return nil, invalidAt(val.Line, "destination of %q must be a string", key.Value)
		}
		if line, dup := seen[key.Value]; dup {
			return nil, invalidAt(key.Line, "source %q is already mapped on line %d", key.Value, line)
		}
		seen[key.Value] = key.Line

		m := types.Mapping{Source: key.Value, Destination: val.Value}
		if err := validateMapping(m, key.Line); err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}

func yamlList(node *yaml.Node) ([]types.Mapping, error) {
	mappings := make([]types.Mapping, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.MappingNode {
			return nil, invalidAt(item.Line, "list entries must have src and dest keys")
		}
		var m types.Mapping
		if err := item.Decode(&m); err != nil {
			return nil, invalidAt(item.Line, "invalid mapping entry: %v", err)
		}
		if err := validateMapping(m, item.Line); err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}

// isYAMLString reports whether node is a scalar usable as a path; numbers
// and booleans are accepted as their literal text, null is not.
func isYAMLString(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag != "!!null"
}

func parseTOML(data []byte) ([]types.Mapping, error) {
	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid TOML in mapping file")
	}

	raw, ok := doc[mappingsKey]
	if !ok {
		return nil, missingMappings()
	}

	switch v := raw.(type) {
	case map[string]interface{}:
		sources := make([]string, 0, len(v))
		for src := range v {
			sources = append(sources, src)
		}
		sort.Strings(sources)

		mappings := make([]types.Mapping, 0, len(sources))
		for _, src := range sources {
			dest, ok := v[src].(string)
			if !ok {
				return nil, errors.Newf(errors.ErrConfigValid,
					"destination of %q must be a string", src).WithDetail("source", src)
			}
			m := types.Mapping{Source: src, Destination: dest}
			if err := validateMapping(m, 0); err != nil {
				return nil, err
			}
			mappings = append(mappings, m)
		}
		return mappings, nil

	case []interface{}:
		mappings := make([]types.Mapping, 0, len(v))
		for i, entry := range v {
			table, ok := entry.(map[string]interface{})
			if !ok {
				return nil, errors.Newf(errors.ErrConfigValid, "mappings entry %d must be a table", i+1)
			}
			src, srcOK := table["src"].(string)
			dest, destOK := table["dest"].(string)
			if !srcOK || !destOK {
				return nil, errors.Newf(errors.ErrConfigValid,
					"mappings entry %d needs string src and dest", i+1)
			}
			m := types.Mapping{Source: src, Destination: dest}
			if err := validateMapping(m, 0); err != nil {
				return nil, err
			}
			mappings = append(mappings, m)
		}
		return mappings, nil
	}

	return nil, errors.Newf(errors.ErrConfigValid, "%q must be a table or an array of tables", mappingsKey)
}

func validateMapping(m types.Mapping, line int) error {
	switch {
	case strings.TrimSpace(m.Source) == "":
		return invalidAt(line, "mapping to %q has an empty source", m.Destination)
	case strings.TrimSpace(m.Destination) == "":
		return invalidAt(line, "mapping of %q has an empty destination", m.Source)
	}
	return nil
}

func missingMappings() error {
	return errors.Newf(errors.ErrConfigValid, "mapping file has no %q section", mappingsKey)
}

func invalidAt(line int, format string, args ...interface{}) error {
	err := errors.New(errors.ErrConfigValid, fmt.Sprintf(format, args...))
	if line > 0 {
		err = err.WithDetail("line", line)
	}
	return err
}
