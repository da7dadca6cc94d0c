package config

import (
	"bufio"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source resolves a named setting. ok is false when the source does not
// define the name.
type Source interface {
	Lookup(name string) (value string, ok bool)
}

// MapSource is a Source backed by a map.
type MapSource map[string]string

func (m MapSource) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// EnvSource reads settings from environment variables named Prefix+name.
type EnvSource struct {
	Prefix string
}

func (e EnvSource) Lookup(name string) (string, bool) {
	return os.LookupEnv(e.Prefix + name)
}

// Chain consults each source in order; the first one defining a name wins.
type Chain []Source

func (c Chain) Lookup(name string) (string, bool) {
	for _, src := range c {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

// ParseKeyFile reads the key file format: one "name:base64value" per line.
// Lines starting with '#', lines without ':' and lines shorter than five
// bytes are ignored. When a name repeats, the first line wins.
func ParseKeyFile(r io.Reader) (MapSource, error) {
	values := MapSource{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if len(text) < 5 || text[0] == '#' {
			continue
		}
		name, encoded, ok := strings.Cut(text, ":")
		if !ok {
			continue
		}
		if _, seen := values[name]; seen {
			continue
		}

		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
		if err != nil {
			return nil, errors.Join(ErrReadingSource, fmt.Errorf("line %d (%s): %w", line, name, err))
		}
		values[name] = string(decoded)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Join(ErrReadingSource, err)
	}
	return values, nil
}

// FileSource loads a key file from path.
func FileSource(path string) (MapSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrReadingSource, err)
	}
	defer f.Close()

	return ParseKeyFile(f)
}

// YAMLSource loads a flat YAML mapping of setting names to scalar values.
func YAMLSource(path string) (MapSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadingSource, err)
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrReadingSource, err)
	}

	values := make(MapSource, len(raw))
	for name, node := range raw {
		if node.Kind != yaml.ScalarNode {
			return nil, errors.Join(ErrReadingSource, fmt.Errorf("%s: expected a scalar value", name))
		}
		values[name] = node.Value
	}
	return values, nil
}

// OpenSource opens path as a key file, or as YAML when it ends in .yaml or .yml.
func OpenSource(path string) (MapSource, error) {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return YAMLSource(path)
	}
	return FileSource(path)
}
