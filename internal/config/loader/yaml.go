package loader

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YAMLLoader loads configuration from YAML files.
type YAMLLoader struct {
	fs FileSystem
}

// NewYAMLLoader creates a YAML loader reading through fsys.
func NewYAMLLoader(fsys FileSystem) *YAMLLoader {
	return &YAMLLoader{fs: fsys}
}

// LoadInto implements FileLoader.
func (l *YAMLLoader) LoadInto(path string, v any) (bool, error) {
	data, found, err := readFile(l.fs, path)
	if !found || err != nil {
		return found, err
	}
	return true, DecodeYAML(path, data, v)
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// DecodeYAML decodes data into v, rejecting unknown keys.
// An empty document leaves v unchanged.
func DecodeYAML(source string, data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
	}
	return pe
}
