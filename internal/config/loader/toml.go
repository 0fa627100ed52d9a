package loader

import (
	"bytes"
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader loads configuration from TOML files.
type TOMLLoader struct {
	fs FileSystem
}

// NewTOMLLoader creates a TOML loader reading through fsys.
func NewTOMLLoader(fsys FileSystem) *TOMLLoader {
	return &TOMLLoader{fs: fsys}
}

// LoadInto implements FileLoader.
func (l *TOMLLoader) LoadInto(path string, v any) (bool, error) {
	data, found, err := readFile(l.fs, path)
	if !found || err != nil {
		return found, err
	}
	return true, DecodeTOML(path, data, v)
}

// DecodeTOML decodes data into v, rejecting unknown keys.
func DecodeTOML(source string, data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return pe
	}
	return nil
}
