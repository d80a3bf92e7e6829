package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Marshal encodes the definition as indented JSON.
func Marshal(d *Definition) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalTOML encodes the definition as TOML.
func MarshalTOML(d *Definition) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(d); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Read decodes a JSON definition from r.
func Read(r io.Reader) (*Definition, error) {
	var d Definition
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &d, nil
}

// ReadFile reads a definition file, dispatching on the extension:
// .toml decodes as TOML, .json as JSON.
func ReadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var d Definition
		if err := toml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return &d, nil
	case ".json":
		return Read(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported definition file %s: want .toml or .json", path)
	}
}

// WriteFile writes a definition to path, choosing the codec by extension.
// The file is created with 0644 permissions.
func WriteFile(path string, d *Definition) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		data, err = MarshalTOML(d)
	case ".json":
		data, err = Marshal(d)
	default:
		return fmt.Errorf("unsupported definition file %s: want .toml or .json", path)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
