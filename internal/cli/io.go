package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/automatalib/automata/pkg/definition"
)

// loadDefinition reads an automaton definition file (.toml or .json).
func loadDefinition(path string) (*definition.Definition, error) {
	def, err := definition.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if def.Name == "" {
		def.Name = strippedName(path)
	}
	return def, nil
}

// strippedName derives a display name from a file path.
func strippedName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// writeResult writes a result definition to the output path, or prints it
// as JSON on stdout when the path is empty.
func writeResult(def *definition.Definition, output string) error {
	if output == "" {
		data, err := definition.Marshal(def)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := definition.WriteFile(output, def); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, styleDim.Render("wrote "+output))
	return nil
}

// cacheDir returns the CLI's file-cache directory, creating it if needed.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	dir := filepath.Join(base, "automata")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
